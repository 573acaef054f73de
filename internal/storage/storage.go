// Package storage provides object storage abstraction for sufctl snapshot export.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/sufgraph/suf/pkg/config"
	sufErrors "github.com/sufgraph/suf/pkg/errors"
)

// Storage defines the interface for object storage operations.
type Storage interface {
	// Upload uploads data from reader to the specified key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// UploadFile uploads a local file to the specified key.
	UploadFile(ctx context.Context, key string, localPath string) error

	// Download downloads data from the specified key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// DownloadFile downloads data from the specified key to a local file.
	DownloadFile(ctx context.Context, key string, localPath string) error

	// Delete deletes the object at the specified key.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the URL for the specified key (if applicable).
	GetURL(key string) string
}

// StorageType represents the type of storage backend.
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeCOS   StorageType = "cos"
)

// snapshotKeySuffix is the required suffix for keys written through this
// package. sufctl only ever archives one kind of object — a JSON-encoded
// class table from `snapshot export` (see cmd/sufctl/cmd/snapshot.go) —
// so the suffix doubles as a guard against accidentally overwriting an
// unrelated object at a typo'd key in a shared bucket or local path.
const snapshotKeySuffix = ".snapshot.json"

// ValidateSnapshotKey rejects keys that don't look like a snapshot
// archive object: empty keys, keys that escape the storage root via a
// ".." path segment, and keys missing the snapshot.json suffix.
func ValidateSnapshotKey(key string) error {
	if key == "" {
		return sufErrors.New(sufErrors.CodeInvalidInput, "snapshot key must not be empty")
	}
	clean := path.Clean(key)
	if clean != key || strings.HasPrefix(clean, "..") || strings.Contains(clean, "/../") {
		return sufErrors.Wrap(sufErrors.CodeInvalidInput, "snapshot key must not escape the storage root", nil)
	}
	if !strings.HasSuffix(key, snapshotKeySuffix) {
		return sufErrors.New(sufErrors.CodeInvalidInput, "snapshot key must end with "+snapshotKeySuffix)
	}
	return nil
}

// NewStorage creates a new Storage instance based on the configuration.
func NewStorage(cfg *config.StorageConfig) (Storage, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch StorageType(cfg.Type) {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeCOS:
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Domain:    cfg.Domain,
			Scheme:    cfg.Scheme,
		})
	default:
		return NewLocalStorage(cfg.LocalPath)
	}
}

// ValidateConfig validates the storage configuration.
func ValidateConfig(cfg *config.StorageConfig) error {
	if cfg == nil {
		return sufErrors.New(sufErrors.CodeConfigError, "storage config is nil")
	}

	storageType := StorageType(cfg.Type)

	// Empty type defaults to local
	if storageType == "" {
		storageType = StorageTypeLocal
	}

	if storageType != StorageTypeCOS && storageType != StorageTypeLocal {
		return sufErrors.New(sufErrors.CodeConfigError, "unsupported storage type: "+string(storageType))
	}

	if storageType == StorageTypeCOS {
		if cfg.Bucket == "" {
			return sufErrors.New(sufErrors.CodeConfigError, "COS bucket is required")
		}
		if cfg.Region == "" {
			return sufErrors.New(sufErrors.CodeConfigError, "COS region is required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return sufErrors.New(sufErrors.CodeConfigError, "COS credentials are required")
		}
	}

	if storageType == StorageTypeLocal {
		if cfg.LocalPath == "" {
			return sufErrors.New(sufErrors.CodeConfigError, "local storage path is required")
		}
	}

	return nil
}
