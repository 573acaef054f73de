package store

import (
	"context"
)

// SnapshotRepository defines the interface for persisting and loading
// named slotted union-find snapshots.
type SnapshotRepository interface {
	// SaveSnapshot upserts the class table for a named snapshot.
	SaveSnapshot(ctx context.Context, name string, classes []ClassRecord) error

	// LoadSnapshot retrieves the class table for a named snapshot.
	LoadSnapshot(ctx context.Context, name string) ([]ClassRecord, error)

	// ListSnapshots returns the names of all stored snapshots.
	ListSnapshots(ctx context.Context) ([]string, error)

	// DeleteSnapshot removes a named snapshot.
	DeleteSnapshot(ctx context.Context, name string) error
}
