package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotRepository implements SnapshotRepository using GORM.
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository.
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// SaveSnapshot upserts the class table for a named snapshot inside a
// single transaction: an existing row with the same name is locked and
// overwritten, otherwise a new row is inserted.
func (r *GormSnapshotRepository) SaveSnapshot(ctx context.Context, name string, classes []ClassRecord) error {
	row, err := NewSnapshotRow(name, classes)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing SnapshotRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(row).Error
		case err != nil:
			return fmt.Errorf("failed to lock existing snapshot: %w", err)
		default:
			return tx.Model(&SnapshotRow{}).
				Where("name = ?", name).
				Updates(map[string]interface{}{
					"classes":     row.Classes,
					"num_classes": row.NumClass,
				}).Error
		}
	})
}

// LoadSnapshot retrieves the class table for a named snapshot.
func (r *GormSnapshotRepository) LoadSnapshot(ctx context.Context, name string) ([]ClassRecord, error) {
	var row SnapshotRow

	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("snapshot not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return row.ToClasses()
}

// ListSnapshots returns the names of all stored snapshots.
func (r *GormSnapshotRepository) ListSnapshots(ctx context.Context) ([]string, error) {
	var rows []SnapshotRow

	err := r.db.WithContext(ctx).Select("name").Order("name").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	return names, nil
}

// DeleteSnapshot removes a named snapshot.
func (r *GormSnapshotRepository) DeleteSnapshot(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&SnapshotRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete snapshot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("snapshot not found: %s", name)
	}
	return nil
}
