package store

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQLSnapshotRepository implements SnapshotRepository for MySQL using
// raw database/sql, for deployments that opt out of GORM.
type MySQLSnapshotRepository struct {
	db *sql.DB
}

// NewMySQLSnapshotRepository creates a new MySQLSnapshotRepository.
func NewMySQLSnapshotRepository(db *sql.DB) *MySQLSnapshotRepository {
	return &MySQLSnapshotRepository{db: db}
}

// SaveSnapshot upserts the class table for a named snapshot.
func (r *MySQLSnapshotRepository) SaveSnapshot(ctx context.Context, name string, classes []ClassRecord) error {
	row, err := NewSnapshotRow(name, classes)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO suf_snapshots (name, classes, num_classes, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE classes = VALUES(classes), num_classes = VALUES(num_classes), updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, query, row.Name, []byte(row.Classes), row.NumClass)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the class table for a named snapshot.
func (r *MySQLSnapshotRepository) LoadSnapshot(ctx context.Context, name string) ([]ClassRecord, error) {
	query := `SELECT classes FROM suf_snapshots WHERE name = ?`

	var classesJSON []byte
	err := r.db.QueryRowContext(ctx, query, name).Scan(&classesJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	row := SnapshotRow{Classes: classesJSON}
	return row.ToClasses()
}

// ListSnapshots returns the names of all stored snapshots.
func (r *MySQLSnapshotRepository) ListSnapshots(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM suf_snapshots ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return names, nil
}

// DeleteSnapshot removes a named snapshot.
func (r *MySQLSnapshotRepository) DeleteSnapshot(ctx context.Context, name string) error {
	query := `DELETE FROM suf_snapshots WHERE name = ?`

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("snapshot not found: %s", name)
	}
	return nil
}
