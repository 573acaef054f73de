// Package store provides database-backed persistence for slotted
// union-find snapshots.
package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ClassRecord is the serializable form of one slotted union-find class,
// independent of any particular storage backend.
type ClassRecord struct {
	ID              int64   `json:"id"`
	Arity           int     `json:"arity"`
	LeaderID        *int64  `json:"leader_id,omitempty"`
	LeaderArgs      []int   `json:"leader_args,omitempty"`
	GroupGenerators [][]int `json:"group_generators,omitempty"`
}

// SnapshotRow represents the snapshots table: one row per named
// snapshot, holding the full class table as a JSON blob. This mirrors
// how the ambient stack stores other irregularly-shaped analysis
// payloads rather than normalizing them into further tables.
type SnapshotRow struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(256);uniqueIndex"`
	Classes   JSONField `gorm:"column:classes;type:json"`
	NumClass  int       `gorm:"column:num_classes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for SnapshotRow.
func (SnapshotRow) TableName() string {
	return "suf_snapshots"
}

// ToClasses decodes the row's JSON payload into class records.
func (s *SnapshotRow) ToClasses() ([]ClassRecord, error) {
	if s.Classes == nil {
		return nil, nil
	}
	var classes []ClassRecord
	if err := json.Unmarshal(s.Classes, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// NewSnapshotRow encodes a class table into a row ready for insertion.
func NewSnapshotRow(name string, classes []ClassRecord) (*SnapshotRow, error) {
	data, err := json.Marshal(classes)
	if err != nil {
		return nil, err
	}
	return &SnapshotRow{
		Name:     name,
		Classes:  data,
		NumClass: len(classes),
	}, nil
}

// JSONField is a custom type for handling JSON fields with both GORM
// and raw database/sql drivers.
type JSONField []byte

// Value implements driver.Valuer interface.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner interface.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler interface.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	if data == nil || string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}
