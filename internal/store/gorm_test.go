package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&SnapshotRow{})
	require.NoError(t, err)

	return db
}

func sampleClasses() []ClassRecord {
	return []ClassRecord{
		{ID: 0, Arity: 2},
		{ID: 1, Arity: 1, LeaderID: int64Ptr(0), LeaderArgs: []int{0}},
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestGormSnapshotRepository_SaveAndLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSnapshotRepository(db)
	ctx := context.Background()

	err := repo.SaveSnapshot(ctx, "run-1", sampleClasses())
	require.NoError(t, err)

	classes, err := repo.LoadSnapshot(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 2, classes[0].Arity)
	assert.Equal(t, int64(0), *classes[1].LeaderID)
}

func TestGormSnapshotRepository_SaveOverwritesExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, "run-1", sampleClasses()))

	updated := []ClassRecord{{ID: 0, Arity: 5}}
	require.NoError(t, repo.SaveSnapshot(ctx, "run-1", updated))

	classes, err := repo.LoadSnapshot(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 5, classes[0].Arity)
}

func TestGormSnapshotRepository_LoadNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSnapshotRepository(db)

	classes, err := repo.LoadSnapshot(context.Background(), "missing")
	assert.Error(t, err)
	assert.Nil(t, classes)
	assert.Contains(t, err.Error(), "not found")
}

func TestGormSnapshotRepository_ListAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, "beta", sampleClasses()))
	require.NoError(t, repo.SaveSnapshot(ctx, "alpha", sampleClasses()))

	names, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	require.NoError(t, repo.DeleteSnapshot(ctx, "alpha"))

	names, err = repo.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)

	err = repo.DeleteSnapshot(ctx, "alpha")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
