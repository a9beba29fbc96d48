package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podelam/internal/domain/toolsync"
)

func insertRecord(t *testing.T, repo toolsync.Repository, userID, toolType string, payload map[string]any) *toolsync.Record {
	rec, err := toolsync.NewRecord(userID, toolType, payload)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), rec))
	return rec
}

func TestToolSessionRepository_InsertAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToolSessionRepository(db, testLogger())
	ctx := context.Background()

	t.Run("insert assigns ID", func(t *testing.T) {
		rec := insertRecord(t, repo, "user@example.com", "anxiety", map[string]any{"date": "2026-08-30", "level": 3})
		assert.NotZero(t, rec.ID())
	})

	t.Run("list is scoped to user and tool, oldest first", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			insertRecord(t, repo, "a@example.com", "diary", map[string]any{"entry": fmt.Sprintf("day %d", i)})
		}
		insertRecord(t, repo, "a@example.com", "anxiety", map[string]any{"level": 1})
		insertRecord(t, repo, "b@example.com", "diary", map[string]any{"entry": "other"})

		records, err := repo.ListByUserAndTool(ctx, "a@example.com", "diary")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "day 0", records[0].Payload()["entry"])
		assert.Equal(t, "day 2", records[2].Payload()["entry"])
	})

	t.Run("empty list for unknown user", func(t *testing.T) {
		records, err := repo.ListByUserAndTool(ctx, "nobody@example.com", "diary")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestToolSessionRepository_DeleteByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToolSessionRepository(db, testLogger())
	ctx := context.Background()

	rec1 := insertRecord(t, repo, "u@example.com", "anxiety", map[string]any{"n": 1})
	rec2 := insertRecord(t, repo, "u@example.com", "anxiety", map[string]any{"n": 2})

	require.NoError(t, repo.DeleteByIDs(ctx, []uint{rec1.ID()}))

	records, err := repo.ListByUserAndTool(ctx, "u@example.com", "anxiety")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec2.ID(), records[0].ID())

	assert.NoError(t, repo.DeleteByIDs(ctx, nil))
}

func TestToolSessionRepository_DeleteBeyond(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToolSessionRepository(db, testLogger())
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		insertRecord(t, repo, "u@example.com", "anxiety", map[string]any{"n": i})
	}

	t.Run("keeps the newest rows", func(t *testing.T) {
		require.NoError(t, repo.DeleteBeyond(ctx, "u@example.com", "anxiety", 6))

		records, err := repo.ListByUserAndTool(ctx, "u@example.com", "anxiety")
		require.NoError(t, err)
		require.Len(t, records, 6)
		assert.Equal(t, float64(2), records[0].Payload()["n"])
		assert.Equal(t, float64(7), records[5].Payload()["n"])
	})

	t.Run("zero keep means unlimited retention", func(t *testing.T) {
		require.NoError(t, repo.DeleteBeyond(ctx, "u@example.com", "anxiety", 0))

		records, err := repo.ListByUserAndTool(ctx, "u@example.com", "anxiety")
		require.NoError(t, err)
		assert.Len(t, records, 6)
	})

	t.Run("under the cap nothing is pruned", func(t *testing.T) {
		require.NoError(t, repo.DeleteBeyond(ctx, "u@example.com", "anxiety", 50))

		records, err := repo.ListByUserAndTool(ctx, "u@example.com", "anxiety")
		require.NoError(t, err)
		assert.Len(t, records, 6)
	})
}
