package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podelam/internal/domain/trainer"
)

func saveSession(t *testing.T, repo trainer.SessionRepository, userID uint, trainerID, sessionID string, startedAt time.Time, completedAt *time.Time) *trainer.Session {
	sess, err := trainer.NewSession(userID, trainerID, sessionID, startedAt, completedAt,
		map[string]any{"total": 42}, nil, map[string]any{"q1": "a"})
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), sess))
	return sess
}

func TestSessionRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("insert then read back", func(t *testing.T) {
		sess := saveSession(t, repo, 1, "composure", "sess-1", now, nil)
		assert.NotZero(t, sess.ID())

		found, err := repo.GetByUserAndSessionID(ctx, 1, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "composure", found.TrainerID())
		assert.False(t, found.Completed())
		assert.Equal(t, float64(42), found.Scores()["total"])
	})

	t.Run("same session ID updates in place", func(t *testing.T) {
		saveSession(t, repo, 2, "composure", "sess-1", now, nil)

		completed := now.Add(10 * time.Minute)
		saveSession(t, repo, 2, "composure", "sess-1", now, &completed)

		found, err := repo.GetByUserAndSessionID(ctx, 2, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Completed())

		var count int64
		require.NoError(t, db.Table("trainer_sessions").Where("user_id = ?", 2).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("same session ID for different users stays separate", func(t *testing.T) {
		saveSession(t, repo, 3, "composure", "shared", now, nil)
		saveSession(t, repo, 4, "composure", "shared", now, nil)

		found3, err := repo.GetByUserAndSessionID(ctx, 3, "shared")
		require.NoError(t, err)
		found4, err := repo.GetByUserAndSessionID(ctx, 4, "shared")
		require.NoError(t, err)
		assert.NotEqual(t, found3.ID(), found4.ID())
	})

	t.Run("missing session reads as nil", func(t *testing.T) {
		found, err := repo.GetByUserAndSessionID(ctx, 999, "nope")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestSessionRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		trainerID := "composure"
		if i%2 == 1 {
			trainerID = "stress"
		}
		saveSession(t, repo, 1, trainerID, fmt.Sprintf("sess-%d", i), now.Add(time.Duration(i)*time.Minute), nil)
	}

	t.Run("most recent first", func(t *testing.T) {
		sessions, err := repo.ListByUser(ctx, 1, "", 100)
		require.NoError(t, err)
		require.Len(t, sessions, 5)
		assert.Equal(t, "sess-4", sessions[0].SessionID())
		assert.Equal(t, "sess-0", sessions[4].SessionID())
	})

	t.Run("trainer filter", func(t *testing.T) {
		sessions, err := repo.ListByUser(ctx, 1, "stress", 100)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		for _, s := range sessions {
			assert.Equal(t, "stress", s.TrainerID())
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		sessions, err := repo.ListByUser(ctx, 1, "", 2)
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})

	t.Run("other users are not visible", func(t *testing.T) {
		sessions, err := repo.ListByUser(ctx, 2, "", 100)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}

func TestSessionRepository_CountCompleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	completed := now.Add(5 * time.Minute)
	saveSession(t, repo, 1, "composure", "done-1", now, &completed)
	saveSession(t, repo, 1, "composure", "done-2", now, &completed)
	saveSession(t, repo, 1, "composure", "open-1", now, nil)
	saveSession(t, repo, 1, "stress", "done-3", now, &completed)

	count, err := repo.CountCompleted(ctx, 1, "composure")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountCompleted(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
