package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podelam/internal/domain/trainer"
)

func activatePlan(t *testing.T, repo trainer.SubscriptionRepository, userID uint, planID trainer.PlanID, trainerID string, now time.Time) *trainer.Subscription {
	plan, ok := trainer.PlanByID(planID)
	require.True(t, ok)

	sub, err := trainer.NewSubscription(userID, plan, trainerID, now)
	require.NoError(t, err)

	err = repo.Upsert(context.Background(), sub)
	require.NoError(t, err)
	return sub
}

func TestSubscriptionRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("insert assigns ID", func(t *testing.T) {
		sub := activatePlan(t, repo, 1, trainer.PlanBasic, "composure", now)
		assert.NotZero(t, sub.ID())
	})

	t.Run("second activation replaces the row and resets usage", func(t *testing.T) {
		activatePlan(t, repo, 2, trainer.PlanBasic, "composure", now)
		require.NoError(t, repo.IncrementUsage(ctx, 2))

		activatePlan(t, repo, 2, trainer.PlanAdvanced, "", now)

		found, err := repo.GetByUserID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, trainer.PlanAdvanced, found.PlanID())
		assert.True(t, found.AllTrainers())
		assert.Nil(t, found.TrainerID())
		assert.Equal(t, 0, found.SessionsUsed())

		var count int64
		require.NoError(t, db.Table("trainer_subscriptions").Where("user_id = ?", 2).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestSubscriptionRepository_GetByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("missing row returns nil without error", func(t *testing.T) {
		found, err := repo.GetByUserID(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("round trip preserves plan shape", func(t *testing.T) {
		activatePlan(t, repo, 3, trainer.PlanBasic, "stress", now)

		found, err := repo.GetByUserID(ctx, 3)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, trainer.PlanBasic, found.PlanID())
		require.NotNil(t, found.TrainerID())
		assert.Equal(t, "stress", *found.TrainerID())
		assert.Equal(t, 4, found.SessionsTotal())
		assert.Equal(t, 0, found.SessionsUsed())
		assert.WithinDuration(t, now.Add(30*24*time.Hour), found.ExpiresAt(), time.Second)
	})

	t.Run("for update read sees the same row", func(t *testing.T) {
		activatePlan(t, repo, 4, trainer.PlanYearly, "", now)

		found, err := repo.GetByUserIDForUpdate(ctx, 4)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, trainer.PlanYearly, found.PlanID())
	})
}

func TestSubscriptionRepository_IncrementUsage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("bumps counter for trainer-scoped plans", func(t *testing.T) {
		activatePlan(t, repo, 5, trainer.PlanBasic, "composure", now)

		require.NoError(t, repo.IncrementUsage(ctx, 5))
		require.NoError(t, repo.IncrementUsage(ctx, 5))

		found, err := repo.GetByUserID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 2, found.SessionsUsed())
	})

	t.Run("no-op for all-trainers plans", func(t *testing.T) {
		activatePlan(t, repo, 6, trainer.PlanAdvanced, "", now)

		require.NoError(t, repo.IncrementUsage(ctx, 6))

		found, err := repo.GetByUserID(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, 0, found.SessionsUsed())
	})

	t.Run("no-op when the user has no subscription", func(t *testing.T) {
		assert.NoError(t, repo.IncrementUsage(ctx, 777))
	})
}
