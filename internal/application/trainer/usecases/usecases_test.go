package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"podelam/internal/domain/trainer"
	"podelam/internal/infrastructure/persistence/models"
	"podelam/internal/infrastructure/repository"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

// fixture wires the use cases against a throwaway sqlite store, same
// topology as production minus mysql.
type fixture struct {
	db              *gorm.DB
	locks           trainer.SessionLockRepository
	getSubscription *GetSubscriptionUseCase
	activatePlan    *ActivatePlanUseCase
	getLimit        *GetLimitUseCase
	startSession    *StartSessionUseCase
	heartbeat       *HeartbeatUseCase
	endSession      *EndSessionUseCase
	checkDevice     *CheckDeviceUseCase
	saveSession     *SaveSessionUseCase
	listSessions    *ListSessionsUseCase
	sessionCount    *SessionCountUseCase
}

func setupFixture(t *testing.T) *fixture {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(
		&models.SubscriptionModel{},
		&models.ActiveSessionModel{},
		&models.SessionModel{},
	)
	require.NoError(t, err)

	log := logger.NewLogger()
	subs := repository.NewSubscriptionRepository(gormDB, log)
	locks := repository.NewSessionLockRepository(gormDB, log)
	sessions := repository.NewSessionRepository(gormDB, log)
	txManager := db.NewTransactionManager(gormDB)
	timeout := trainer.DefaultHeartbeatTimeout

	return &fixture{
		db:              gormDB,
		locks:           locks,
		getSubscription: NewGetSubscriptionUseCase(subs, log),
		activatePlan:    NewActivatePlanUseCase(subs, log),
		getLimit:        NewGetLimitUseCase(subs, log),
		startSession:    NewStartSessionUseCase(subs, locks, txManager, timeout, log),
		heartbeat:       NewHeartbeatUseCase(locks, txManager, timeout, log),
		endSession:      NewEndSessionUseCase(locks, log),
		checkDevice:     NewCheckDeviceUseCase(locks, timeout, log),
		saveSession:     NewSaveSessionUseCase(sessions, subs, txManager, log),
		listSessions:    NewListSessionsUseCase(sessions, log),
		sessionCount:    NewSessionCountUseCase(subs, sessions, log),
	}
}

func (f *fixture) activate(t *testing.T, userID uint, planID, trainerID string) {
	_, err := f.activatePlan.Execute(context.Background(), ActivatePlanCommand{
		UserID:    userID,
		PlanID:    planID,
		TrainerID: trainerID,
	})
	require.NoError(t, err)
}

// ageLock rewinds the lock's heartbeat so it reads as stale.
func (f *fixture) ageLock(t *testing.T, userID uint, age time.Duration) {
	err := f.db.Table("trainer_active_sessions").
		Where("user_id = ?", userID).
		Update("last_heartbeat", time.Now().UTC().Add(-age)).Error
	require.NoError(t, err)
}

// expireSubscription rewinds expires_at so the row reads as expired while
// physically remaining in place.
func (f *fixture) expireSubscription(t *testing.T, userID uint) {
	err := f.db.Table("trainer_subscriptions").
		Where("user_id = ?", userID).
		Update("expires_at", time.Now().UTC().Add(-time.Hour)).Error
	require.NoError(t, err)
}

func (f *fixture) completeSession(t *testing.T, userID uint, trainerID, sessionID string) *SaveSessionCommand {
	now := time.Now().UTC()
	completed := now.Add(10 * time.Minute)
	return &SaveSessionCommand{
		UserID:      userID,
		TrainerID:   trainerID,
		SessionID:   sessionID,
		StartedAt:   &now,
		CompletedAt: &completed,
		Scores:      map[string]any{"total": 7},
		Answers:     map[string]any{"q1": "a"},
	}
}

// ============================================================
// Subscription lifecycle
// ============================================================

func TestActivateAndGetSubscription(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("no subscription reads as nil", func(t *testing.T) {
		view, err := f.getSubscription.Execute(ctx, GetSubscriptionQuery{UserID: 1})
		require.NoError(t, err)
		assert.Nil(t, view)
	})

	t.Run("unknown plan is rejected", func(t *testing.T) {
		_, err := f.activatePlan.Execute(ctx, ActivatePlanCommand{UserID: 1, PlanID: "platinum"})
		assert.ErrorIs(t, err, trainer.ErrInvalidPlan)
	})

	t.Run("basic plan binds the trainer and carries the quota", func(t *testing.T) {
		f.activate(t, 1, "basic", "composure")

		view, err := f.getSubscription.Execute(ctx, GetSubscriptionQuery{UserID: 1})
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, "basic", view.PlanID)
		require.NotNil(t, view.TrainerID)
		assert.Equal(t, "composure", *view.TrainerID)
		assert.False(t, view.AllTrainers)
		assert.Equal(t, 4, view.SessionsTotal)
		assert.Equal(t, 0, view.SessionsUsed)
	})

	t.Run("all-trainers plan ignores the supplied trainer", func(t *testing.T) {
		f.activate(t, 2, "advanced", "composure")

		view, err := f.getSubscription.Execute(ctx, GetSubscriptionQuery{UserID: 2})
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.True(t, view.AllTrainers)
		assert.Nil(t, view.TrainerID)
	})

	t.Run("expired subscription reads as nil while the row remains", func(t *testing.T) {
		f.activate(t, 3, "basic", "composure")
		f.expireSubscription(t, 3)

		view, err := f.getSubscription.Execute(ctx, GetSubscriptionQuery{UserID: 3})
		require.NoError(t, err)
		assert.Nil(t, view)

		var count int64
		require.NoError(t, f.db.Table("trainer_subscriptions").Where("user_id = ?", 3).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestActivationResetsUsage(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "basic", "composure")
	for _, id := range []string{"s1", "s2", "s3"} {
		_, err := f.saveSession.Execute(ctx, *f.completeSession(t, 1, "composure", id))
		require.NoError(t, err)
	}

	view, err := f.getSubscription.Execute(ctx, GetSubscriptionQuery{UserID: 1})
	require.NoError(t, err)
	require.Equal(t, 3, view.SessionsUsed)

	f.activate(t, 1, "yearly", "")

	view, err = f.getSubscription.Execute(ctx, GetSubscriptionQuery{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "yearly", view.PlanID)
	assert.True(t, view.AllTrainers)
	assert.Equal(t, 0, view.SessionsUsed)
}

// ============================================================
// Quota
// ============================================================

func TestQuotaMonotonicity(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "basic", "composure")

	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		result, err := f.saveSession.Execute(ctx, *f.completeSession(t, 1, "composure", id))
		require.NoError(t, err)
		assert.Equal(t, 4, result.SessionsTotal)
	}

	limit, err := f.getLimit.Execute(ctx, GetLimitQuery{UserID: 1})
	require.NoError(t, err)
	assert.True(t, limit.Limited)
	assert.Equal(t, 4, limit.Used)
	assert.Zero(t, limit.Remaining)

	t.Run("fifth start is rejected with the counters", func(t *testing.T) {
		err := f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "composure", DeviceID: "d1"})
		require.Error(t, err)
		require.True(t, trainer.IsSessionLimitReached(err))

		var limitErr *trainer.SessionLimitReachedError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, 4, limitErr.Used)
		assert.Equal(t, 4, limitErr.Total)
	})

	t.Run("re-saving a completed session does not double count", func(t *testing.T) {
		result, err := f.saveSession.Execute(ctx, *f.completeSession(t, 1, "composure", "s4"))
		require.NoError(t, err)
		assert.Equal(t, 4, result.SessionsUsed)
	})

	t.Run("incomplete saves never count", func(t *testing.T) {
		cmd := f.completeSession(t, 1, "composure", "s5")
		cmd.CompletedAt = nil
		result, err := f.saveSession.Execute(ctx, *cmd)
		require.NoError(t, err)
		assert.Equal(t, 4, result.SessionsUsed)
	})
}

func TestUnlimitedPlansNeverGate(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "advanced", "")

	for _, id := range []string{"s1", "s2", "s3", "s4", "s5", "s6"} {
		_, err := f.saveSession.Execute(ctx, *f.completeSession(t, 1, "composure", id))
		require.NoError(t, err)
	}

	limit, err := f.getLimit.Execute(ctx, GetLimitQuery{UserID: 1})
	require.NoError(t, err)
	assert.False(t, limit.Limited)
	assert.Equal(t, 999, limit.Remaining)

	err = f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "composure", DeviceID: "d1"})
	assert.NoError(t, err)
}

func TestGetLimitWithoutSubscription(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	// The unlimited sentinel for missing subscriptions is intentional,
	// even though session_start rejects the same user.
	limit, err := f.getLimit.Execute(ctx, GetLimitQuery{UserID: 42})
	require.NoError(t, err)
	assert.False(t, limit.Limited)
	assert.Equal(t, 999, limit.Remaining)

	err = f.startSession.Execute(ctx, StartSessionCommand{UserID: 42, TrainerID: "composure", DeviceID: "d1"})
	assert.ErrorIs(t, err, trainer.ErrNoSubscription)
}

// ============================================================
// Device lock
// ============================================================

func TestExclusiveAcquisition(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "advanced", "")

	require.NoError(t, f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerA", DeviceID: "device1"}))

	t.Run("second device is rejected with the holder's trainer", func(t *testing.T) {
		err := f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerB", DeviceID: "device2"})
		require.Error(t, err)
		require.True(t, trainer.IsSessionActive(err))

		var activeErr *trainer.SessionActiveError
		require.ErrorAs(t, err, &activeErr)
		assert.Equal(t, "trainerA", activeErr.TrainerID)
		assert.False(t, activeErr.LastHeartbeat.IsZero())
	})

	t.Run("holding device re-acquires and switches trainer", func(t *testing.T) {
		require.NoError(t, f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerC", DeviceID: "device1"}))

		lock, err := f.locks.GetByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "trainerC", lock.TrainerID())
	})
}

func TestStaleTakeover(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "advanced", "")
	require.NoError(t, f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerA", DeviceID: "device1"}))
	f.ageLock(t, 1, 2*time.Minute)

	require.NoError(t, f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerB", DeviceID: "device2"}))

	lock, err := f.locks.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "device2", lock.DeviceID())
	assert.Equal(t, "trainerB", lock.TrainerID())
}

func TestHeartbeat(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "advanced", "")
	require.NoError(t, f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerA", DeviceID: "device1"}))

	t.Run("holder refresh succeeds", func(t *testing.T) {
		assert.NoError(t, f.heartbeat.Execute(ctx, HeartbeatCommand{UserID: 1, DeviceID: "device1"}))
	})

	t.Run("competing device is told to stop without touching the lock", func(t *testing.T) {
		err := f.heartbeat.Execute(ctx, HeartbeatCommand{UserID: 1, DeviceID: "device2"})
		require.Error(t, err)
		require.True(t, trainer.IsSessionActive(err))

		var activeErr *trainer.SessionActiveError
		require.ErrorAs(t, err, &activeErr)
		assert.Equal(t, "trainerA", activeErr.TrainerID)
		assert.True(t, activeErr.LastHeartbeat.IsZero())
	})

	t.Run("stale holder heartbeat is an idempotent success", func(t *testing.T) {
		f.ageLock(t, 1, 2*time.Minute)
		assert.NoError(t, f.heartbeat.Execute(ctx, HeartbeatCommand{UserID: 1, DeviceID: "device2"}))
	})

	t.Run("heartbeat without any lock is a success", func(t *testing.T) {
		assert.NoError(t, f.heartbeat.Execute(ctx, HeartbeatCommand{UserID: 99, DeviceID: "device1"}))
	})
}

func TestIdempotentRelease(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "advanced", "")
	require.NoError(t, f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerA", DeviceID: "device1"}))

	require.NoError(t, f.endSession.Execute(ctx, EndSessionCommand{UserID: 1, DeviceID: "device1"}))
	require.NoError(t, f.endSession.Execute(ctx, EndSessionCommand{UserID: 1, DeviceID: "device1"}))

	lock, err := f.locks.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, lock)
}

func TestCheckDevice(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.activate(t, 1, "advanced", "")

	t.Run("no lock means not blocked", func(t *testing.T) {
		status, err := f.checkDevice.Execute(ctx, CheckDeviceQuery{UserID: 1, DeviceID: "device1"})
		require.NoError(t, err)
		assert.False(t, status.Blocked)
	})

	require.NoError(t, f.startSession.Execute(ctx, StartSessionCommand{UserID: 1, TrainerID: "trainerA", DeviceID: "device1"}))

	t.Run("holder is not blocked by its own lock", func(t *testing.T) {
		status, err := f.checkDevice.Execute(ctx, CheckDeviceQuery{UserID: 1, DeviceID: "device1"})
		require.NoError(t, err)
		assert.False(t, status.Blocked)
	})

	t.Run("other device is blocked while the lock is live", func(t *testing.T) {
		status, err := f.checkDevice.Execute(ctx, CheckDeviceQuery{UserID: 1, DeviceID: "device2"})
		require.NoError(t, err)
		assert.True(t, status.Blocked)
		assert.Equal(t, "trainerA", status.TrainerID)
	})

	t.Run("stale lock blocks nobody", func(t *testing.T) {
		f.ageLock(t, 1, 2*time.Minute)
		status, err := f.checkDevice.Execute(ctx, CheckDeviceQuery{UserID: 1, DeviceID: "device2"})
		require.NoError(t, err)
		assert.False(t, status.Blocked)
	})
}

// ============================================================
// Session records
// ============================================================

func TestSaveSessionWithoutSubscription(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	result, err := f.saveSession.Execute(ctx, *f.completeSession(t, 1, "composure", "s1"))
	require.NoError(t, err)
	assert.Equal(t, 0, result.SessionsUsed)
	assert.Equal(t, 4, result.SessionsTotal)
}

func TestListSessions(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, id := range []string{"s1", "s2", "s3"} {
		started := now.Add(time.Duration(i) * time.Minute)
		cmd := SaveSessionCommand{
			UserID:    1,
			TrainerID: "composure",
			SessionID: id,
			StartedAt: &started,
			Scores:    map[string]any{"total": i},
		}
		_, err := f.saveSession.Execute(ctx, cmd)
		require.NoError(t, err)
	}
	_, err := f.saveSession.Execute(ctx, *f.completeSession(t, 1, "stress", "s4"))
	require.NoError(t, err)

	t.Run("global listing is most recent first", func(t *testing.T) {
		sessions, err := f.listSessions.Execute(ctx, ListSessionsQuery{UserID: 1})
		require.NoError(t, err)
		require.Len(t, sessions, 4)
	})

	t.Run("trainer filter applies", func(t *testing.T) {
		sessions, err := f.listSessions.Execute(ctx, ListSessionsQuery{UserID: 1, TrainerID: "composure"})
		require.NoError(t, err)
		require.Len(t, sessions, 3)
		assert.Equal(t, "s3", sessions[0].SessionID)
	})
}

func TestSessionCount(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("prefers subscription counters when a row exists", func(t *testing.T) {
		f.activate(t, 1, "basic", "composure")
		_, err := f.saveSession.Execute(ctx, *f.completeSession(t, 1, "composure", "s1"))
		require.NoError(t, err)

		count, err := f.sessionCount.Execute(ctx, SessionCountQuery{UserID: 1, TrainerID: "composure"})
		require.NoError(t, err)
		assert.Equal(t, 1, count.Count)
		require.NotNil(t, count.Total)
		assert.Equal(t, 4, *count.Total)
	})

	t.Run("falls back to counting completed records", func(t *testing.T) {
		_, err := f.saveSession.Execute(ctx, *f.completeSession(t, 2, "composure", "s1"))
		require.NoError(t, err)
		cmd := f.completeSession(t, 2, "composure", "s2")
		cmd.CompletedAt = nil
		_, err = f.saveSession.Execute(ctx, *cmd)
		require.NoError(t, err)

		count, err := f.sessionCount.Execute(ctx, SessionCountQuery{UserID: 2, TrainerID: "composure"})
		require.NoError(t, err)
		assert.Equal(t, 1, count.Count)
		assert.Nil(t, count.Total)
	})
}
