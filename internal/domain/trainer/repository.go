package trainer

import (
	"context"
	"time"
)

// SubscriptionRepository persists the one-row-per-user subscription.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*Subscription, error)
	// GetByUserIDForUpdate reads the row under a row-level write lock so a
	// read-decide-write sequence is serialized per user within the ambient
	// transaction.
	GetByUserIDForUpdate(ctx context.Context, userID uint) (*Subscription, error)
	// Upsert replaces the user's subscription row, keyed by the user_id
	// unique constraint.
	Upsert(ctx context.Context, subscription *Subscription) error
	// IncrementUsage bumps sessions_used by one for trainer-scoped
	// subscriptions only. A no-op (0 rows) when the user has no row or an
	// all-trainers plan.
	IncrementUsage(ctx context.Context, userID uint) error
}

// SessionLockRepository persists the at-most-one active device lock per user.
type SessionLockRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*SessionLock, error)
	GetByUserIDForUpdate(ctx context.Context, userID uint) (*SessionLock, error)
	// Upsert overwrites the user's lock row with the given holder.
	Upsert(ctx context.Context, lock *SessionLock) error
	// Refresh sets last_heartbeat=now for the (user, device) row. Returns
	// the number of rows affected; 0 means the device is not the holder.
	Refresh(ctx context.Context, userID uint, deviceID string, now time.Time) (int64, error)
	// Delete removes the (user, device) row. Deleting an absent or
	// non-matching row is a no-op.
	Delete(ctx context.Context, userID uint, deviceID string) error
}

// SessionRepository persists trainer session records.
type SessionRepository interface {
	GetByUserAndSessionID(ctx context.Context, userID uint, sessionID string) (*Session, error)
	// Upsert inserts or updates the row keyed by (user_id, session_id).
	Upsert(ctx context.Context, session *Session) error
	// ListByUser returns most-recent-first records, optionally filtered by
	// trainer, capped at limit.
	ListByUser(ctx context.Context, userID uint, trainerID string, limit int) ([]*Session, error)
	// CountCompleted counts completed sessions for a trainer.
	CountCompleted(ctx context.Context, userID uint, trainerID string) (int64, error)
}
