package trainer

import (
	"fmt"
	"time"
)

// DefaultHeartbeatTimeout is how long a lock stays live after the last
// heartbeat. Beyond it the lock is considered abandoned and any device may
// take it over; no explicit release message is required.
const DefaultHeartbeatTimeout = 90 * time.Second

// SessionLock records which device currently holds the right to run trainer
// sessions for a user. At most one lock row exists per user; acquiring
// overwrites whatever was there before.
//
// Liveness is not a stored flag. A lock is live iff last_heartbeat is within
// the timeout window of the observing clock, so an abandoned lock silently
// becomes eligible for takeover without any writer touching it.
type SessionLock struct {
	userID        uint
	deviceID      string
	trainerID     string
	lastHeartbeat time.Time
	startedAt     time.Time
}

// NewSessionLock acquires a lock for a device running a trainer.
func NewSessionLock(userID uint, trainerID, deviceID string, now time.Time) (*SessionLock, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if trainerID == "" {
		return nil, fmt.Errorf("trainer ID is required")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}

	return &SessionLock{
		userID:        userID,
		deviceID:      deviceID,
		trainerID:     trainerID,
		lastHeartbeat: now,
		startedAt:     now,
	}, nil
}

// ReconstructSessionLock reconstructs a lock from persistence.
func ReconstructSessionLock(userID uint, trainerID, deviceID string, lastHeartbeat, startedAt time.Time) (*SessionLock, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}

	return &SessionLock{
		userID:        userID,
		deviceID:      deviceID,
		trainerID:     trainerID,
		lastHeartbeat: lastHeartbeat,
		startedAt:     startedAt,
	}, nil
}

// UserID returns the owning user ID
func (l *SessionLock) UserID() uint {
	return l.userID
}

// DeviceID returns the holding device identifier
func (l *SessionLock) DeviceID() string {
	return l.deviceID
}

// TrainerID returns the trainer currently bound to the device
func (l *SessionLock) TrainerID() string {
	return l.trainerID
}

// LastHeartbeat returns the last liveness signal time
func (l *SessionLock) LastHeartbeat() time.Time {
	return l.lastHeartbeat
}

// StartedAt returns when the lock was acquired
func (l *SessionLock) StartedAt() time.Time {
	return l.startedAt
}

// IsLive reports whether the lock's heartbeat is within the timeout window.
// A stale lock is functionally equivalent to no lock for acquisition.
func (l *SessionLock) IsLive(now time.Time, timeout time.Duration) bool {
	return l.lastHeartbeat.After(now.Add(-timeout))
}

// HeldBy reports whether the given device is the current holder.
func (l *SessionLock) HeldBy(deviceID string) bool {
	return l.deviceID == deviceID
}

// Blocks reports whether this lock denies access to the given device: the
// lock must be live and belong to someone else. The holding device is never
// blocked by its own lock, live or stale.
func (l *SessionLock) Blocks(deviceID string, now time.Time, timeout time.Duration) bool {
	return !l.HeldBy(deviceID) && l.IsLive(now, timeout)
}
