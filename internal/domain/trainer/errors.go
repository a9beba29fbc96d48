package trainer

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPlan    = errors.New("invalid plan")
	ErrNoSubscription = errors.New("no subscription")
	ErrUserNotFound   = errors.New("user not found")
)

// SessionLimitReachedError is returned when a trainer-scoped subscription
// has no completed-session quota left.
type SessionLimitReachedError struct {
	Used  int
	Total int
}

func (e *SessionLimitReachedError) Error() string {
	return fmt.Sprintf("session limit reached: %d/%d", e.Used, e.Total)
}

// SessionActiveError is returned when a live lock is held by another device.
// LastHeartbeat is zero when the conflict is reported without it (heartbeat
// rejections omit it on the wire, matching the legacy protocol).
type SessionActiveError struct {
	TrainerID     string
	LastHeartbeat time.Time
}

func (e *SessionActiveError) Error() string {
	return fmt.Sprintf("session active on another device (trainer %s)", e.TrainerID)
}

// IsSessionLimitReached reports whether err is a quota rejection.
func IsSessionLimitReached(err error) bool {
	var target *SessionLimitReachedError
	return errors.As(err, &target)
}

// IsSessionActive reports whether err is a device conflict rejection.
func IsSessionActive(err error) bool {
	var target *SessionActiveError
	return errors.As(err, &target)
}
