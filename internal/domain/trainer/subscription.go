package trainer

import (
	"fmt"
	"time"
)

// Subscription is the aggregate holding a user's plan, its validity window
// and the completed-session counters. At most one subscription exists per
// user; activating a plan replaces the previous row entirely.
//
// Expiry is a derived, read-time state: the row stays in storage after
// expires_at passes and is simply treated as absent by every gating check.
type Subscription struct {
	id            uint
	userID        uint
	planID        PlanID
	trainerID     *string
	allTrainers   bool
	startedAt     time.Time
	expiresAt     time.Time
	sessionsTotal int
	sessionsUsed  int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewSubscription activates a plan for a user. trainerID is only honored for
// single-trainer plans; all-trainers plans ignore it and carry no quota.
func NewSubscription(userID uint, plan Plan, trainerID string, now time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	s := &Subscription{
		userID:        userID,
		planID:        plan.ID,
		allTrainers:   plan.AllTrainers,
		startedAt:     now,
		expiresAt:     now.Add(plan.Duration),
		sessionsTotal: plan.Sessions,
		sessionsUsed:  0,
		createdAt:     now,
		updatedAt:     now,
	}

	if !plan.AllTrainers && trainerID != "" {
		s.trainerID = &trainerID
	}

	return s, nil
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(
	id, userID uint,
	planID PlanID,
	trainerID *string,
	allTrainers bool,
	startedAt, expiresAt time.Time,
	sessionsTotal, sessionsUsed int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if allTrainers && trainerID != nil {
		return nil, fmt.Errorf("all-trainers subscription cannot be bound to trainer %q", *trainerID)
	}

	return &Subscription{
		id:            id,
		userID:        userID,
		planID:        planID,
		trainerID:     trainerID,
		allTrainers:   allTrainers,
		startedAt:     startedAt,
		expiresAt:     expiresAt,
		sessionsTotal: sessionsTotal,
		sessionsUsed:  sessionsUsed,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// UserID returns the owning user ID
func (s *Subscription) UserID() uint {
	return s.userID
}

// PlanID returns the plan identifier
func (s *Subscription) PlanID() PlanID {
	return s.planID
}

// TrainerID returns the bound trainer, nil for all-trainers plans
func (s *Subscription) TrainerID() *string {
	return s.trainerID
}

// AllTrainers reports whether the subscription covers every trainer
func (s *Subscription) AllTrainers() bool {
	return s.allTrainers
}

// StartedAt returns when the current plan was activated
func (s *Subscription) StartedAt() time.Time {
	return s.startedAt
}

// ExpiresAt returns the validity end
func (s *Subscription) ExpiresAt() time.Time {
	return s.expiresAt
}

// SessionsTotal returns the completed-session quota, 0 for unlimited plans
func (s *Subscription) SessionsTotal() int {
	return s.sessionsTotal
}

// SessionsUsed returns how many sessions were completed under this plan
func (s *Subscription) SessionsUsed() int {
	return s.sessionsUsed
}

// CreatedAt returns when the row was first created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the row was last written
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsExpired checks read-time expiry against the supplied clock.
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.expiresAt.Before(now)
}

// Unlimited reports whether the subscription never gates on quota.
func (s *Subscription) Unlimited() bool {
	return s.allTrainers
}

// LimitReached reports whether the quota is exhausted. Always false for
// all-trainers plans.
func (s *Subscription) LimitReached() bool {
	if s.allTrainers {
		return false
	}
	return s.sessionsUsed >= s.sessionsTotal
}

// Remaining returns the sessions left under the quota, never negative.
func (s *Subscription) Remaining() int {
	if s.allTrainers {
		return 0
	}
	if remaining := s.sessionsTotal - s.sessionsUsed; remaining > 0 {
		return remaining
	}
	return 0
}

// RecordCompletedSession bumps the usage counter. Unlimited plans never
// accumulate usage; the call is a no-op for them.
func (s *Subscription) RecordCompletedSession(now time.Time) {
	if s.allTrainers {
		return
	}
	s.sessionsUsed++
	s.updatedAt = now
}
