package trainer

import (
	"fmt"
	"time"
)

// Session is one attempt at a trainer, keyed by (user, client session ID).
// Saving the same session ID again updates the row in place; the record is
// never duplicated and never deleted by this subsystem.
type Session struct {
	id          uint
	userID      uint
	trainerID   string
	sessionID   string
	startedAt   time.Time
	completedAt *time.Time
	scores      map[string]any
	result      any
	answers     map[string]any
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSession creates a session record from a save_session call.
func NewSession(
	userID uint,
	trainerID, sessionID string,
	startedAt time.Time,
	completedAt *time.Time,
	scores map[string]any,
	result any,
	answers map[string]any,
) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if trainerID == "" {
		return nil, fmt.Errorf("trainer ID is required")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	if scores == nil {
		scores = make(map[string]any)
	}
	if answers == nil {
		answers = make(map[string]any)
	}

	now := time.Now().UTC()
	return &Session{
		userID:      userID,
		trainerID:   trainerID,
		sessionID:   sessionID,
		startedAt:   startedAt,
		completedAt: completedAt,
		scores:      scores,
		result:      result,
		answers:     answers,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructSession reconstructs a session from persistence.
func ReconstructSession(
	id, userID uint,
	trainerID, sessionID string,
	startedAt time.Time,
	completedAt *time.Time,
	scores map[string]any,
	result any,
	answers map[string]any,
	createdAt, updatedAt time.Time,
) (*Session, error) {
	if id == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	if scores == nil {
		scores = make(map[string]any)
	}
	if answers == nil {
		answers = make(map[string]any)
	}

	return &Session{
		id:          id,
		userID:      userID,
		trainerID:   trainerID,
		sessionID:   sessionID,
		startedAt:   startedAt,
		completedAt: completedAt,
		scores:      scores,
		result:      result,
		answers:     answers,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ID returns the row ID
func (s *Session) ID() uint {
	return s.id
}

// UserID returns the owning user ID
func (s *Session) UserID() uint {
	return s.userID
}

// TrainerID returns the trainer this attempt belongs to
func (s *Session) TrainerID() string {
	return s.trainerID
}

// SessionID returns the client-supplied session identifier
func (s *Session) SessionID() string {
	return s.sessionID
}

// StartedAt returns when the attempt started
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// CompletedAt returns the completion time, nil while in progress
func (s *Session) CompletedAt() *time.Time {
	return s.completedAt
}

// Scores returns the per-dimension score mapping
func (s *Session) Scores() map[string]any {
	return s.scores
}

// Result returns the opaque result payload, nil if none
func (s *Session) Result() any {
	return s.result
}

// Answers returns the raw answer mapping
func (s *Session) Answers() map[string]any {
	return s.answers
}

// CreatedAt returns when the row was created
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the row was last written
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the row ID (only for persistence layer use)
func (s *Session) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("session ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.id = id
	return nil
}

// Completed reports whether the attempt has finished.
func (s *Session) Completed() bool {
	return s.completedAt != nil
}
