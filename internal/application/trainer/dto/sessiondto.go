package dto

import (
	"time"

	"podelam/internal/domain/trainer"
)

// SessionDTO is the session record read model returned by the history
// listing. Answers are stored but never sent back.
type SessionDTO struct {
	SessionID   string         `json:"session_id"`
	TrainerID   string         `json:"trainer_id"`
	StartedAt   *string        `json:"started_at"`
	CompletedAt *string        `json:"completed_at"`
	Scores      map[string]any `json:"scores"`
	Result      any            `json:"result"`
}

// NewSessionDTO converts a session entity to its read model.
func NewSessionDTO(sess *trainer.Session) *SessionDTO {
	if sess == nil {
		return nil
	}

	d := &SessionDTO{
		SessionID: sess.SessionID(),
		TrainerID: sess.TrainerID(),
		Scores:    sess.Scores(),
		Result:    sess.Result(),
	}

	if !sess.StartedAt().IsZero() {
		started := sess.StartedAt().UTC().Format(time.RFC3339)
		d.StartedAt = &started
	}
	if sess.CompletedAt() != nil {
		completed := sess.CompletedAt().UTC().Format(time.RFC3339)
		d.CompletedAt = &completed
	}

	return d
}

// NewSessionDTOs converts a most-recent-first entity list.
func NewSessionDTOs(sessions []*trainer.Session) []*SessionDTO {
	dtos := make([]*SessionDTO, 0, len(sessions))
	for _, sess := range sessions {
		dtos = append(dtos, NewSessionDTO(sess))
	}
	return dtos
}

// SaveSessionResultDTO carries the post-save quota counters. Total falls
// back to the legacy default of 4 when the user has no subscription row.
type SaveSessionResultDTO struct {
	SessionsUsed  int `json:"sessions_used"`
	SessionsTotal int `json:"sessions_total"`
}

// DeviceStatusDTO is the check_device read model.
type DeviceStatusDTO struct {
	Blocked   bool   `json:"blocked"`
	TrainerID string `json:"trainer_id,omitempty"`
}

// SessionCountDTO reports completed sessions for a trainer. Total is only
// present when the counters come from a subscription row.
type SessionCountDTO struct {
	Count     int    `json:"count"`
	Total     *int   `json:"total,omitempty"`
	TrainerID string `json:"trainer_id"`
}
