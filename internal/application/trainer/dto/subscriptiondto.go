package dto

import (
	"time"

	"podelam/internal/domain/trainer"
)

// SubscriptionDTO is the subscription view returned to clients. The total
// falls back to 4 when the stored quota is zero; the frontend has always
// displayed it that way and the unlimited flag is what actually gates.
type SubscriptionDTO struct {
	PlanID        string  `json:"plan_id"`
	TrainerID     *string `json:"trainer_id"`
	AllTrainers   bool    `json:"all_trainers"`
	StartedAt     string  `json:"started_at"`
	ExpiresAt     string  `json:"expires_at"`
	SessionsTotal int     `json:"sessions_total"`
	SessionsUsed  int     `json:"sessions_used"`
}

// NewSubscriptionDTO converts a subscription entity to its client view.
func NewSubscriptionDTO(sub *trainer.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	total := sub.SessionsTotal()
	if total == 0 {
		total = 4
	}

	return &SubscriptionDTO{
		PlanID:        string(sub.PlanID()),
		TrainerID:     sub.TrainerID(),
		AllTrainers:   sub.AllTrainers(),
		StartedAt:     sub.StartedAt().UTC().Format(time.RFC3339),
		ExpiresAt:     sub.ExpiresAt().UTC().Format(time.RFC3339),
		SessionsTotal: total,
		SessionsUsed:  sub.SessionsUsed(),
	}
}

// LimitDTO reports the completed-session quota state.
type LimitDTO struct {
	Limited   bool `json:"limited"`
	Used      int  `json:"used"`
	Total     int  `json:"total"`
	Remaining int  `json:"remaining"`
}

// UnlimitedSentinel is the quota view for all-trainers plans and for users
// without a live subscription. The large remaining value is part of the
// wire contract.
func UnlimitedSentinel() *LimitDTO {
	return &LimitDTO{Limited: false, Used: 0, Total: 0, Remaining: 999}
}
