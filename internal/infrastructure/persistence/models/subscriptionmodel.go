package models

import (
	"time"

	"podelam/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for trainer
// subscriptions. The user_id unique index enforces the one-live-row-per-user
// upsert semantics; expired rows stay in place until the next activation.
type SubscriptionModel struct {
	ID            uint    `gorm:"primarykey"`
	UserID        uint    `gorm:"uniqueIndex;not null"`
	PlanID        string  `gorm:"not null;size:20"`
	TrainerID     *string `gorm:"size:100"`
	AllTrainers   bool    `gorm:"not null;default:false"`
	StartedAt     time.Time
	ExpiresAt     time.Time `gorm:"not null;index"`
	SessionsTotal int       `gorm:"not null;default:0"`
	SessionsUsed  int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
