package models

import (
	"time"

	"gorm.io/datatypes"

	"podelam/internal/shared/constants"
)

// SessionModel persists one trainer attempt, keyed by the client-supplied
// session identifier. Repeated save calls for the same identifier update
// the row via the composite unique index.
type SessionModel struct {
	ID          uint   `gorm:"primarykey"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_user_session,priority:1"`
	SessionID   string `gorm:"not null;size:100;uniqueIndex:idx_user_session,priority:2"`
	TrainerID   string `gorm:"not null;size:100;index"`
	StartedAt   time.Time `gorm:"not null;index"`
	CompletedAt *time.Time
	Scores      datatypes.JSON
	Result      datatypes.JSON
	Answers     datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return constants.TableSessions
}
