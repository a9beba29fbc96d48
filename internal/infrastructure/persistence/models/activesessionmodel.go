package models

import (
	"time"

	"podelam/internal/shared/constants"
)

// ActiveSessionModel is the single-device session lock row. At most one row
// per user; acquisition overwrites it in place. Liveness is derived from
// last_heartbeat at read time, there is no expiry column.
type ActiveSessionModel struct {
	ID            uint   `gorm:"primarykey"`
	UserID        uint   `gorm:"uniqueIndex;not null"`
	TrainerID     string `gorm:"not null;size:100"`
	DeviceID      string `gorm:"not null;size:128"`
	LastHeartbeat time.Time `gorm:"not null"`
	StartedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ActiveSessionModel) TableName() string {
	return constants.TableActiveSessions
}
