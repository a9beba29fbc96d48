package models

import (
	"time"

	"gorm.io/datatypes"

	"podelam/internal/shared/constants"
)

// ToolSessionModel stores one synced tool result. The user identifier is the
// opaque client account key used by the sync protocol, not the users table id.
type ToolSessionModel struct {
	ID          uint   `gorm:"primarykey"`
	UserID      string `gorm:"not null;size:100;index:idx_tool_owner,priority:1"`
	ToolType    string `gorm:"not null;size:50;index:idx_tool_owner,priority:2"`
	SessionData datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ToolSessionModel) TableName() string {
	return constants.TableToolSessions
}
