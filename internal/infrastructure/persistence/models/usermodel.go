package models

import (
	"time"

	"podelam/internal/shared/constants"
)

// UserModel maps the shared users table. The auth service owns writes;
// this service only resolves emails, so the credential columns are omitted.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"size:255"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time
	LastLogin *time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
