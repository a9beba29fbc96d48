package migration

import (
	"podelam/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SubscriptionModel{},
		&models.ActiveSessionModel{},
		&models.SessionModel{},
		&models.ToolSessionModel{},
	}
}
