package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"podelam/internal/domain/trainer"
	"podelam/internal/infrastructure/persistence/mappers"
	"podelam/internal/infrastructure/persistence/models"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) trainer.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID uint) (*trainer.Subscription, error) {
	var model models.SubscriptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetByUserIDForUpdate(ctx context.Context, userID uint) (*trainer.Subscription, error) {
	var model models.SubscriptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to lock subscription row", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to lock subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

// Upsert replaces the user's subscription row in place. Activating a plan
// while another is live overwrites it, including the usage counter.
func (r *SubscriptionRepositoryImpl) Upsert(ctx context.Context, subscriptionEntity *trainer.Subscription) error {
	model := r.mapper.ToModel(subscriptionEntity)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_id", "trainer_id", "all_trainers",
			"started_at", "expires_at",
			"sessions_total", "sessions_used",
			"updated_at",
		}),
	}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert subscription", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	if model.ID != 0 && subscriptionEntity.ID() == 0 {
		if err := subscriptionEntity.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set subscription ID: %w", err)
		}
	}

	r.logger.Infow("subscription upserted", "user_id", model.UserID, "plan_id", model.PlanID, "expires_at", model.ExpiresAt)
	return nil
}

// IncrementUsage bumps the usage counter for trainer-scoped plans. The
// all_trainers guard makes the call a no-op for unlimited subscriptions, so
// callers do not need to re-check the plan shape.
func (r *SubscriptionRepositoryImpl) IncrementUsage(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND all_trainers = ?", userID, false).
		Update("sessions_used", gorm.Expr("sessions_used + 1"))
	if result.Error != nil {
		r.logger.Errorw("failed to increment subscription usage", "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to increment usage: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Debugw("usage increment matched no row", "user_id", userID)
	}

	return nil
}
