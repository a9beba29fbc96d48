package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"podelam/internal/domain/trainer"
	"podelam/internal/infrastructure/persistence/mappers"
	"podelam/internal/infrastructure/persistence/models"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

type SessionLockRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SessionLockMapper
	logger logger.Interface
}

func NewSessionLockRepository(
	db *gorm.DB,
	logger logger.Interface,
) trainer.SessionLockRepository {
	return &SessionLockRepositoryImpl{
		db:     db,
		mapper: mappers.NewSessionLockMapper(),
		logger: logger,
	}
}

func (r *SessionLockRepositoryImpl) GetByUserID(ctx context.Context, userID uint) (*trainer.SessionLock, error) {
	var model models.ActiveSessionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get session lock", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get session lock: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map session lock model to entity", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map session lock: %w", err)
	}

	return entity, nil
}

func (r *SessionLockRepositoryImpl) GetByUserIDForUpdate(ctx context.Context, userID uint) (*trainer.SessionLock, error) {
	var model models.ActiveSessionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to lock session lock row", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to lock session lock row: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map session lock model to entity", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map session lock: %w", err)
	}

	return entity, nil
}

// Upsert overwrites the user's lock row with the new holder. Acquisition over
// a stale holder reuses the row, keyed by the user_id unique constraint.
func (r *SessionLockRepositoryImpl) Upsert(ctx context.Context, lock *trainer.SessionLock) error {
	model := r.mapper.ToModel(lock)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"trainer_id", "device_id", "last_heartbeat", "started_at",
		}),
	}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert session lock", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to upsert session lock: %w", err)
	}

	r.logger.Infow("session lock acquired", "user_id", model.UserID, "trainer_id", model.TrainerID, "device_id", model.DeviceID)
	return nil
}

// Refresh advances last_heartbeat for the (user, device) holder. A zero row
// count means the device no longer holds the lock; the caller decides whether
// that matters.
func (r *SessionLockRepositoryImpl) Refresh(ctx context.Context, userID uint, deviceID string, now time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ActiveSessionModel{}).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Update("last_heartbeat", now)
	if result.Error != nil {
		r.logger.Errorw("failed to refresh session lock", "user_id", userID, "error", result.Error)
		return 0, fmt.Errorf("failed to refresh session lock: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *SessionLockRepositoryImpl) Delete(ctx context.Context, userID uint, deviceID string) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ? AND device_id = ?", userID, deviceID).
		Delete(&models.ActiveSessionModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete session lock", "user_id", userID, "error", err)
		return fmt.Errorf("failed to delete session lock: %w", err)
	}

	return nil
}
