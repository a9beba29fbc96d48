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

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
	logger logger.Interface
}

func NewSessionRepository(
	db *gorm.DB,
	logger logger.Interface,
) trainer.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSessionMapper(),
		logger: logger,
	}
}

func (r *SessionRepositoryImpl) GetByUserAndSessionID(ctx context.Context, userID uint, sessionID string) (*trainer.Session, error) {
	var model models.SessionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ? AND session_id = ?", userID, sessionID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get session", "user_id", userID, "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map session model to entity", "user_id", userID, "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("failed to map session: %w", err)
	}

	return entity, nil
}

// Upsert writes the row keyed by (user_id, session_id). Repeated saves for
// the same client session identifier update the stored attempt in place.
func (r *SessionRepositoryImpl) Upsert(ctx context.Context, sessionEntity *trainer.Session) error {
	model, err := r.mapper.ToModel(sessionEntity)
	if err != nil {
		r.logger.Errorw("failed to map session entity to model", "error", err)
		return fmt.Errorf("failed to map session entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		// Re-saves never rebind the trainer or the start time; only the
		// completion state and payload move.
		DoUpdates: clause.AssignmentColumns([]string{
			"completed_at", "scores", "result", "answers", "updated_at",
		}),
	}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert session", "user_id", model.UserID, "session_id", model.SessionID, "error", err)
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	if model.ID != 0 && sessionEntity.ID() == 0 {
		if err := sessionEntity.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set session ID: %w", err)
		}
	}

	return nil
}

func (r *SessionRepositoryImpl) ListByUser(ctx context.Context, userID uint, trainerID string, limit int) ([]*trainer.Session, error) {
	var sessionModels []*models.SessionModel

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("user_id = ?", userID)
	if trainerID != "" {
		query = query.Where("trainer_id = ?", trainerID)
	}

	if err := query.Order("started_at DESC").Limit(limit).Find(&sessionModels).Error; err != nil {
		r.logger.Errorw("failed to list sessions", "user_id", userID, "trainer_id", trainerID, "error", err)
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	entities, err := r.mapper.ToEntities(sessionModels)
	if err != nil {
		r.logger.Errorw("failed to map session models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map sessions: %w", err)
	}

	return entities, nil
}

func (r *SessionRepositoryImpl) CountCompleted(ctx context.Context, userID uint, trainerID string) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SessionModel{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID)
	if trainerID != "" {
		query = query.Where("trainer_id = ?", trainerID)
	}

	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count completed sessions", "user_id", userID, "trainer_id", trainerID, "error", err)
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}
