package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"podelam/internal/domain/toolsync"
	"podelam/internal/infrastructure/persistence/mappers"
	"podelam/internal/infrastructure/persistence/models"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

type ToolSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ToolSessionMapper
	logger logger.Interface
}

func NewToolSessionRepository(
	db *gorm.DB,
	logger logger.Interface,
) toolsync.Repository {
	return &ToolSessionRepositoryImpl{
		db:     db,
		mapper: mappers.NewToolSessionMapper(),
		logger: logger,
	}
}

func (r *ToolSessionRepositoryImpl) ListByUserAndTool(ctx context.Context, userID, toolType string) ([]*toolsync.Record, error) {
	var recordModels []*models.ToolSessionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ? AND tool_type = ?", userID, toolType).
		Order("created_at ASC, id ASC").
		Find(&recordModels).Error; err != nil {
		r.logger.Errorw("failed to list tool sessions", "user_id", userID, "tool_type", toolType, "error", err)
		return nil, fmt.Errorf("failed to list tool sessions: %w", err)
	}

	entities, err := r.mapper.ToEntities(recordModels)
	if err != nil {
		r.logger.Errorw("failed to map tool session models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map tool sessions: %w", err)
	}

	return entities, nil
}

func (r *ToolSessionRepositoryImpl) Insert(ctx context.Context, record *toolsync.Record) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		r.logger.Errorw("failed to map tool session entity to model", "error", err)
		return fmt.Errorf("failed to map tool session entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to insert tool session", "user_id", model.UserID, "tool_type", model.ToolType, "error", err)
		return fmt.Errorf("failed to insert tool session: %w", err)
	}

	if err := record.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set tool session ID: %w", err)
	}

	return nil
}

func (r *ToolSessionRepositoryImpl) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Delete(&models.ToolSessionModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete tool sessions", "ids", ids, "error", err)
		return fmt.Errorf("failed to delete tool sessions: %w", err)
	}

	return nil
}

// DeleteBeyond prunes rows past the retention window, newest kept. The id
// list is resolved first so the delete stays portable across drivers.
func (r *ToolSessionRepositoryImpl) DeleteBeyond(ctx context.Context, userID, toolType string, keep int) error {
	if keep <= 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	var ids []uint
	if err := tx.Model(&models.ToolSessionModel{}).
		Where("user_id = ? AND tool_type = ?", userID, toolType).
		Order("created_at DESC, id DESC").
		Pluck("id", &ids).Error; err != nil {
		r.logger.Errorw("failed to resolve tool sessions beyond retention", "user_id", userID, "tool_type", toolType, "error", err)
		return fmt.Errorf("failed to resolve tool sessions beyond retention: %w", err)
	}

	if len(ids) <= keep {
		return nil
	}
	ids = ids[keep:]

	if err := tx.Where("id IN ?", ids).Delete(&models.ToolSessionModel{}).Error; err != nil {
		r.logger.Errorw("failed to prune tool sessions", "user_id", userID, "tool_type", toolType, "error", err)
		return fmt.Errorf("failed to prune tool sessions: %w", err)
	}

	r.logger.Debugw("pruned tool sessions beyond retention", "user_id", userID, "tool_type", toolType, "deleted", len(ids))
	return nil
}
