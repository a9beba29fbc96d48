package usecases

import (
	"context"
	"fmt"

	"podelam/internal/domain/toolsync"
	"podelam/internal/shared/config"
	"podelam/internal/shared/logger"
)

type SaveRecordCommand struct {
	UserID   string
	ToolType string
	Payload  map[string]any
}

type SaveRecordResult struct {
	ID uint
}

// SaveRecordUseCase stores one tool result and prunes rows beyond the
// tool's retention cap, oldest first.
type SaveRecordUseCase struct {
	recordRepo toolsync.Repository
	syncCfg    *config.SyncConfig
	logger     logger.Interface
}

func NewSaveRecordUseCase(
	recordRepo toolsync.Repository,
	syncCfg *config.SyncConfig,
	logger logger.Interface,
) *SaveRecordUseCase {
	return &SaveRecordUseCase{
		recordRepo: recordRepo,
		syncCfg:    syncCfg,
		logger:     logger,
	}
}

func (uc *SaveRecordUseCase) Execute(ctx context.Context, cmd SaveRecordCommand) (*SaveRecordResult, error) {
	record, err := toolsync.NewRecord(cmd.UserID, cmd.ToolType, cmd.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool session record: %w", err)
	}

	if err := uc.recordRepo.Insert(ctx, record); err != nil {
		uc.logger.Errorw("failed to save tool session", "tool_type", cmd.ToolType, "error", err)
		return nil, fmt.Errorf("failed to save tool session: %w", err)
	}

	keep := uc.syncCfg.KeepFor(cmd.ToolType)
	if err := uc.recordRepo.DeleteBeyond(ctx, cmd.UserID, cmd.ToolType, keep); err != nil {
		uc.logger.Errorw("failed to prune tool sessions", "tool_type", cmd.ToolType, "error", err)
		return nil, fmt.Errorf("failed to prune tool sessions: %w", err)
	}

	return &SaveRecordResult{ID: record.ID()}, nil
}
