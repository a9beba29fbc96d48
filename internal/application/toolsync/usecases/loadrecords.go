package usecases

import (
	"context"
	"fmt"

	"podelam/internal/domain/toolsync"
	"podelam/internal/shared/logger"
)

type LoadRecordsQuery struct {
	UserID   string
	ToolType string
}

// LoadRecordsUseCase returns all stored results for (user, tool), oldest
// first, each payload carrying its server id so clients can reconcile.
type LoadRecordsUseCase struct {
	recordRepo toolsync.Repository
	logger     logger.Interface
}

func NewLoadRecordsUseCase(recordRepo toolsync.Repository, logger logger.Interface) *LoadRecordsUseCase {
	return &LoadRecordsUseCase{
		recordRepo: recordRepo,
		logger:     logger,
	}
}

func (uc *LoadRecordsUseCase) Execute(ctx context.Context, query LoadRecordsQuery) ([]map[string]any, error) {
	records, err := uc.recordRepo.ListByUserAndTool(ctx, query.UserID, query.ToolType)
	if err != nil {
		uc.logger.Errorw("failed to load tool sessions", "tool_type", query.ToolType, "error", err)
		return nil, fmt.Errorf("failed to load tool sessions: %w", err)
	}

	sessions := make([]map[string]any, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, record.PayloadWithServerID())
	}

	return sessions, nil
}
