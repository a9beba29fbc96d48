package usecases

import (
	"context"
	"fmt"

	"podelam/internal/application/trainer/dto"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/constants"
	"podelam/internal/shared/logger"
)

type ListSessionsQuery struct {
	UserID    uint
	TrainerID string
}

// ListSessionsUseCase returns the session history, most recent first. A
// trainer-scoped listing is capped at 50 rows, the global one at 100.
type ListSessionsUseCase struct {
	sessionRepo trainer.SessionRepository
	logger      logger.Interface
}

func NewListSessionsUseCase(
	sessionRepo trainer.SessionRepository,
	logger logger.Interface,
) *ListSessionsUseCase {
	return &ListSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, query ListSessionsQuery) ([]*dto.SessionDTO, error) {
	limit := constants.SessionListLimitAll
	if query.TrainerID != "" {
		limit = constants.SessionListLimitTrainer
	}

	sessions, err := uc.sessionRepo.ListByUser(ctx, query.UserID, query.TrainerID, limit)
	if err != nil {
		uc.logger.Errorw("failed to list sessions", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return dto.NewSessionDTOs(sessions), nil
}
