package usecases

import (
	"context"
	"fmt"

	"podelam/internal/application/trainer/dto"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/logger"
)

type SessionCountQuery struct {
	UserID    uint
	TrainerID string
}

// SessionCountUseCase reports completed sessions for a trainer. When a
// subscription row exists its counters win, expiry notwithstanding; users
// predating the subscription model fall back to counting completed records.
type SessionCountUseCase struct {
	subscriptionRepo trainer.SubscriptionRepository
	sessionRepo      trainer.SessionRepository
	logger           logger.Interface
}

func NewSessionCountUseCase(
	subscriptionRepo trainer.SubscriptionRepository,
	sessionRepo trainer.SessionRepository,
	logger logger.Interface,
) *SessionCountUseCase {
	return &SessionCountUseCase{
		subscriptionRepo: subscriptionRepo,
		sessionRepo:      sessionRepo,
		logger:           logger,
	}
}

func (uc *SessionCountUseCase) Execute(ctx context.Context, query SessionCountQuery) (*dto.SessionCountDTO, error) {
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription for session count", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	if sub != nil {
		total := sub.SessionsTotal()
		return &dto.SessionCountDTO{
			Count:     sub.SessionsUsed(),
			Total:     &total,
			TrainerID: query.TrainerID,
		}, nil
	}

	count, err := uc.sessionRepo.CountCompleted(ctx, query.UserID, query.TrainerID)
	if err != nil {
		uc.logger.Errorw("failed to count completed sessions", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	return &dto.SessionCountDTO{
		Count:     int(count),
		TrainerID: query.TrainerID,
	}, nil
}
