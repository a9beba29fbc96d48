package usecases

import (
	"context"
	"fmt"

	"podelam/internal/application/trainer/dto"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/biztime"
	"podelam/internal/shared/logger"
)

type GetLimitQuery struct {
	UserID uint
}

// GetLimitUseCase reports the quota state for the user's subscription.
// Users without a live subscription get the unlimited sentinel, same as
// all-trainers plans. That is deliberately asymmetric with session_start,
// which rejects missing subscriptions; the frontend relies on this read
// never gating.
type GetLimitUseCase struct {
	subscriptionRepo trainer.SubscriptionRepository
	logger           logger.Interface
}

func NewGetLimitUseCase(
	subscriptionRepo trainer.SubscriptionRepository,
	logger logger.Interface,
) *GetLimitUseCase {
	return &GetLimitUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetLimitUseCase) Execute(ctx context.Context, query GetLimitQuery) (*dto.LimitDTO, error) {
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription for limit check", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	if sub == nil || sub.IsExpired(biztime.NowUTC()) || sub.Unlimited() {
		return dto.UnlimitedSentinel(), nil
	}

	return &dto.LimitDTO{
		Limited:   sub.LimitReached(),
		Used:      sub.SessionsUsed(),
		Total:     sub.SessionsTotal(),
		Remaining: sub.Remaining(),
	}, nil
}
