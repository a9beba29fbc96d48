package usecases

import (
	"context"
	"fmt"

	"podelam/internal/application/trainer/dto"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/biztime"
	"podelam/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	UserID uint
}

// GetSubscriptionUseCase returns the user's current subscription view, or
// nil when none exists or the stored row has expired. Expiry is evaluated at
// read time; the row itself is left untouched.
type GetSubscriptionUseCase struct {
	subscriptionRepo trainer.SubscriptionRepository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo trainer.SubscriptionRepository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	if sub == nil || sub.IsExpired(biztime.NowUTC()) {
		return nil, nil
	}

	return dto.NewSubscriptionDTO(sub), nil
}
