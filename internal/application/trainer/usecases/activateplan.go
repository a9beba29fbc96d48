package usecases

import (
	"context"
	"fmt"

	"podelam/internal/application/trainer/dto"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/biztime"
	"podelam/internal/shared/logger"
)

type ActivatePlanCommand struct {
	UserID    uint
	PlanID    string
	TrainerID string
}

// ActivatePlanUseCase replaces the user's subscription with a fresh one for
// the requested plan. Whatever was there before is overwritten and the usage
// counter restarts at zero.
type ActivatePlanUseCase struct {
	subscriptionRepo trainer.SubscriptionRepository
	logger           logger.Interface
}

func NewActivatePlanUseCase(
	subscriptionRepo trainer.SubscriptionRepository,
	logger logger.Interface,
) *ActivatePlanUseCase {
	return &ActivatePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ActivatePlanUseCase) Execute(ctx context.Context, cmd ActivatePlanCommand) (*dto.SubscriptionDTO, error) {
	plan, ok := trainer.PlanByID(trainer.PlanID(cmd.PlanID))
	if !ok {
		return nil, trainer.ErrInvalidPlan
	}

	now := biztime.NowUTC()
	sub, err := trainer.NewSubscription(cmd.UserID, plan, cmd.TrainerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := uc.subscriptionRepo.Upsert(ctx, sub); err != nil {
		uc.logger.Errorw("failed to activate plan", "user_id", cmd.UserID, "plan_id", cmd.PlanID, "error", err)
		return nil, fmt.Errorf("failed to activate plan: %w", err)
	}

	uc.logger.Infow("plan activated",
		"user_id", cmd.UserID,
		"plan_id", cmd.PlanID,
		"expires_at", sub.ExpiresAt())

	return dto.NewSubscriptionDTO(sub), nil
}
