package usecases

import (
	"context"
	"fmt"

	"podelam/internal/domain/trainer"
	"podelam/internal/shared/logger"
)

type EndSessionCommand struct {
	UserID   uint
	DeviceID string
}

// EndSessionUseCase releases the device's lock. There is no liveness check:
// a device may always drop what it believes is its own lock, and releasing
// an absent or foreign row does nothing.
type EndSessionUseCase struct {
	lockRepo trainer.SessionLockRepository
	logger   logger.Interface
}

func NewEndSessionUseCase(
	lockRepo trainer.SessionLockRepository,
	logger logger.Interface,
) *EndSessionUseCase {
	return &EndSessionUseCase{
		lockRepo: lockRepo,
		logger:   logger,
	}
}

func (uc *EndSessionUseCase) Execute(ctx context.Context, cmd EndSessionCommand) error {
	if err := uc.lockRepo.Delete(ctx, cmd.UserID, cmd.DeviceID); err != nil {
		uc.logger.Errorw("failed to release session lock", "user_id", cmd.UserID, "error", err)
		return fmt.Errorf("failed to release session lock: %w", err)
	}

	uc.logger.Infow("trainer session ended",
		"user_id", cmd.UserID,
		"device_id", cmd.DeviceID)

	return nil
}
