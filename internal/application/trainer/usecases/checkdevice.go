package usecases

import (
	"context"
	"fmt"
	"time"

	"podelam/internal/application/trainer/dto"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/biztime"
	"podelam/internal/shared/logger"
)

type CheckDeviceQuery struct {
	UserID   uint
	DeviceID string
}

// CheckDeviceUseCase reports whether another device holds a live lock for
// the user. Pure read, never mutates.
type CheckDeviceUseCase struct {
	lockRepo         trainer.SessionLockRepository
	heartbeatTimeout time.Duration
	logger           logger.Interface
}

func NewCheckDeviceUseCase(
	lockRepo trainer.SessionLockRepository,
	heartbeatTimeout time.Duration,
	logger logger.Interface,
) *CheckDeviceUseCase {
	if heartbeatTimeout <= 0 {
		heartbeatTimeout = trainer.DefaultHeartbeatTimeout
	}
	return &CheckDeviceUseCase{
		lockRepo:         lockRepo,
		heartbeatTimeout: heartbeatTimeout,
		logger:           logger,
	}
}

func (uc *CheckDeviceUseCase) Execute(ctx context.Context, query CheckDeviceQuery) (*dto.DeviceStatusDTO, error) {
	lock, err := uc.lockRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to read session lock", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to read session lock: %w", err)
	}

	if lock != nil && lock.Blocks(query.DeviceID, biztime.NowUTC(), uc.heartbeatTimeout) {
		return &dto.DeviceStatusDTO{Blocked: true, TrainerID: lock.TrainerID()}, nil
	}

	return &dto.DeviceStatusDTO{Blocked: false}, nil
}
