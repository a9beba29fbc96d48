package usecases

import (
	"context"
	"fmt"
	"time"

	"podelam/internal/domain/trainer"
	"podelam/internal/shared/biztime"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

type HeartbeatCommand struct {
	UserID   uint
	DeviceID string
}

// HeartbeatUseCase refreshes the liveness of a held lock. A live lock held
// by a different device rejects the caller without touching anything. When
// the caller is not the holder and no live competitor exists, the refresh
// matches zero rows and that is still success: retries around a lock
// handover must stay harmless.
type HeartbeatUseCase struct {
	lockRepo         trainer.SessionLockRepository
	txManager        *db.TransactionManager
	heartbeatTimeout time.Duration
	logger           logger.Interface
}

func NewHeartbeatUseCase(
	lockRepo trainer.SessionLockRepository,
	txManager *db.TransactionManager,
	heartbeatTimeout time.Duration,
	logger logger.Interface,
) *HeartbeatUseCase {
	if heartbeatTimeout <= 0 {
		heartbeatTimeout = trainer.DefaultHeartbeatTimeout
	}
	return &HeartbeatUseCase{
		lockRepo:         lockRepo,
		txManager:        txManager,
		heartbeatTimeout: heartbeatTimeout,
		logger:           logger,
	}
}

func (uc *HeartbeatUseCase) Execute(ctx context.Context, cmd HeartbeatCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := biztime.NowUTC()

		lock, err := uc.lockRepo.GetByUserIDForUpdate(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to read session lock: %w", err)
		}
		if lock != nil && lock.Blocks(cmd.DeviceID, now, uc.heartbeatTimeout) {
			// Heartbeat rejections carry the trainer only; the stale
			// heartbeat time is not part of this response.
			return &trainer.SessionActiveError{TrainerID: lock.TrainerID()}
		}

		rows, err := uc.lockRepo.Refresh(txCtx, cmd.UserID, cmd.DeviceID, now)
		if err != nil {
			return fmt.Errorf("failed to refresh session lock: %w", err)
		}
		if rows == 0 {
			uc.logger.Debugw("heartbeat matched no lock row",
				"user_id", cmd.UserID,
				"device_id", cmd.DeviceID)
		}

		return nil
	})
}
