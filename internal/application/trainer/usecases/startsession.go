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

type StartSessionCommand struct {
	UserID    uint
	TrainerID string
	DeviceID  string
}

// StartSessionUseCase gates a session start and acquires the device lock.
// The gate order is fixed: live subscription, quota, then lock. The lock
// row is read under FOR UPDATE inside one transaction so two devices racing
// for the same user cannot both observe it free.
type StartSessionUseCase struct {
	subscriptionRepo trainer.SubscriptionRepository
	lockRepo         trainer.SessionLockRepository
	txManager        *db.TransactionManager
	heartbeatTimeout time.Duration
	logger           logger.Interface
}

func NewStartSessionUseCase(
	subscriptionRepo trainer.SubscriptionRepository,
	lockRepo trainer.SessionLockRepository,
	txManager *db.TransactionManager,
	heartbeatTimeout time.Duration,
	logger logger.Interface,
) *StartSessionUseCase {
	if heartbeatTimeout <= 0 {
		heartbeatTimeout = trainer.DefaultHeartbeatTimeout
	}
	return &StartSessionUseCase{
		subscriptionRepo: subscriptionRepo,
		lockRepo:         lockRepo,
		txManager:        txManager,
		heartbeatTimeout: heartbeatTimeout,
		logger:           logger,
	}
}

func (uc *StartSessionUseCase) Execute(ctx context.Context, cmd StartSessionCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := biztime.NowUTC()

		sub, err := uc.subscriptionRepo.GetByUserID(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil || sub.IsExpired(now) {
			return trainer.ErrNoSubscription
		}
		if sub.LimitReached() {
			return &trainer.SessionLimitReachedError{
				Used:  sub.SessionsUsed(),
				Total: sub.SessionsTotal(),
			}
		}

		lock, err := uc.lockRepo.GetByUserIDForUpdate(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to read session lock: %w", err)
		}
		if lock != nil && lock.Blocks(cmd.DeviceID, now, uc.heartbeatTimeout) {
			return &trainer.SessionActiveError{
				TrainerID:     lock.TrainerID(),
				LastHeartbeat: lock.LastHeartbeat(),
			}
		}

		newLock, err := trainer.NewSessionLock(cmd.UserID, cmd.TrainerID, cmd.DeviceID, now)
		if err != nil {
			return fmt.Errorf("failed to create session lock: %w", err)
		}

		if err := uc.lockRepo.Upsert(txCtx, newLock); err != nil {
			return fmt.Errorf("failed to acquire session lock: %w", err)
		}

		uc.logger.Infow("trainer session started",
			"user_id", cmd.UserID,
			"trainer_id", cmd.TrainerID,
			"device_id", cmd.DeviceID)

		return nil
	})
}
