package usecases

import (
	"context"
	"fmt"
	"time"

	"podelam/internal/application/trainer/dto"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/biztime"
	"podelam/internal/shared/constants"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

type SaveSessionCommand struct {
	UserID      uint
	TrainerID   string
	SessionID   string
	StartedAt   *time.Time
	CompletedAt *time.Time
	Scores      map[string]any
	Result      any
	Answers     map[string]any
}

// SaveSessionUseCase upserts the session record and settles the quota. The
// usage counter moves only on the incomplete-to-complete transition of a
// session identifier, and only for trainer-scoped subscriptions; re-saving
// an already completed session updates its payload without double-counting.
// Record write and counter bump commit as one transaction.
type SaveSessionUseCase struct {
	sessionRepo      trainer.SessionRepository
	subscriptionRepo trainer.SubscriptionRepository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewSaveSessionUseCase(
	sessionRepo trainer.SessionRepository,
	subscriptionRepo trainer.SubscriptionRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *SaveSessionUseCase {
	return &SaveSessionUseCase{
		sessionRepo:      sessionRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *SaveSessionUseCase) Execute(ctx context.Context, cmd SaveSessionCommand) (*dto.SaveSessionResultDTO, error) {
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.sessionRepo.GetByUserAndSessionID(txCtx, cmd.UserID, cmd.SessionID)
		if err != nil {
			return fmt.Errorf("failed to read session: %w", err)
		}
		wasCompleted := existing != nil && existing.Completed()

		startedAt := biztime.NowUTC()
		if cmd.StartedAt != nil {
			startedAt = *cmd.StartedAt
		}

		sess, err := trainer.NewSession(cmd.UserID, cmd.TrainerID, cmd.SessionID,
			startedAt, cmd.CompletedAt, cmd.Scores, cmd.Result, cmd.Answers)
		if err != nil {
			return fmt.Errorf("failed to build session: %w", err)
		}

		if err := uc.sessionRepo.Upsert(txCtx, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		if cmd.CompletedAt != nil && !wasCompleted {
			if err := uc.subscriptionRepo.IncrementUsage(txCtx, cmd.UserID); err != nil {
				return fmt.Errorf("failed to increment usage: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save session",
			"user_id", cmd.UserID,
			"session_id", cmd.SessionID,
			"error", err)
		return nil, err
	}

	// Counters are re-read after commit, straight from the row. No expiry
	// filter here: the save already happened and the caller only needs the
	// numbers as stored.
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read subscription counters: %w", err)
	}

	result := &dto.SaveSessionResultDTO{
		SessionsUsed:  0,
		SessionsTotal: constants.LegacyDefaultSessionsTotal,
	}
	if sub != nil {
		result.SessionsUsed = sub.SessionsUsed()
		result.SessionsTotal = sub.SessionsTotal()
	}

	return result, nil
}
