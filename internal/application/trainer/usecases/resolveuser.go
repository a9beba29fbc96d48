package usecases

import (
	"context"
	"fmt"

	"podelam/internal/domain/trainer"
	"podelam/internal/domain/user"
	"podelam/internal/shared/logger"
)

type ResolveUserQuery struct {
	Email string
}

// ResolveUserUseCase maps a client-supplied email to the internal user id.
// Every trainer access action starts here; the auth service owns the users
// table and this lookup is the only contact with it.
type ResolveUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewResolveUserUseCase(userRepo user.Repository, logger logger.Interface) *ResolveUserUseCase {
	return &ResolveUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ResolveUserUseCase) Execute(ctx context.Context, query ResolveUserQuery) (*user.User, error) {
	account, err := uc.userRepo.GetByEmail(ctx, query.Email)
	if err != nil {
		uc.logger.Errorw("failed to look up user by email", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if account == nil {
		return nil, trainer.ErrUserNotFound
	}

	return account, nil
}
