package user

import "context"

type Repository interface {
	// GetByEmail resolves a normalized email to a user. Returns (nil, nil)
	// when no account matches.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}
