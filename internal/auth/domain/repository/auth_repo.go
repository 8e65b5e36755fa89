package repository

import (
	"context"

	"curiovault/internal/auth/domain/model"
)

// AuthRepository defines persistence operations for users.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, query string, offset, limit int) ([]*model.User, int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

// EmailTokenRepository defines persistence operations for single-use email tokens.
type EmailTokenRepository interface {
	CreateToken(ctx context.Context, token *model.EmailToken) error
	GetByToken(ctx context.Context, token string, purpose model.TokenPurpose) (*model.EmailToken, error)
	MarkUsed(ctx context.Context, id string) error
	CountOutstanding(ctx context.Context, userID string, purpose model.TokenPurpose) (int64, error)
}
