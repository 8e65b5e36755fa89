package repository

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the token_type claim. The middleware never accepts
// one type where another is expected.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeAdmin   = "admin"
)

// Roles carried in the role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// TokenService defines the interface for token operations
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, email string) (string, error)
	GenerateRefreshToken(ctx context.Context, userID, email string) (string, error)
	GenerateAdminToken(ctx context.Context, email string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents JWT claims
type Claims struct {
	UserID    string `json:"userID,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
