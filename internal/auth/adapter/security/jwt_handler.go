package security

import (
	"context"
	"errors"
	"time"

	"curiovault/internal/auth/config"
	"curiovault/internal/auth/domain/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// JWTokenService implements JWT token generation and validation
type JWTokenService struct {
	secretKey  []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	adminTTL   time.Duration
}

// NewJWTokenService creates a new JWT token service
func NewJWTokenService(cfg *config.Config) (*JWTokenService, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	if cfg.JWTIssuer == "" {
		return nil, errors.New("jwt issuer cannot be empty")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, errors.New("jwt token TTLs must be positive")
	}

	adminTTL := cfg.AdminTokenTTL
	if adminTTL <= 0 {
		adminTTL = cfg.AccessTokenTTL
	}

	return &JWTokenService{
		secretKey:  []byte(cfg.JWTSecretKey),
		issuer:     cfg.JWTIssuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		adminTTL:   adminTTL,
	}, nil
}

// GenerateAccessToken generates a short-lived access token for the given user
func (s *JWTokenService) GenerateAccessToken(ctx context.Context, userID, email string) (string, error) {
	return s.sign(userID, email, repository.RoleUser, repository.TokenTypeAccess, s.accessTTL)
}

// GenerateRefreshToken generates a long-lived refresh token for the given user
func (s *JWTokenService) GenerateRefreshToken(ctx context.Context, userID, email string) (string, error) {
	return s.sign(userID, email, repository.RoleUser, repository.TokenTypeRefresh, s.refreshTTL)
}

// GenerateAdminToken generates a token for the env-configured admin account
func (s *JWTokenService) GenerateAdminToken(ctx context.Context, email string) (string, error) {
	return s.sign("", email, repository.RoleAdmin, repository.TokenTypeAdmin, s.adminTTL)
}

func (s *JWTokenService) sign(userID, email, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &repository.Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTokenService) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &repository.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenSignatureInvalid
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*repository.Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

var _ repository.TokenService = (*JWTokenService)(nil)
