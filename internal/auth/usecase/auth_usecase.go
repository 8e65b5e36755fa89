package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"curiovault/internal/auth/adapter/mailer"
	"curiovault/internal/auth/config"
	"curiovault/internal/auth/domain/model"
	"curiovault/internal/auth/domain/repository"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrWeakPassword       = errors.New("password does not meet length requirements")
	ErrAdminDisabled      = errors.New("admin account is not configured")
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// TokenPair bundles the access token and the rotating refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req LoginRequest) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.User, *TokenPair, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUsecase implements the authentication logic.
type AuthUsecase struct {
	repo      repository.AuthRepository
	tokenRepo repository.EmailTokenRepository
	tokenSvc  repository.TokenService
	mail      mailer.Mailer
	bus       eventbus.EventBusInterface
	config    *config.Config
	log       logger.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	repo repository.AuthRepository,
	tokenRepo repository.EmailTokenRepository,
	tokenSvc repository.TokenService,
	mail mailer.Mailer,
	bus eventbus.EventBusInterface,
	cfg *config.Config,
	log logger.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		repo:      repo,
		tokenRepo: tokenRepo,
		tokenSvc:  tokenSvc,
		mail:      mail,
		bus:       bus,
		config:    cfg,
		log:       log.WithComponent("auth"),
	}
}

func (uc *AuthUsecase) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmailFormat
	}
	return nil
}

func (uc *AuthUsecase) validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new unverified account and mails a verification token.
func (uc *AuthUsecase) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := uc.validateEmail(email); err != nil {
		return nil, err
	}
	if err := uc.validatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:          email,
		HashedPassword: string(hashedPassword),
		IsActive:       true,
		IsVerified:     false,
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// A real username is chosen later through the profile endpoint.
	user.Username = model.InitialUsername(user.ID)
	if err := uc.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to assign initial username: %w", err)
	}

	if err := uc.issueEmailToken(ctx, user, model.TokenPurposeVerify); err != nil {
		return nil, err
	}

	if uc.bus != nil {
		uc.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(
			eventbus.EventTypeUserRegistered, user.ID, "auth"))
	}

	user.HashedPassword = ""
	return user, nil
}

// Login authenticates a user and issues an access/refresh token pair.
// Locked and unverified accounts are rejected.
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*model.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := uc.validateEmail(email); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, model.ErrAccountLocked
	}
	if !user.IsVerified {
		return nil, nil, model.ErrAccountInactive
	}

	pair, err := uc.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""
	return user, pair, nil
}

// Refresh rotates the refresh token and issues a fresh access token. Only
// tokens of type refresh are accepted here.
func (uc *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*model.User, *TokenPair, error) {
	claims, err := uc.tokenSvc.ValidateToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, ErrTokenInvalid
	}
	if claims.TokenType != repository.TokenTypeRefresh {
		return nil, nil, ErrTokenInvalid
	}

	user, err := uc.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, ErrUserNotFound
	}
	if !user.IsActive || !user.IsVerified {
		return nil, nil, ErrTokenInvalid
	}

	pair, err := uc.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""
	return user, pair, nil
}

// VerifyEmail consumes a verification token and marks the account verified.
func (uc *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	t, err := uc.tokenRepo.GetByToken(ctx, token, model.TokenPurposeVerify)
	if err != nil {
		return ErrTokenInvalid
	}
	if err := t.Usable(time.Now()); err != nil {
		return err
	}
	if err := uc.tokenRepo.MarkUsed(ctx, t.ID); err != nil {
		return err
	}

	user, err := uc.repo.GetUserByID(ctx, t.UserID)
	if err != nil {
		return ErrUserNotFound
	}
	user.IsVerified = true
	return uc.repo.UpdateUser(ctx, user)
}

// ResendVerification issues a fresh verification token. The response never
// reveals whether the address is registered.
func (uc *AuthUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := uc.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.IsVerified {
		return nil
	}
	return uc.issueEmailToken(ctx, user, model.TokenPurposeVerify)
}

// ForgotPassword issues a password reset token. The response never reveals
// whether the address is registered.
func (uc *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}
	return uc.issueEmailToken(ctx, user, model.TokenPurposeReset)
}

// ResetPassword consumes a reset token and sets the new password.
func (uc *AuthUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := uc.validatePassword(newPassword); err != nil {
		return err
	}

	t, err := uc.tokenRepo.GetByToken(ctx, token, model.TokenPurposeReset)
	if err != nil {
		return ErrTokenInvalid
	}
	if err := t.Usable(time.Now()); err != nil {
		return err
	}
	if err := uc.tokenRepo.MarkUsed(ctx, t.ID); err != nil {
		return err
	}

	user, err := uc.repo.GetUserByID(ctx, t.UserID)
	if err != nil {
		return ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashedPassword)
	return uc.repo.UpdateUser(ctx, user)
}

// ValidateToken validates a JWT string
func (uc *AuthUsecase) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GetUserByID retrieves a user by ID
func (uc *AuthUsecase) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.HashedPassword = ""
	return user, nil
}

// AdminLogin authenticates against the env-configured admin credentials and
// issues an admin token. Comparison is constant time.
func (uc *AuthUsecase) AdminLogin(ctx context.Context, email, password string) (string, error) {
	if uc.config.AdminEmail == "" || uc.config.AdminPassword == "" {
		return "", ErrAdminDisabled
	}

	emailOK := constantTimeEquals(email, uc.config.AdminEmail)
	passwordOK := constantTimeEquals(password, uc.config.AdminPassword)
	if !emailOK || !passwordOK {
		return "", ErrInvalidCredentials
	}

	return uc.tokenSvc.GenerateAdminToken(ctx, email)
}

func (uc *AuthUsecase) issueTokenPair(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := uc.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := uc.tokenSvc.GenerateRefreshToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (uc *AuthUsecase) issueEmailToken(ctx context.Context, user *model.User, purpose model.TokenPurpose) error {
	outstanding, err := uc.tokenRepo.CountOutstanding(ctx, user.ID, purpose)
	if err != nil {
		return err
	}
	if outstanding >= int64(uc.config.MaxTokenRequests) {
		return model.ErrTooManyTokens
	}

	ttl := uc.config.VerifyTokenTTL
	if purpose == model.TokenPurposeReset {
		ttl = uc.config.ResetTokenTTL
	}

	token := &model.EmailToken{
		UserID:    user.ID,
		Purpose:   purpose,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.tokenRepo.CreateToken(ctx, token); err != nil {
		return err
	}

	var sendErr error
	switch purpose {
	case model.TokenPurposeReset:
		sendErr = uc.mail.SendPasswordReset(ctx, user.Email, token.Token)
	default:
		sendErr = uc.mail.SendVerification(ctx, user.Email, token.Token)
	}
	if sendErr != nil {
		uc.log.WithFields(map[string]interface{}{"user_id": user.ID, "purpose": purpose}).
			Errorf("failed to send email: %v", sendErr)
	}
	return nil
}

func constantTimeEquals(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}

// Ensure AuthUsecase implements AuthUsecaseInterface
var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
