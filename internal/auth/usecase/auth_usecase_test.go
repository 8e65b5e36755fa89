package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"curiovault/internal/auth/config"
	"curiovault/internal/auth/domain/model"
	"curiovault/internal/auth/domain/repository"
	"curiovault/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "507f1f77bcf86cd799439011"
	}
	return args.Error(0)
}

func (m *mockAuthRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockAuthRepo) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthRepo) ListUsers(ctx context.Context, query string, offset, limit int) ([]*model.User, int64, error) {
	args := m.Called(ctx, query, offset, limit)
	if u := args.Get(0); u != nil {
		return u.([]*model.User), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockAuthRepo) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockEmailTokenRepo struct {
	mock.Mock
}

func (m *mockEmailTokenRepo) CreateToken(ctx context.Context, token *model.EmailToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockEmailTokenRepo) GetByToken(ctx context.Context, token string, purpose model.TokenPurpose) (*model.EmailToken, error) {
	args := m.Called(ctx, token, purpose)
	if t := args.Get(0); t != nil {
		return t.(*model.EmailToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmailTokenRepo) MarkUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEmailTokenRepo) CountOutstanding(ctx context.Context, userID string, purpose model.TokenPurpose) (int64, error) {
	args := m.Called(ctx, userID, purpose)
	return args.Get(0).(int64), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, email string) (string, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateRefreshToken(ctx context.Context, userID, email string) (string, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateAdminToken(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	args := m.Called(ctx, tokenString)
	if c := args.Get(0); c != nil {
		return c.(*repository.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerification(ctx context.Context, toEmail, token string) error {
	return m.Called(ctx, toEmail, token).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	return m.Called(ctx, toEmail, token).Error(0)
}

var (
	_ repository.AuthRepository       = (*mockAuthRepo)(nil)
	_ repository.EmailTokenRepository = (*mockEmailTokenRepo)(nil)
	_ repository.TokenService         = (*mockTokenService)(nil)
)

type AuthUsecaseTestSuite struct {
	suite.Suite
	repo      *mockAuthRepo
	tokenRepo *mockEmailTokenRepo
	tokenSvc  *mockTokenService
	mail      *mockMailer
	uc        *AuthUsecase
	ctx       context.Context
}

func (s *AuthUsecaseTestSuite) SetupTest() {
	s.repo = new(mockAuthRepo)
	s.tokenRepo = new(mockEmailTokenRepo)
	s.tokenSvc = new(mockTokenService)
	s.mail = new(mockMailer)
	s.ctx = context.Background()

	cfg := &config.Config{
		VerifyTokenTTL:   24 * time.Hour,
		ResetTokenTTL:    2 * time.Hour,
		MaxTokenRequests: 5,
		AdminEmail:       "admin@curiovault.test",
		AdminPassword:    "admin-secret-password",
	}
	s.uc = NewAuthUsecase(s.repo, s.tokenRepo, s.tokenSvc, s.mail, nil, cfg, logger.NewLogger())
}

func (s *AuthUsecaseTestSuite) verifiedUser(password string) *model.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(s.T(), err)
	return &model.User{
		ID:             "507f1f77bcf86cd799439011",
		Email:          "grower@example.com",
		Username:       "grower",
		HashedPassword: string(hashed),
		IsActive:       true,
		IsVerified:     true,
	}
}

func (s *AuthUsecaseTestSuite) TestRegister_Success() {
	s.repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	s.repo.On("UpdateUser", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	s.tokenRepo.On("CountOutstanding", mock.Anything, mock.Anything, model.TokenPurposeVerify).Return(int64(0), nil)
	s.tokenRepo.On("CreateToken", mock.Anything, mock.AnythingOfType("*model.EmailToken")).Return(nil)
	s.mail.On("SendVerification", mock.Anything, "new@example.com", mock.Anything).Return(nil)

	user, err := s.uc.Register(s.ctx, RegisterRequest{Email: "New@Example.com ", Password: "password123"})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "new@example.com", user.Email)
	assert.False(s.T(), user.IsVerified)
	assert.Empty(s.T(), user.HashedPassword)
	assert.Equal(s.T(), model.InitialUsername(user.ID), user.Username)
	s.mail.AssertExpectations(s.T())
}

func (s *AuthUsecaseTestSuite) TestRegister_InvalidEmail() {
	_, err := s.uc.Register(s.ctx, RegisterRequest{Email: "not-an-email", Password: "password123"})
	assert.ErrorIs(s.T(), err, ErrInvalidEmailFormat)
	s.repo.AssertNotCalled(s.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestRegister_WeakPassword() {
	_, err := s.uc.Register(s.ctx, RegisterRequest{Email: "new@example.com", Password: "short"})
	assert.ErrorIs(s.T(), err, ErrWeakPassword)
}

func (s *AuthUsecaseTestSuite) TestRegister_EmailTaken() {
	s.repo.On("CreateUser", mock.Anything, mock.Anything).Return(model.ErrUserExists)

	_, err := s.uc.Register(s.ctx, RegisterRequest{Email: "taken@example.com", Password: "password123"})
	assert.ErrorIs(s.T(), err, ErrEmailTaken)
}

func (s *AuthUsecaseTestSuite) TestRegister_MailFailureDoesNotFailRegistration() {
	s.repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	s.repo.On("UpdateUser", mock.Anything, mock.Anything).Return(nil)
	s.tokenRepo.On("CountOutstanding", mock.Anything, mock.Anything, model.TokenPurposeVerify).Return(int64(0), nil)
	s.tokenRepo.On("CreateToken", mock.Anything, mock.Anything).Return(nil)
	s.mail.On("SendVerification", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	user, err := s.uc.Register(s.ctx, RegisterRequest{Email: "new@example.com", Password: "password123"})
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), user)
}

func (s *AuthUsecaseTestSuite) TestLogin_Success() {
	user := s.verifiedUser("password123")
	s.repo.On("GetUserByEmail", mock.Anything, "grower@example.com").Return(user, nil)
	s.tokenSvc.On("GenerateAccessToken", mock.Anything, user.ID, user.Email).Return("access-token", nil)
	s.tokenSvc.On("GenerateRefreshToken", mock.Anything, user.ID, user.Email).Return("refresh-token", nil)

	got, pair, err := s.uc.Login(s.ctx, LoginRequest{Email: "Grower@Example.com", Password: "password123"})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "access-token", pair.AccessToken)
	assert.Equal(s.T(), "refresh-token", pair.RefreshToken)
	assert.Empty(s.T(), got.HashedPassword)
}

func (s *AuthUsecaseTestSuite) TestLogin_WrongPassword() {
	user := s.verifiedUser("password123")
	s.repo.On("GetUserByEmail", mock.Anything, "grower@example.com").Return(user, nil)

	_, _, err := s.uc.Login(s.ctx, LoginRequest{Email: "grower@example.com", Password: "wrong-password"})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *AuthUsecaseTestSuite) TestLogin_UnknownEmail() {
	s.repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, model.ErrUserNotFound)

	_, _, err := s.uc.Login(s.ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *AuthUsecaseTestSuite) TestLogin_LockedAccount() {
	user := s.verifiedUser("password123")
	user.IsActive = false
	s.repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	_, _, err := s.uc.Login(s.ctx, LoginRequest{Email: user.Email, Password: "password123"})
	assert.ErrorIs(s.T(), err, model.ErrAccountLocked)
}

func (s *AuthUsecaseTestSuite) TestLogin_UnverifiedAccount() {
	user := s.verifiedUser("password123")
	user.IsVerified = false
	s.repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	_, _, err := s.uc.Login(s.ctx, LoginRequest{Email: user.Email, Password: "password123"})
	assert.ErrorIs(s.T(), err, model.ErrAccountInactive)
}

func (s *AuthUsecaseTestSuite) TestRefresh_Success() {
	user := s.verifiedUser("password123")
	claims := &repository.Claims{UserID: user.ID, Email: user.Email, TokenType: repository.TokenTypeRefresh}
	s.tokenSvc.On("ValidateToken", mock.Anything, "old-refresh").Return(claims, nil)
	s.repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)
	s.tokenSvc.On("GenerateAccessToken", mock.Anything, user.ID, user.Email).Return("new-access", nil)
	s.tokenSvc.On("GenerateRefreshToken", mock.Anything, user.ID, user.Email).Return("new-refresh", nil)

	_, pair, err := s.uc.Refresh(s.ctx, "old-refresh")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "new-access", pair.AccessToken)
	assert.Equal(s.T(), "new-refresh", pair.RefreshToken)
}

func (s *AuthUsecaseTestSuite) TestRefresh_RejectsAccessToken() {
	claims := &repository.Claims{UserID: "507f1f77bcf86cd799439011", TokenType: repository.TokenTypeAccess}
	s.tokenSvc.On("ValidateToken", mock.Anything, "an-access-token").Return(claims, nil)

	_, _, err := s.uc.Refresh(s.ctx, "an-access-token")
	assert.ErrorIs(s.T(), err, ErrTokenInvalid)
	s.repo.AssertNotCalled(s.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestRefresh_InactiveUser() {
	user := s.verifiedUser("password123")
	user.IsActive = false
	claims := &repository.Claims{UserID: user.ID, TokenType: repository.TokenTypeRefresh}
	s.tokenSvc.On("ValidateToken", mock.Anything, "old-refresh").Return(claims, nil)
	s.repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

	_, _, err := s.uc.Refresh(s.ctx, "old-refresh")
	assert.ErrorIs(s.T(), err, ErrTokenInvalid)
}

func (s *AuthUsecaseTestSuite) TestVerifyEmail_Success() {
	token := &model.EmailToken{
		ID:        "tok-1",
		UserID:    "507f1f77bcf86cd799439011",
		Purpose:   model.TokenPurposeVerify,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	user := s.verifiedUser("password123")
	user.IsVerified = false

	s.tokenRepo.On("GetByToken", mock.Anything, "raw-token", model.TokenPurposeVerify).Return(token, nil)
	s.tokenRepo.On("MarkUsed", mock.Anything, "tok-1").Return(nil)
	s.repo.On("GetUserByID", mock.Anything, token.UserID).Return(user, nil)
	s.repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.IsVerified
	})).Return(nil)

	err := s.uc.VerifyEmail(s.ctx, "raw-token")
	require.NoError(s.T(), err)
	s.repo.AssertExpectations(s.T())
}

func (s *AuthUsecaseTestSuite) TestVerifyEmail_ExpiredToken() {
	token := &model.EmailToken{
		ID:        "tok-1",
		UserID:    "507f1f77bcf86cd799439011",
		Purpose:   model.TokenPurposeVerify,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	s.tokenRepo.On("GetByToken", mock.Anything, "raw-token", model.TokenPurposeVerify).Return(token, nil)

	err := s.uc.VerifyEmail(s.ctx, "raw-token")
	assert.ErrorIs(s.T(), err, model.ErrTokenExpired)
	s.tokenRepo.AssertNotCalled(s.T(), "MarkUsed", mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestVerifyEmail_UsedToken() {
	used := time.Now().Add(-time.Hour)
	token := &model.EmailToken{
		ID:        "tok-1",
		UserID:    "507f1f77bcf86cd799439011",
		Purpose:   model.TokenPurposeVerify,
		ExpiresAt: time.Now().Add(time.Hour),
		UsedAt:    &used,
	}
	s.tokenRepo.On("GetByToken", mock.Anything, "raw-token", model.TokenPurposeVerify).Return(token, nil)

	err := s.uc.VerifyEmail(s.ctx, "raw-token")
	assert.ErrorIs(s.T(), err, model.ErrTokenUsed)
}

func (s *AuthUsecaseTestSuite) TestVerifyEmail_UnknownToken() {
	s.tokenRepo.On("GetByToken", mock.Anything, "nope", model.TokenPurposeVerify).Return(nil, model.ErrTokenNotFound)

	err := s.uc.VerifyEmail(s.ctx, "nope")
	assert.ErrorIs(s.T(), err, ErrTokenInvalid)
}

func (s *AuthUsecaseTestSuite) TestResendVerification_AlreadyVerified() {
	user := s.verifiedUser("password123")
	s.repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	err := s.uc.ResendVerification(s.ctx, user.Email)
	require.NoError(s.T(), err)
	s.tokenRepo.AssertNotCalled(s.T(), "CreateToken", mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestResendVerification_UnknownEmailIsSilent() {
	s.repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, model.ErrUserNotFound)

	err := s.uc.ResendVerification(s.ctx, "ghost@example.com")
	assert.NoError(s.T(), err)
}

func (s *AuthUsecaseTestSuite) TestForgotPassword_IssuesResetToken() {
	user := s.verifiedUser("password123")
	s.repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)
	s.tokenRepo.On("CountOutstanding", mock.Anything, user.ID, model.TokenPurposeReset).Return(int64(0), nil)
	s.tokenRepo.On("CreateToken", mock.Anything, mock.MatchedBy(func(t *model.EmailToken) bool {
		return t.Purpose == model.TokenPurposeReset && t.UserID == user.ID && t.Token != ""
	})).Return(nil)
	s.mail.On("SendPasswordReset", mock.Anything, user.Email, mock.Anything).Return(nil)

	err := s.uc.ForgotPassword(s.ctx, user.Email)
	require.NoError(s.T(), err)
	s.mail.AssertExpectations(s.T())
}

func (s *AuthUsecaseTestSuite) TestForgotPassword_UnknownEmailIsSilent() {
	s.repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, model.ErrUserNotFound)

	err := s.uc.ForgotPassword(s.ctx, "ghost@example.com")
	assert.NoError(s.T(), err)
	s.tokenRepo.AssertNotCalled(s.T(), "CreateToken", mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestForgotPassword_RateLimited() {
	user := s.verifiedUser("password123")
	s.repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)
	s.tokenRepo.On("CountOutstanding", mock.Anything, user.ID, model.TokenPurposeReset).Return(int64(5), nil)

	err := s.uc.ForgotPassword(s.ctx, user.Email)
	assert.ErrorIs(s.T(), err, model.ErrTooManyTokens)
	s.tokenRepo.AssertNotCalled(s.T(), "CreateToken", mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestResetPassword_Success() {
	user := s.verifiedUser("password123")
	token := &model.EmailToken{
		ID:        "tok-2",
		UserID:    user.ID,
		Purpose:   model.TokenPurposeReset,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.tokenRepo.On("GetByToken", mock.Anything, "reset-token", model.TokenPurposeReset).Return(token, nil)
	s.tokenRepo.On("MarkUsed", mock.Anything, "tok-2").Return(nil)
	s.repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)
	s.repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("brand-new-pass")) == nil
	})).Return(nil)

	err := s.uc.ResetPassword(s.ctx, "reset-token", "brand-new-pass")
	require.NoError(s.T(), err)
	s.repo.AssertExpectations(s.T())
}

func (s *AuthUsecaseTestSuite) TestResetPassword_WeakPassword() {
	err := s.uc.ResetPassword(s.ctx, "reset-token", "short")
	assert.ErrorIs(s.T(), err, ErrWeakPassword)
	s.tokenRepo.AssertNotCalled(s.T(), "GetByToken", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestGetUserByID_StripsHash() {
	user := s.verifiedUser("password123")
	s.repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

	got, err := s.uc.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got.HashedPassword)
}

func (s *AuthUsecaseTestSuite) TestGetUserByID_RequiresID() {
	_, err := s.uc.GetUserByID(s.ctx, "")
	assert.Error(s.T(), err)
}

func (s *AuthUsecaseTestSuite) TestAdminLogin_Success() {
	s.tokenSvc.On("GenerateAdminToken", mock.Anything, "admin@curiovault.test").Return("admin-token", nil)

	token, err := s.uc.AdminLogin(s.ctx, "admin@curiovault.test", "admin-secret-password")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "admin-token", token)
}

func (s *AuthUsecaseTestSuite) TestAdminLogin_WrongCredentials() {
	_, err := s.uc.AdminLogin(s.ctx, "admin@curiovault.test", "wrong")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
	s.tokenSvc.AssertNotCalled(s.T(), "GenerateAdminToken", mock.Anything, mock.Anything)
}

func (s *AuthUsecaseTestSuite) TestAdminLogin_Disabled() {
	s.uc.config.AdminEmail = ""
	s.uc.config.AdminPassword = ""

	_, err := s.uc.AdminLogin(s.ctx, "whoever@example.com", "whatever")
	assert.ErrorIs(s.T(), err, ErrAdminDisabled)
}

func TestAuthUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuthUsecaseTestSuite))
}
