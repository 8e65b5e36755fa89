package auth

import (
	"fmt"

	authhttp "curiovault/internal/auth/adapter/http"
	"curiovault/internal/auth/adapter/mailer"
	"curiovault/internal/auth/adapter/persistence/mongodb"
	"curiovault/internal/auth/adapter/security"
	"curiovault/internal/auth/config"
	"curiovault/internal/auth/domain/repository"
	"curiovault/internal/auth/usecase"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	repository repository.AuthRepository
	tokenSvc   repository.TokenService
	usecase    usecase.AuthUsecaseInterface
	handler    *authhttp.AuthHTTPHandler
	config     *config.Config
}

// NewAuthModule creates a new authentication module instance
func NewAuthModule(db *mongo.Database, cfg *config.Config, bus eventbus.EventBusInterface, log logger.Logger) (*AuthModule, error) {
	authRepo, err := mongodb.NewMongoAuthRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth repository: %w", err)
	}

	tokenRepo, err := mongodb.NewMongoEmailTokenRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create email token repository: %w", err)
	}

	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	mail := mailer.NewMailer(cfg, log)
	authUsecase := usecase.NewAuthUsecase(authRepo, tokenRepo, tokenSvc, mail, bus, cfg, log)
	handler := authhttp.NewAuthHTTPHandler(authUsecase, cfg)

	return &AuthModule{
		repository: authRepo,
		tokenSvc:   tokenSvc,
		usecase:    authUsecase,
		handler:    handler,
		config:     cfg,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutes(router, am.GetMiddleware())
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetRepository returns the user repository for modules that cross-read users
func (am *AuthModule) GetRepository() repository.AuthRepository {
	return am.repository
}

// GetMiddleware returns the auth middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return authhttp.NewAuthMiddleware(am.usecase)
}

// Stop performs cleanup when the module is shut down
func (am *AuthModule) Stop() error {
	return nil
}
