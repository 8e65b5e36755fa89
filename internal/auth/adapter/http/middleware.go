package http

import (
	"context"
	"strings"
	"time"

	"curiovault/internal/auth/domain/repository"
	"curiovault/internal/auth/usecase"
	"curiovault/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AuthMiddleware provides authentication middleware for Fiber
type AuthMiddleware struct {
	usecase usecase.AuthUsecaseInterface
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface) *AuthMiddleware {
	return &AuthMiddleware{usecase: uc}
}

// CORS middleware with credentials enabled for the frontend origin
func (m *AuthMiddleware) CORS(allowOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

// SecurityHeaders adds security headers
func (m *AuthMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// RateLimiter creates rate limiting middleware for auth endpoints
func (m *AuthMiddleware) RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get("X-Forwarded-For", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// RequestID middleware
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// Protect returns middleware that requires a valid access token backed by an
// active, verified account. Refresh and admin tokens are rejected here, and a
// lock on the account takes effect on the next request, not at token expiry.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := m.extractToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := m.usecase.ValidateToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}
		if claims.TokenType != repository.TokenTypeAccess {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user, err := m.usecase.GetUserByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account locked",
			})
		}
		if !user.IsVerified {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Email not verified",
			})
		}

		m.injectClaims(c, claims)
		return c.Next()
	}
}

// RequireAdmin returns middleware that requires an admin token.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := m.extractToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := m.usecase.ValidateToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}
		if claims.TokenType != repository.TokenTypeAdmin || claims.Role != repository.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		m.injectClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth middleware that optionally validates authentication. Invalid
// or missing tokens fall through to the anonymous path, as do tokens for
// locked or unverified accounts.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := m.extractToken(c)
		if err != nil || token == "" {
			return c.Next()
		}

		claims, err := m.usecase.ValidateToken(c.Context(), token)
		if err != nil || claims.TokenType != repository.TokenTypeAccess {
			return c.Next()
		}

		user, err := m.usecase.GetUserByID(c.Context(), claims.UserID)
		if err != nil || !user.IsActive || !user.IsVerified {
			return c.Next()
		}

		m.injectClaims(c, claims)
		return c.Next()
	}
}

func (m *AuthMiddleware) injectClaims(c *fiber.Ctx, claims *repository.Claims) {
	ctx := c.UserContext()
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, contextkeys.UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, contextkeys.RoleKey, claims.Role)
	c.SetUserContext(ctx)

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("role", claims.Role)
}

// extractToken extracts the token from the Authorization header or, for
// WebSocket upgrades, the token query parameter.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer "), nil
		}
	}

	token := c.Query("token")
	if token != "" {
		return token, nil
	}

	return "", fiber.NewError(fiber.StatusUnauthorized, "No authentication token found")
}

// UserID returns the authenticated user ID, or "" when anonymous.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// UserEmail returns the authenticated user email, or "" when anonymous.
func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	return email
}

// IsAuthenticated reports whether the request carries a validated token.
func IsAuthenticated(c *fiber.Ctx) bool {
	return UserID(c) != ""
}
