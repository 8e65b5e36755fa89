package http

import (
	"context"
	"time"

	"curiovault/internal/auth/config"
	"curiovault/internal/auth/domain/model"
	"curiovault/internal/auth/usecase"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase        usecase.AuthUsecaseInterface
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieMaxAge   int
	cookieSecure   bool
	cookieSameSite string
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase:        uc,
		cookieName:     cfg.RefreshCookieName,
		cookiePath:     cfg.RefreshCookiePath,
		cookieDomain:   cfg.CookieDomain,
		cookieMaxAge:   int(cfg.RefreshTokenTTL.Seconds()),
		cookieSecure:   cfg.CookieSecure,
		cookieSameSite: cfg.CookieSameSite,
	}
}

// SetupAuthRoutes registers authentication routes on the given router group.
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router, middleware *AuthMiddleware) {
	auth := router.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.Logout)
	auth.Post("/verify-email", h.VerifyEmail)
	auth.Post("/resend-verification", h.ResendVerification)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)
	auth.Get("/me", middleware.Protect(), h.GetCurrentUser)

	router.Post("/admin/login", h.AdminLogin)
}

// Register handles user registration
func (h *AuthHTTPHandler) Register(c *fiber.Ctx) error {
	var req usecase.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.usecase.Register(c.Context(), req)
	if err != nil {
		switch err {
		case usecase.ErrEmailTaken:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already registered",
			})
		case usecase.ErrInvalidEmailFormat, usecase.ErrWeakPassword:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "Registered. Check your email to verify the account.",
	})
}

// Login handles user login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, pair, err := h.usecase.Login(c.Context(), req)
	if err != nil {
		switch err {
		case model.ErrAccountLocked:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is locked",
			})
		case model.ErrAccountInactive:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Email address is not verified",
			})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.JSON(fiber.Map{
		"access_token": pair.AccessToken,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Refresh rotates the refresh cookie and returns a fresh access token.
// The refresh token is only ever read from the httponly cookie.
func (h *AuthHTTPHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(h.cookieName)
	if refreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing refresh token",
		})
	}

	user, pair, err := h.usecase.Refresh(c.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.JSON(fiber.Map{
		"access_token": pair.AccessToken,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Logout clears the refresh cookie
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// VerifyEmail consumes a verification token
func (h *AuthHTTPHandler) VerifyEmail(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token is required",
		})
	}

	if err := h.usecase.VerifyEmail(c.Context(), req.Token); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Email verified",
	})
}

// ResendVerification issues a fresh verification token
func (h *AuthHTTPHandler) ResendVerification(c *fiber.Ctx) error {
	return h.handleEmailRequest(c, h.usecase.ResendVerification,
		"If the account exists, a verification email has been sent.")
}

// ForgotPassword issues a password reset token
func (h *AuthHTTPHandler) ForgotPassword(c *fiber.Ctx) error {
	return h.handleEmailRequest(c, h.usecase.ForgotPassword,
		"If the account exists, a password reset email has been sent.")
}

// handleEmailRequest is shared by the two endpoints that must not reveal
// whether an address is registered.
func (h *AuthHTTPHandler) handleEmailRequest(c *fiber.Ctx, fn func(ctx context.Context, email string) error, message string) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	if err := fn(c.Context(), req.Email); err != nil {
		if err == model.ErrTooManyTokens {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Try again later.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": message,
	})
}

// ResetPassword consumes a reset token and sets the new password
func (h *AuthHTTPHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token and password are required",
		})
	}

	if err := h.usecase.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		if err == usecase.ErrWeakPassword {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}

// GetCurrentUser returns current user information
func (h *AuthHTTPHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID := UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	user, err := h.usecase.GetUserByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(user)
}

// AdminLogin authenticates the env-configured admin account
func (h *AuthHTTPHandler) AdminLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	token, err := h.usecase.AdminLogin(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Helper methods

func (h *AuthHTTPHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   h.cookieMaxAge,
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(time.Duration(h.cookieMaxAge) * time.Second),
	})
}

func (h *AuthHTTPHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
