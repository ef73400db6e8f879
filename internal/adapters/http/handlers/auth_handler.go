package handlers

import (
	"errors"
	"strings"

	"yorkhub/internal/adapters/http/middleware"
	"yorkhub/internal/config"
	"yorkhub/internal/core/domain"
	"yorkhub/internal/core/services"
	"yorkhub/internal/pkg/password"
	"yorkhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents a password reset request body
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents a password reset redemption body
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Register handles user registration
// @Summary Register new user
// @Tags Auth
// @Router /users/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if !password.Validate(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	input := &services.RegisterInput{
		Email:    strings.TrimSpace(req.Email),
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmailDomain):
			return response.BadRequest(c, "Email must be a York University address (@yorku.ca or @my.yorku.ca)")
		case errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, "User with this email already exists")
		case errors.Is(err, domain.ErrUsernameTaken):
			return response.Conflict(c, "Username already taken")
		case errors.Is(err, domain.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrDeliveryFailure):
			return response.BadGateway(c, "Account created but the verification email could not be sent")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, "User registered, please verify your email", fiber.Map{
		"user": user,
	})
}

// Login handles user login and issues a session token
// @Summary Login user
// @Tags Auth
// @Router /users/token [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.Login(c.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Incorrect username or password")
		case errors.Is(err, domain.ErrEmailNotVerified):
			return response.Forbidden(c, "Email not verified, please check your inbox")
		case errors.Is(err, domain.ErrAccountDisabled):
			return response.Forbidden(c, "Account is disabled")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setSessionCookie(c, result.AccessToken)

	return response.Success(c, "Login successful", result)
}

// VerifyEmail redeems an email verification token
// @Summary Verify email address
// @Tags Auth
// @Router /users/verify-email [get]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	tokenString := c.Query("token")
	if tokenString == "" {
		return response.BadRequest(c, "Verification token is required")
	}

	if err := h.authService.VerifyEmail(c.Context(), tokenString); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return response.BadRequest(c, "Invalid or expired verification link")
		}
		return response.InternalServerError(c, "Failed to verify email")
	}

	return response.Success(c, "Email verified successfully", nil)
}

// ForgotPassword mails a password reset link. The response is the same
// whether or not the address is registered.
// @Summary Request password reset
// @Tags Auth
// @Router /users/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.authService.RequestPasswordReset(c.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrDeliveryFailure) {
			return response.BadGateway(c, "Reset email could not be sent")
		}
		return response.InternalServerError(c, "Failed to request password reset")
	}

	return response.Success(c, "If the address is registered, a reset link has been sent", nil)
}

// ResetPassword redeems a password reset token
// @Summary Reset password
// @Tags Auth
// @Router /users/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Token == "" {
		return response.BadRequest(c, "Reset token is required")
	}

	if err := h.authService.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid):
			return response.BadRequest(c, "Invalid or expired reset link")
		case errors.Is(err, domain.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	return response.Success(c, "Password reset successfully", nil)
}

// Me returns the current user info
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Router /users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Authentication required")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// setSessionCookie mirrors the session token into an HTTP-only cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.SessionTokenMins * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "lax",
	})
}
