package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/adapters/persistence/repositories"
	"yorkhub/internal/config"
	"yorkhub/internal/core/domain"
	"yorkhub/internal/pkg/password"
	"yorkhub/internal/pkg/token"

	"go.mongodb.org/mongo-driver/mongo"
)

// AuthService handles credential lifecycle and identity resolution
type AuthService struct {
	userRepo repositories.UserRepository
	mailer   Mailer
	codec    *token.Codec
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	mailer Mailer,
	codec *token.Codec,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		codec:    codec,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginOutput represents a successful login
type LoginOutput struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	User        *models.UserResponse `json:"user"`
}

// Register creates a new unverified account and mails the verification
// link. A mail delivery failure surfaces distinctly; the account is
// still created and the link can be re-requested by registering support.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// 1. Institutional address policy
	if !s.allowedEmail(email) {
		return nil, domain.ErrInvalidEmailDomain
	}

	// 2. Uniqueness checks
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	// 3. Hash password
	if !password.Validate(input.Password) {
		return nil, domain.ErrWeakPassword
	}
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &models.User{
		Email:        email,
		Username:     input.Username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Verified:     false,
		Disabled:     false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Username)

	// 5. Send verification link
	if err := s.sendVerificationMail(email); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// Login authenticates a user and issues a session token. Unverified
// accounts never receive a session token regardless of credentials.
func (s *AuthService) Login(ctx context.Context, username, plaintext string) (*LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Disabled {
		return nil, domain.ErrAccountDisabled
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, domain.ErrEmailNotVerified
	}

	accessToken, err := s.codec.Issue(user.Username, token.PurposeSession, s.sessionTTL())
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &LoginOutput{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        user.ToResponse(),
	}, nil
}

// Resolve maps a bearer token to a user, or nil on any failure. It
// never returns a partial identity: a bad signature, a wrong purpose or
// a vanished account all come back anonymous.
func (s *AuthService) Resolve(ctx context.Context, bearer string) *models.User {
	claims, err := s.codec.Verify(bearer)
	if err != nil {
		return nil
	}
	if claims.Purpose != token.PurposeSession {
		return nil
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil
	}
	return user
}

// VerifyEmail redeems an email verification token. Re-redeeming after
// success yields the same ack. All failure paths are indistinguishable
// so callers cannot probe which addresses are registered.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenString string) error {
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if claims.Purpose != token.PurposeEmailVerification {
		return domain.ErrTokenInvalid
	}

	matched, err := s.userRepo.SetVerified(ctx, claims.Subject)
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrTokenInvalid
	}

	log.Printf("✅ Email verified: %s", claims.Subject)
	return nil
}

// RequestPasswordReset mails a reset link. Unknown addresses get the
// same ack as known ones, so the endpoint cannot be used to enumerate
// registered emails.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Printf("ℹ️ Password reset requested for unknown address")
			return nil
		}
		return err
	}

	resetToken, err := s.codec.Issue(email, token.PurposePasswordReset, s.actionTTL())
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.BaseURL, resetToken)
	body := fmt.Sprintf(
		"<p>A password reset was requested for your account.</p>"+
			"<p><a href=\"%s\">Reset your password</a></p>"+
			"<p>The link expires in %d minutes. If you did not request this, you can ignore this message.</p>",
		link, s.cfg.JWT.ActionTokenMins,
	)
	return s.mailer.Send(email, "Reset your password", body, true)
}

// ResetPassword redeems a password reset token and replaces the stored
// hash. Role and verified status are untouched.
func (s *AuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if claims.Purpose != token.PurposePasswordReset {
		return domain.ErrTokenInvalid
	}

	if !password.Validate(newPassword) {
		return domain.ErrWeakPassword
	}
	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	matched, err := s.userRepo.SetPasswordHash(ctx, claims.Subject, hashed)
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrTokenInvalid
	}

	log.Printf("✅ Password reset: %s", claims.Subject)
	return nil
}

// sendVerificationMail issues a fresh verification token and mails the
// redemption link
func (s *AuthService) sendVerificationMail(email string) error {
	verifyToken, err := s.codec.Issue(email, token.PurposeEmailVerification, s.actionTTL())
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.BaseURL, verifyToken)
	body := fmt.Sprintf(
		"<p>Welcome! Please confirm your email address to activate your account.</p>"+
			"<p><a href=\"%s\">Verify your email</a></p>"+
			"<p>The link expires in %d minutes.</p>",
		link, s.cfg.JWT.ActionTokenMins,
	)
	return s.mailer.Send(email, "Verify your email address", body, true)
}

// allowedEmail checks the address against the accepted institutional
// domain suffixes
func (s *AuthService) allowedEmail(email string) bool {
	for _, suffix := range s.cfg.Email.AllowedDomains {
		if strings.HasSuffix(email, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func (s *AuthService) sessionTTL() time.Duration {
	return time.Duration(s.cfg.JWT.SessionTokenMins) * time.Minute
}

func (s *AuthService) actionTTL() time.Duration {
	return time.Duration(s.cfg.JWT.ActionTokenMins) * time.Minute
}
