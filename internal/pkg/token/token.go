package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalid is the single failure outcome of Verify. Malformed tokens,
// bad signatures and expired tokens are deliberately indistinguishable
// so callers cannot leak the reason back to the presenter.
var ErrInvalid = errors.New("token is invalid")

// Purpose tags a token with its intended use. Consumers must reject
// tokens presented for the wrong purpose.
type Purpose string

const (
	PurposeSession           Purpose = "session"
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// Claims represents the signed token claims
type Claims struct {
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Codec issues and verifies purpose-scoped HS256 tokens. The signing key
// is process-wide configuration passed in at construction.
type Codec struct {
	secret []byte
	issuer string
}

// NewCodec creates a new token codec
func NewCodec(secret, issuer string) *Codec {
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Issue signs a token for the given subject and purpose
func (c *Codec) Issue(subject string, purpose Purpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify validates signature, expiry and structure, returning the claims.
// Every failure collapses to ErrInvalid.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}

	if claims.Subject == "" || claims.Purpose == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalid
	}

	return claims, nil
}
