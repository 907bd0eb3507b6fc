// Package token issues and verifies access tokens and generates opaque
// refresh tokens. It is framework-free so the middleware and the session
// service share one implementation.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret = errors.New("signing secret is not configured")
	ErrInvalidToken  = errors.New("invalid or expired access token")
)

// Claims is the decoded identity carried by an access token.
type Claims struct {
	UserID   uuid.UUID
	Username string
}

// Issuer signs access tokens with a process-wide HS256 secret and produces
// opaque refresh tokens.
type Issuer struct {
	secret       []byte
	accessExpiry time.Duration
}

func NewIssuer(secret string, accessExpiry time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Issuer{secret: []byte(secret), accessExpiry: accessExpiry}, nil
}

// IssueAccessToken signs a short-lived token for the given identity.
func (i *Issuer) IssueAccessToken(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID.String(),
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(i.accessExpiry).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// VerifyAccessToken checks signature and expiry and returns the encoded
// identity. All failure modes collapse into ErrInvalidToken.
func (i *Issuer) VerifyAccessToken(signed string) (*Claims, error) {
	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	return &Claims{UserID: userID, Username: username}, nil
}

// NewRefreshToken returns a cryptographically random opaque token. It carries
// no structure, so it cannot be validated offline and stays revocable
// server-side.
func NewRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// Hash returns the hex sha256 of a refresh token, the only form persisted.
func Hash(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
