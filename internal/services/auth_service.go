package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/models"
	"github.com/chenglu1/admin-console/internal/store"
	"github.com/chenglu1/admin-console/internal/token"
)

var (
	// ErrInvalidCredentials is returned both for unknown usernames and wrong
	// passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrMissingToken       = errors.New("refresh token is required")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// dummyHash equalizes login timing for unknown usernames.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// AuthService drives the session lifecycle: login, refresh, logout,
// bulk revocation.
type AuthService struct {
	users         store.UserStore
	tokens        store.RefreshTokenStore
	issuer        *token.Issuer
	refreshExpiry time.Duration
}

func NewAuthService(users store.UserStore, tokens store.RefreshTokenStore, issuer *token.Issuer, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		issuer:        issuer,
		refreshExpiry: refreshExpiry,
	}
}

func (s *AuthService) Login(username, password string) (*dto.LoginResponse, error) {
	user, err := s.users.ByUsername(username)
	if err != nil {
		// Burn a comparison so the miss is not cheaper than a wrong
		// password.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}

	accessToken, err := s.issuer.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	row := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: token.Hash(refreshToken),
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	}
	if err := s.tokens.Create(&row); err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Nickname: user.Nickname,
			Email:    user.Email,
			Roles:    roles,
		},
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh row is reused until expiry or revocation; rotation is not
// performed.
func (s *AuthService) Refresh(presented string) (*dto.RefreshResponse, error) {
	if presented == "" {
		return nil, ErrMissingToken
	}

	row, err := s.tokens.ByHash(token.Hash(presented))
	if err != nil {
		slog.Info("refresh rejected", "reason", "unknown token")
		return nil, ErrInvalidToken
	}
	if row.Revoked {
		slog.Info("refresh rejected", "reason", "revoked", "user_id", row.UserID.String())
		return nil, ErrInvalidToken
	}
	if !time.Now().Before(row.ExpiresAt) {
		slog.Info("refresh rejected", "reason", "expired", "user_id", row.UserID.String())
		return nil, ErrInvalidToken
	}

	user, err := s.users.ByID(row.UserID)
	if err != nil {
		slog.Warn("refresh token references missing user", "user_id", row.UserID.String())
		return nil, ErrInvalidToken
	}
	if !user.IsActive() {
		return nil, ErrInvalidToken
	}

	accessToken, err := s.issuer.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{AccessToken: accessToken}, nil
}

// Logout revokes the presented refresh token and, when an authenticated
// identity is known, every live token of that user. Both steps are best
// effort; Logout never fails.
func (s *AuthService) Logout(presented string, userID *uuid.UUID) {
	if presented != "" {
		if row, err := s.tokens.ByHash(token.Hash(presented)); err == nil {
			if err := s.tokens.Revoke(row.ID); err != nil {
				slog.Error("failed to revoke refresh token", "error", err, "token_id", row.ID.String())
			}
		}
	}

	if userID != nil {
		if err := s.RevokeAll(*userID); err != nil {
			slog.Error("failed to revoke user sessions", "error", err, "user_id", userID.String())
		}
	}
}

// RevokeAll invalidates every live refresh token of the user in one bulk
// update.
func (s *AuthService) RevokeAll(userID uuid.UUID) error {
	return s.tokens.RevokeAllForUser(userID)
}
