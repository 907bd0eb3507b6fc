// Package store holds the persistence boundary of the session service. The
// interfaces keep the service testable; the GORM implementations are the
// only ones used in production.
package store

import (
	"github.com/google/uuid"

	"github.com/chenglu1/admin-console/internal/models"
)

// UserStore resolves credential records.
type UserStore interface {
	ByUsername(username string) (*models.User, error)
	ByID(id uuid.UUID) (*models.User, error)
}

// RefreshTokenStore owns refresh-token rows. Revocation flips the flag and
// never deletes rows.
type RefreshTokenStore interface {
	Create(t *models.RefreshToken) error
	ByHash(hash string) (*models.RefreshToken, error)
	Revoke(id uuid.UUID) error
	// RevokeAllForUser must be a single bulk update so concurrent logins
	// cannot resurrect rows between a read and a write.
	RevokeAllForUser(userID uuid.UUID) error
}
