// Package storetest provides in-memory store implementations for tests.
package storetest

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/chenglu1/admin-console/internal/models"
)

var ErrNotFound = errors.New("record not found")

type MemUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewMemUserStore(users ...models.User) *MemUserStore {
	s := &MemUserStore{users: make(map[uuid.UUID]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *MemUserStore) ByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemUserStore) ByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, ErrNotFound
}

type MemRefreshTokenStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.RefreshToken
}

func NewMemRefreshTokenStore() *MemRefreshTokenStore {
	return &MemRefreshTokenStore{rows: make(map[uuid.UUID]models.RefreshToken)}
}

func (s *MemRefreshTokenStore) Create(t *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.TokenHash == t.TokenHash {
			return errors.New("duplicate token hash")
		}
	}
	s.rows[t.ID] = *t
	return nil
}

func (s *MemRefreshTokenStore) ByHash(hash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.TokenHash == hash {
			copied := row
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemRefreshTokenStore) Revoke(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.Revoked = true
	s.rows[id] = row
	return nil
}

func (s *MemRefreshTokenStore) RevokeAllForUser(userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if row.UserID == userID && !row.Revoked {
			row.Revoked = true
			s.rows[id] = row
		}
	}
	return nil
}

// Rows returns a snapshot of all rows for assertions.
func (s *MemRefreshTokenStore) Rows() []models.RefreshToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RefreshToken, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	return out
}

// Expire rewrites a row's expiry so tests can age tokens without sleeping.
func (s *MemRefreshTokenStore) Expire(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if row.TokenHash == hash {
			row.ExpiresAt = row.ExpiresAt.AddDate(-1, 0, 0)
			s.rows[id] = row
		}
	}
}
