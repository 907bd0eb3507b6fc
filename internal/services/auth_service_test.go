package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chenglu1/admin-console/internal/models"
	"github.com/chenglu1/admin-console/internal/store/storetest"
	"github.com/chenglu1/admin-console/internal/token"
)

const refreshWindow = 30 * 24 * time.Hour

func newTestService(t *testing.T, users ...models.User) (*AuthService, *storetest.MemRefreshTokenStore) {
	t.Helper()

	issuer, err := token.NewIssuer("test-secret", 15*time.Minute)
	require.NoError(t, err)

	tokens := storetest.NewMemRefreshTokenStore()
	svc := NewAuthService(storetest.NewMemUserStore(users...), tokens, issuer, refreshWindow)
	return svc, tokens
}

func testUser(t *testing.T, username, password, status string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
		Status:   status,
	}
}

func TestLogin_Success(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, tokens := newTestService(t, user)

	before := time.Now()
	resp, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)

	rows := tokens.Rows()
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Revoked)
	assert.Equal(t, user.ID, rows[0].UserID)
	assert.Equal(t, token.Hash(resp.RefreshToken), rows[0].TokenHash)
	assert.WithinDuration(t, before.Add(refreshWindow), rows[0].ExpiresAt, 5*time.Second)
}

func TestLogin_SummaryCarriesStoredRoles(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	user.Roles = []models.Role{{ID: uuid.New(), Name: "admin"}, {ID: uuid.New(), Name: "viewer"}}
	svc, _ := newTestService(t, user)

	resp, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "viewer"}, resp.User.Roles)
}

func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t, testUser(t, "alice", "correct horse", models.UserStatusActive))

	_, errWrongPass := svc.Login("alice", "battery staple")
	_, errNoUser := svc.Login("nobody", "battery staple")

	require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, _ := newTestService(t, testUser(t, "alice", "correct horse", models.UserStatusDisabled))

	_, err := svc.Login("alice", "correct horse")
	require.ErrorIs(t, err, ErrAccountDisabled)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MultiDevice(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, tokens := newTestService(t, user)

	first, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)
	second, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Len(t, tokens.Rows(), 2)
}

func TestRefresh_AfterLogin(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, _ := newTestService(t, user)

	login, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	resp, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	issuer, err := token.NewIssuer("test-secret", 15*time.Minute)
	require.NoError(t, err)
	claims, err := issuer.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRefresh_MissingToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh("")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh("never-issued")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_RevokedToken(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, tokens := newTestService(t, user)

	login, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	rows := tokens.Rows()
	require.Len(t, rows, 1)
	require.NoError(t, tokens.Revoke(rows[0].ID))

	_, err = svc.Refresh(login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, tokens := newTestService(t, user)

	login, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	tokens.Expire(token.Hash(login.RefreshToken))

	_, err = svc.Refresh(login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_ThenRefreshFails(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, _ := newTestService(t, user)

	login, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	svc.Logout(login.RefreshToken, nil)

	_, err = svc.Refresh(login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_UnknownTokenIsSilent(t *testing.T) {
	svc, _ := newTestService(t)

	// Must not panic or error; logout never reports failure.
	svc.Logout("never-issued", nil)
}

func TestRevokeAll_KillsEveryDevice(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, _ := newTestService(t, user)

	first, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)
	second, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(user.ID))

	_, err = svc.Refresh(first.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Refresh(second.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_WithIdentityRevokesAll(t *testing.T) {
	user := testUser(t, "alice", "correct horse", models.UserStatusActive)
	svc, _ := newTestService(t, user)

	first, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)
	second, err := svc.Login("alice", "correct horse")
	require.NoError(t, err)

	// Logout from one device with a known identity: both sessions die.
	svc.Logout(first.RefreshToken, &user.ID)

	_, err = svc.Refresh(second.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}
