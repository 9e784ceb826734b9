package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type mockUserRepo struct {
	users      map[string]models.User
	lastLogins map[string]time.Time
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if m.lastLogins == nil {
		m.lastLogins = make(map[string]time.Time)
	}
	m.lastLogins[id] = ts
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Enabled:    true,
		Secret:     "test_secret",
		Expiration: time.Hour,
		Issuer:     "orgfee-api-test",
	}
}

func seedUser(t *testing.T, password string, active bool) (*mockUserRepo, models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		ID:           "user-1",
		Email:        "treasurer@example.edu",
		PasswordHash: string(hash),
		FullName:     "Org Treasurer",
		Role:         models.RoleOfficer,
		Active:       active,
	}
	return &mockUserRepo{users: map[string]models.User{user.ID: user}}, user
}

func TestAuthServiceLogin(t *testing.T) {
	repo, user := seedUser(t, "secret123", true)
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Contains(t, repo.lastLogins, user.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleOfficer, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo, user := seedUser(t, "secret123", true)
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	repo, _ := seedUser(t, "secret123", true)
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.edu", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	repo, user := seedUser(t, "secret123", false)
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	repo, user := seedUser(t, "secret123", true)
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	require.Error(t, err)
}

func TestAuthServiceValidateTokenRejectsExpired(t *testing.T) {
	repo, user := seedUser(t, "secret123", true)
	cfg := testAuthConfig()
	svc := NewAuthService(repo, cfg, zap.NewNop())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}

func TestAuthServiceMe(t *testing.T) {
	repo, user := seedUser(t, "secret123", true)
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	info, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, info.Email)
	assert.Equal(t, user.FullName, info.FullName)

	_, err = svc.Me(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}
