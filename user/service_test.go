package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/merchant/models"
	"goflare.io/merchant/password"
	"goflare.io/merchant/token"
)

type fakeRepo struct {
	users map[string]*models.User

	findErr     error
	createErr   error
	updateErr   error
	loseCreated bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*models.User)}
}

func (f *fakeRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if f.loseCreated {
		return nil, nil
	}
	return f.users[id], nil
}

func (f *fakeRepo) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) UpdateRefreshToken(_ context.Context, id string, refreshToken *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if u, ok := f.users[id]; ok {
		u.RefreshToken = refreshToken
	}
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(models.AuditAction, string, string) {}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	tokens, err := token.NewManager(token.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "merchant-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	return NewService(repo, tokens, password.NewHasher(), nopRecorder{}, zap.NewNop())
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "jane@example.com", "JaneDoe", "hunter2hunter2")
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, "janedoe", created.Username, "username is stored lowercased")
	assert.Empty(t, created.PasswordHash, "sanitized record must not carry the hash")
	assert.Nil(t, created.RefreshToken)

	stored := repo.users[created.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash, "plaintext is never stored")
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t, newFakeRepo())
	ctx := context.Background()

	for _, tt := range []struct{ email, username, password string }{
		{"", "jane", "secretsecret"},
		{"jane@example.com", "  ", "secretsecret"},
		{"jane@example.com", "jane", ""},
	} {
		_, err := svc.Register(ctx, tt.email, tt.username, tt.password)
		assert.ErrorIs(t, err, ErrFieldsRequired)
	}
}

func TestRegisterConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane@example.com", "johndoe", "secretsecret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "jane@example.com", "someoneelse", "secretsecret")
	assert.ErrorIs(t, err, ErrUserExists, "duplicate email")

	_, err = svc.Register(ctx, "other@example.com", "johndoe", "secretsecret")
	assert.ErrorIs(t, err, ErrUserExists, "duplicate username")

	_, err = svc.Register(ctx, "third@example.com", "JohnDoe", "secretsecret")
	assert.ErrorIs(t, err, ErrUserExists, "username uniqueness is case-insensitive")
}

func TestRegisterRefetchFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.loseCreated = true
	svc := newTestService(t, repo)

	_, err := svc.Register(context.Background(), "jane@example.com", "jane", "secretsecret")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "jane@example.com", "jane", "secretsecret")
	require.NoError(t, err)

	account, pair, err := svc.Login(ctx, "jane@example.com", "", "secretsecret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)
	assert.Empty(t, account.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored := repo.users[created.ID]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)

	// Login by username works too.
	_, _, err = svc.Login(ctx, "", "JANE", "secretsecret")
	require.NoError(t, err, "username identifier is case-insensitive")
}

func TestLoginWithPaddedPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	// The password is hashed as supplied, surrounding whitespace included.
	_, err := svc.Register(ctx, "jane@example.com", "jane", " secret secret ")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "", " secret secret ")
	require.NoError(t, err, "the registered credential must log in verbatim")

	_, _, err = svc.Login(ctx, "jane@example.com", "", "secret secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "a trimmed variant is a different password")
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "jane@example.com", "jane", "secretsecret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "", "", "secretsecret")
	assert.ErrorIs(t, err, ErrIdentifierRequired)

	_, _, err = svc.Login(ctx, "nobody@example.com", "", "secretsecret")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = svc.Login(ctx, "jane@example.com", "", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, repo.users[created.ID].RefreshToken, "failed login must not persist a token")
}

func TestLoginOverwritesRefreshToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "jane@example.com", "jane", "secretsecret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "", "secretsecret")
	require.NoError(t, err)

	_, second, err := svc.Login(ctx, "jane@example.com", "", "secretsecret")
	require.NoError(t, err)

	stored := repo.users[created.ID]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, second.RefreshToken, *stored.RefreshToken,
		"the second login's refresh token is the one persisted")
}

func TestLoginTokenPersistFailureIsInternal(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane@example.com", "jane", "secretsecret")
	require.NoError(t, err)

	repo.updateErr = errors.New("connection reset by peer")
	_, _, err = svc.Login(ctx, "jane@example.com", "", "secretsecret")
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotContains(t, err.Error(), "connection reset", "storage fault must not leak")
}

func TestLogout(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "jane@example.com", "jane", "secretsecret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "", "secretsecret")
	require.NoError(t, err)
	require.NotNil(t, repo.users[created.ID].RefreshToken)

	require.NoError(t, svc.Logout(ctx, created.ID))
	assert.Nil(t, repo.users[created.ID].RefreshToken)

	// Idempotent.
	require.NoError(t, svc.Logout(ctx, created.ID))
}
