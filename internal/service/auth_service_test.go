package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ferramentas/toolhub/internal/config"
	"github.com/ferramentas/toolhub/internal/domain"
	"github.com/ferramentas/toolhub/internal/events"
)

// ---- fakes ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsernameOrEmail(_ context.Context, credential string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == credential || user.Email == credential {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, _ string, _, _ int) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

type fakeRefreshRepo struct {
	mu     sync.Mutex
	byUser map[string]*domain.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{byUser: map[string]*domain.RefreshToken{}}
}

func (r *fakeRefreshRepo) Replace(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.CreatedAt = time.Now()
	r.byUser[token.UserID] = token
	return nil
}

func (r *fakeRefreshRepo) GetByToken(_ context.Context, value string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.byUser {
		if token.Token == value {
			return token, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeRefreshRepo) DeleteByToken(_ context.Context, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, token := range r.byUser {
		if token.Token == value {
			delete(r.byUser, userID)
		}
	}
	return nil
}

func (r *fakeRefreshRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
	return nil
}

func (r *fakeRefreshRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for userID, token := range r.byUser {
		if !time.Now().Before(token.ExpiresAt) {
			delete(r.byUser, userID)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeRefreshRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUser)
}

// ---- helpers ----

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "unit-secret",
		AccessTokenTTLMin:    15,
		RefreshTokenTTLHours: 168,
		BcryptCost:           bcrypt.MinCost,
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeRefreshRepo) {
	t.Helper()
	users := newFakeUserRepo()
	refresh := newFakeRefreshRepo()
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo:    users,
		RefreshRepo: refresh,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	return svc, users, refresh
}

func registerAlice(t *testing.T, svc *AuthService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	return user
}

// ---- tests ----

func TestRegisterAssignsUserRole(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	user := registerAlice(t, svc)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), "alice", "other@example.com", "another-pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _, refresh := newTestAuthService(t)
	registered := registerAlice(t, svc)

	user, pair, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 1, refresh.count())

	claims, err := svc.TokenManager().ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, []string{"USER"}, claims.Roles)
}

func TestLoginByEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAlice(t, svc)

	_, pair, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestLoginFailureIsUniform(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAlice(t, svc)

	_, _, unknownErr := svc.Login(context.Background(), "nobody", "s3cret-pass")
	_, _, badPassErr := svc.Login(context.Background(), "alice", "wrong-pass")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, badPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, badPassErr, "unknown user and bad password are indistinguishable")
}

func TestLoginReplacesPriorRefreshToken(t *testing.T) {
	svc, _, refresh := newTestAuthService(t)
	registerAlice(t, svc)
	ctx := context.Background()

	_, first, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)
	_, second, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, 1, refresh.count(), "one live refresh token per user")

	_, _, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshNotFound)

	_, _, err = svc.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	accessToken, expiresAt, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	original, err := svc.TokenManager().ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, claims.IssuedAt.Before(original.IssuedAt.Time),
		"refreshed token is never older than the one it replaces")
}

func TestRefreshReflectsRoleChange(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	user.Role = domain.RoleAdmin
	require.NoError(t, users.Update(ctx, user))

	accessToken, _, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN"}, claims.Roles)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestRefreshExpiredTokenIsDeleted(t *testing.T) {
	svc, _, refresh := newTestAuthService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	record := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, refresh.Replace(ctx, record))

	_, _, err := svc.Refresh(ctx, "stale-token")
	assert.ErrorIs(t, err, ErrRefreshExpired)
	assert.Equal(t, 0, refresh.count(), "expired record is removed on use")
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshNotFound)

	claims, err := svc.TokenManager().ParseToken(pair.AccessToken)
	assert.NoError(t, err, "issued access tokens outlive logout until expiry")
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLogoutWithoutSession(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	assert.NoError(t, svc.Logout(context.Background(), ""))
	assert.NoError(t, svc.Logout(context.Background(), "no-such-user"))
}

func TestConcurrentRefreshBothSucceed(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAlice(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.Refresh(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}

func TestSweepExpired(t *testing.T) {
	svc, _, refresh := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, refresh.Replace(ctx, &domain.RefreshToken{
		UserID: "u1", Token: "t1", ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, refresh.Replace(ctx, &domain.RefreshToken{
		UserID: "u2", Token: "t2", ExpiresAt: time.Now().Add(time.Hour),
	}))

	removed, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, refresh.count())
}
