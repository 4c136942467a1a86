package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/domain"
)

func TestUserServiceCreateUppercasesRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	user, err := svc.Create(context.Background(), "bob", "bob@example.com", "pass-phrase", "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestUserServiceCreateDefaultsToUserRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	user, err := svc.Create(context.Background(), "bob", "bob@example.com", "pass-phrase", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestUserServiceUpdateIgnoresEmptyFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	ctx := context.Background()

	user, err := svc.Create(ctx, "bob", "bob@example.com", "pass-phrase", "")
	require.NoError(t, err)
	originalHash := user.PasswordHash

	updated, err := svc.Update(ctx, user.ID, UserUpdate{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.Username)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, originalHash, updated.PasswordHash)
}

func TestUserServiceUpdateRehashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	ctx := context.Background()

	user, err := svc.Create(ctx, "bob", "bob@example.com", "old-pass", "")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, user.ID, UserUpdate{Password: "new-pass"})
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(updated.PasswordHash, "new-pass"))
	assert.Error(t, auth.ComparePassword(updated.PasswordHash, "old-pass"))
}

func TestUserServiceUpdateRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	ctx := context.Background()

	user, err := svc.Create(ctx, "bob", "bob@example.com", "pass-phrase", "")
	require.NoError(t, err)

	updated, err := svc.UpdateRole(ctx, user.ID, " admin ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestUserServiceUpdateUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	_, err := svc.Update(context.Background(), "missing", UserUpdate{Email: "x@example.com"})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserServiceListClampsPaging(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Create(ctx, "bob", "bob@example.com", "pass-phrase", "")
	require.NoError(t, err)

	users, total, err := svc.List(ctx, "", -5, 100000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
}
