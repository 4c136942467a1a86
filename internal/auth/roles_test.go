package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	principal := &Principal{UserID: "u1", Username: "alice", Roles: []string{"USER"}}

	assert.True(t, Require(principal, "USER"))
	assert.True(t, Require(principal, "user"), "role comparison is case-insensitive")
	assert.False(t, Require(principal, "ADMIN"))
}

func TestRequireNilPrincipal(t *testing.T) {
	assert.False(t, Require(nil, "USER"))
	assert.False(t, Require(nil, ""))
}

func TestRequireMultipleRoles(t *testing.T) {
	principal := &Principal{Roles: []string{"user", "Admin"}}

	assert.True(t, Require(principal, "ADMIN"))
	assert.True(t, Require(principal, "USER"))
	assert.False(t, Require(principal, "SUPERUSER"))
}
