package domain

import "time"

// RefreshToken is the persisted record backing access-token renewal.
// The token value is an opaque high-entropy random string; at most one
// active record exists per user.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
