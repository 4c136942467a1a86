package domain

import "time"

// ToolUsageLog records a single use of a tool by a user.
type ToolUsageLog struct {
	ID        int64
	UserID    string
	ToolName  string
	IPAddress string
	UsedAt    time.Time
}
