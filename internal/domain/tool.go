package domain

import "time"

// Tool describes one entry of the tool catalog.
type Tool struct {
	ID          int64
	Key         string
	Title       string
	Description string
	Icon        string
	Href        string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
