package dto

import (
	"time"

	"github.com/ferramentas/toolhub/internal/domain"
)

// ToolResponse is the catalog entry representation.
type ToolResponse struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Href        string    `json:"href"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewToolResponse maps a domain tool.
func NewToolResponse(tool *domain.Tool) ToolResponse {
	return ToolResponse{
		ID:          tool.ID,
		Key:         tool.Key,
		Title:       tool.Title,
		Description: tool.Description,
		Icon:        tool.Icon,
		Href:        tool.Href,
		Active:      tool.Active,
		CreatedAt:   tool.CreatedAt,
		UpdatedAt:   tool.UpdatedAt,
	}
}

// NewToolResponses maps a list of domain tools.
func NewToolResponses(tools []*domain.Tool) []ToolResponse {
	out := make([]ToolResponse, 0, len(tools))
	for _, tool := range tools {
		out = append(out, NewToolResponse(tool))
	}
	return out
}

// ToolCreateRequest payload for new catalog entries.
type ToolCreateRequest struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Href        string `json:"href"`
	Active      *bool  `json:"active"`
}

// ToolStatusRequest payload for the status toggle.
type ToolStatusRequest struct {
	Active bool `json:"active"`
}
