package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ferramentas/toolhub/internal/api/dto"
	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/service"
	apperrors "github.com/ferramentas/toolhub/pkg/util"
)

// LogHandler exposes explicit usage recording and the per-user activity
// summary.
type LogHandler struct {
	usage *service.UsageService
}

// NewLogHandler constructs handler.
func NewLogHandler(usage *service.UsageService) *LogHandler {
	return &LogHandler{usage: usage}
}

// Record handles POST /api/v1/logs. Clients without a dedicated tool
// endpoint report usage here.
func (h *LogHandler) Record(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UsageLogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ToolName == "" {
		return apperrors.NewValidationError("tool_name required", nil)
	}

	if err := h.usage.Record(c.Context(), principal.UserID, req.ToolName, c.IP()); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusCreated)
}

// Summary handles GET /api/v1/logs/summary. The window query parameter
// is a Go duration string, defaulting to 24h.
func (h *LogHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("invalid window", nil)
		}
		window = parsed
	}

	count, err := h.usage.CountForUser(c.Context(), principal.UserID, window)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"count":  count,
		"window": window.String(),
	}})
}
