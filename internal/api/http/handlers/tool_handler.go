package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ferramentas/toolhub/internal/api/dto"
	"github.com/ferramentas/toolhub/internal/domain"
	"github.com/ferramentas/toolhub/internal/service"
	apperrors "github.com/ferramentas/toolhub/pkg/util"
)

// ToolHandler exposes the public catalog listing and the admin catalog
// management endpoints.
type ToolHandler struct {
	tools *service.ToolService
}

// NewToolHandler constructs handler.
func NewToolHandler(tools *service.ToolService) *ToolHandler {
	return &ToolHandler{tools: tools}
}

// ListActive handles GET /api/v1/public/tools/active.
func (h *ToolHandler) ListActive(c *fiber.Ctx) error {
	tools, err := h.tools.ListActive(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewToolResponses(tools)})
}

// List handles GET /api/v1/admin/tools.
func (h *ToolHandler) List(c *fiber.Ctx) error {
	tools, err := h.tools.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewToolResponses(tools)})
}

// Get handles GET /api/v1/admin/tools/:id.
func (h *ToolHandler) Get(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}

	tool, err := h.tools.GetByID(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewToolResponse(tool)})
}

// Create handles POST /api/v1/admin/tools.
func (h *ToolHandler) Create(c *fiber.Ctx) error {
	var req dto.ToolCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Key == "" || req.Title == "" {
		return apperrors.NewValidationError("key and title required", nil)
	}

	tool := &domain.Tool{
		Key:         req.Key,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Href:        req.Href,
		Active:      true,
	}
	if req.Active != nil {
		tool.Active = *req.Active
	}

	if err := h.tools.Create(c.Context(), tool); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewToolResponse(tool)})
}

// UpdateStatus handles PATCH /api/v1/admin/tools/:id/status.
func (h *ToolHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}

	var req dto.ToolStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	tool, err := h.tools.UpdateStatus(c.Context(), id, req.Active)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewToolResponse(tool)})
}

// Delete handles DELETE /api/v1/admin/tools/:id.
func (h *ToolHandler) Delete(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}

	if err := h.tools.Delete(c.Context(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func toolID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid tool id", nil)
	}
	return id, nil
}
