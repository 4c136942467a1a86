package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ferramentas/toolhub/internal/api/dto"
	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/events"
	"github.com/ferramentas/toolhub/internal/service"
	apperrors "github.com/ferramentas/toolhub/pkg/util"
)

// ToolkitHandler exposes the utility tool endpoints. Every successful
// invocation publishes a tool usage event attributed to the caller.
type ToolkitHandler struct {
	toolkit    *service.ToolkitService
	jsonTools  *service.JSONService
	regex      *service.RegexService
	urls       *service.URLService
	dns        *service.DNSService
	webcheck   *service.WebCheckService
	faker      *service.FakerService
	dispatcher events.Dispatcher
}

// NewToolkitHandler constructs handler.
func NewToolkitHandler(
	toolkit *service.ToolkitService,
	jsonTools *service.JSONService,
	regex *service.RegexService,
	urls *service.URLService,
	dns *service.DNSService,
	webcheck *service.WebCheckService,
	faker *service.FakerService,
	dispatcher events.Dispatcher,
) *ToolkitHandler {
	return &ToolkitHandler{
		toolkit:    toolkit,
		jsonTools:  jsonTools,
		regex:      regex,
		urls:       urls,
		dns:        dns,
		webcheck:   webcheck,
		faker:      faker,
		dispatcher: dispatcher,
	}
}

func (h *ToolkitHandler) recordUsage(c *fiber.Ctx, toolName string) {
	if h.dispatcher == nil {
		return
	}
	event := events.Event{Type: events.EventToolUsed, ToolName: toolName, IPAddress: c.IP()}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		event.UserID = principal.UserID
	}
	_ = h.dispatcher.Publish(c.Context(), event)
}

// GeneratePassword handles POST /api/v1/tools/password.
func (h *ToolkitHandler) GeneratePassword(c *fiber.Ctx) error {
	var req dto.PasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	password, err := h.toolkit.GeneratePassword(req.Length, req.IncludeSymbols)
	if err != nil {
		return apperrors.MapError(err)
	}

	h.recordUsage(c, "password-generator")
	return c.JSON(fiber.Map{"data": fiber.Map{"password": password, "length": len(password)}})
}

// GenerateUUIDs handles POST /api/v1/tools/uuid.
func (h *ToolkitHandler) GenerateUUIDs(c *fiber.Ctx) error {
	var req dto.UUIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ids := h.toolkit.GenerateUUIDs(req.Count)
	h.recordUsage(c, "uuid-generator")
	return c.JSON(fiber.Map{"data": fiber.Map{"uuids": ids, "count": len(ids)}})
}

// EncodeBase64 handles POST /api/v1/tools/base64/encode.
func (h *ToolkitHandler) EncodeBase64(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	h.recordUsage(c, "base64")
	return c.JSON(fiber.Map{"data": fiber.Map{"output": h.toolkit.EncodeBase64(req.Input)}})
}

// DecodeBase64 handles POST /api/v1/tools/base64/decode.
func (h *ToolkitHandler) DecodeBase64(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	output, err := h.toolkit.DecodeBase64(req.Input)
	if err != nil {
		return apperrors.NewValidationError("input is not valid base64", nil)
	}

	h.recordUsage(c, "base64")
	return c.JSON(fiber.Map{"data": fiber.Map{"output": output}})
}

// Hash handles POST /api/v1/tools/hash.
func (h *ToolkitHandler) Hash(c *fiber.Ctx) error {
	var req dto.HashRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	digest, err := h.toolkit.Hash(req.Input, req.Algorithm)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedAlgorithm) {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		return apperrors.MapError(err)
	}

	h.recordUsage(c, "hash-generator")
	return c.JSON(fiber.Map{"data": fiber.Map{"algorithm": req.Algorithm, "hash": digest}})
}

// ValidateJWT handles POST /api/v1/tools/jwt/validate.
func (h *ToolkitHandler) ValidateJWT(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	h.recordUsage(c, "jwt-decoder")
	return c.JSON(fiber.Map{"data": fiber.Map{"valid": h.toolkit.ValidateJWTStructure(req.Input)}})
}

// DecodeJWT handles POST /api/v1/tools/jwt/decode.
func (h *ToolkitHandler) DecodeJWT(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	decoded, err := h.jsonTools.ParseJWT(req.Input)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	h.recordUsage(c, "jwt-decoder")
	return c.JSON(fiber.Map{"data": decoded})
}

// ParseJSON handles POST /api/v1/tools/json/parse.
func (h *ToolkitHandler) ParseJSON(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	parsed, err := h.jsonTools.ParseJSON(req.Input)
	if err != nil {
		return apperrors.NewValidationError("input is not valid json", nil)
	}

	h.recordUsage(c, "json-formatter")
	return c.JSON(fiber.Map{"data": fiber.Map{"valid": true, "parsed": parsed}})
}

// FormatJSON handles POST /api/v1/tools/json/format.
func (h *ToolkitHandler) FormatJSON(c *fiber.Ctx) error {
	var req dto.JSONFormatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	formatted, parsed, err := h.jsonTools.FormatJSON(req.Input, req.Prettify)
	if err != nil {
		return apperrors.NewValidationError("input is not valid json", nil)
	}

	h.recordUsage(c, "json-formatter")
	return c.JSON(fiber.Map{"data": fiber.Map{"formatted": formatted, "parsed": parsed}})
}

// TestRegex handles POST /api/v1/tools/regex/test.
func (h *ToolkitHandler) TestRegex(c *fiber.Ctx) error {
	var req dto.RegexRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.regex.Test(req.Pattern, req.Text)
	if err != nil {
		return apperrors.NewValidationError("invalid regular expression", map[string]any{"error": err.Error()})
	}

	h.recordUsage(c, "regex-tester")
	return c.JSON(fiber.Map{"data": result})
}

// ReplaceRegex handles POST /api/v1/tools/regex/replace.
func (h *ToolkitHandler) ReplaceRegex(c *fiber.Ctx) error {
	var req dto.RegexRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.regex.Replace(req.Pattern, req.Text, req.Replacement)
	if err != nil {
		return apperrors.NewValidationError("invalid regular expression", map[string]any{"error": err.Error()})
	}

	h.recordUsage(c, "regex-tester")
	return c.JSON(fiber.Map{"data": result})
}

// RegexPatterns handles GET /api/v1/tools/regex/patterns.
func (h *ToolkitHandler) RegexPatterns(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.regex.Patterns()})
}

// IdentifyRegex handles POST /api/v1/tools/regex/identify.
func (h *ToolkitHandler) IdentifyRegex(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	h.recordUsage(c, "regex-tester")
	return c.JSON(fiber.Map{"data": fiber.Map{"matches": h.regex.Identify(req.Input)}})
}

// LookupDNS handles POST /api/v1/tools/dns.
func (h *ToolkitHandler) LookupDNS(c *fiber.Ctx) error {
	var req dto.DNSLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Domain == "" {
		return apperrors.NewValidationError("domain required", nil)
	}

	result, err := h.dns.Lookup(c.Context(), req.Domain)
	if err != nil {
		return apperrors.NewValidationError("domain could not be resolved", map[string]any{"domain": req.Domain})
	}

	h.recordUsage(c, "dns-lookup")
	return c.JSON(fiber.Map{"data": result})
}

// ParseURL handles POST /api/v1/tools/url/parse.
func (h *ToolkitHandler) ParseURL(c *fiber.Ctx) error {
	var req dto.URLParseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.URL == "" {
		return apperrors.NewValidationError("url required", nil)
	}

	parsed, err := h.urls.Parse(req.URL)
	if err != nil {
		return apperrors.NewValidationError("url could not be parsed", nil)
	}

	h.recordUsage(c, "url-parser")
	return c.JSON(fiber.Map{"data": parsed})
}

// BuildURL handles POST /api/v1/tools/url/build.
func (h *ToolkitHandler) BuildURL(c *fiber.Ctx) error {
	var req service.URLComponents
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Host == "" {
		return apperrors.NewValidationError("host required", nil)
	}

	h.recordUsage(c, "url-parser")
	return c.JSON(fiber.Map{"data": fiber.Map{"url": h.urls.Build(req)}})
}

// TestURL handles POST /api/v1/tools/url/test.
func (h *ToolkitHandler) TestURL(c *fiber.Ctx) error {
	var req service.URLTestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.URL == "" {
		return apperrors.NewValidationError("url required", nil)
	}

	result, err := h.webcheck.Test(c.Context(), req)
	if err != nil {
		return apperrors.NewValidationError("request failed", map[string]any{"error": err.Error()})
	}

	h.recordUsage(c, "url-tester")
	return c.JSON(fiber.Map{"data": result})
}

// CheckURLSecurity handles POST /api/v1/tools/url/security.
func (h *ToolkitHandler) CheckURLSecurity(c *fiber.Ctx) error {
	var req dto.URLParseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.URL == "" {
		return apperrors.NewValidationError("url required", nil)
	}

	h.recordUsage(c, "url-tester")
	return c.JSON(fiber.Map{"data": h.webcheck.CheckSecurity(c.Context(), req.URL)})
}

// URLTestMethods handles GET /api/v1/tools/url/methods.
func (h *ToolkitHandler) URLTestMethods(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"methods": h.webcheck.SupportedMethods()}})
}

// GenerateFakeData handles POST /api/v1/tools/faker.
func (h *ToolkitHandler) GenerateFakeData(c *fiber.Ctx) error {
	var req dto.FakerGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	records, err := h.faker.Generate(req.Type, req.Count)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"supported": h.faker.Types()})
	}

	h.recordUsage(c, "data-generator")
	return c.JSON(fiber.Map{"data": fiber.Map{"type": req.Type, "records": records, "count": len(records)}})
}

// FakerTypes handles GET /api/v1/tools/faker/types.
func (h *ToolkitHandler) FakerTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"types": h.faker.Types()}})
}
