package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferramentas/toolhub/internal/api/http/handlers"
	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Users   *handlers.UserHandler
	Tools   *handlers.ToolHandler
	Toolkit *handlers.ToolkitHandler
	Logs    *handlers.LogHandler
	Gate    *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1", cfg.Gate.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)

	api.Get("/public/tools/active", cfg.Tools.ListActive)

	users := api.Group("/users", auth.RequireAuthenticated())
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)

	tools := api.Group("/tools", auth.RequireAuthenticated())
	tools.Post("/password", cfg.Toolkit.GeneratePassword)
	tools.Post("/uuid", cfg.Toolkit.GenerateUUIDs)
	tools.Post("/base64/encode", cfg.Toolkit.EncodeBase64)
	tools.Post("/base64/decode", cfg.Toolkit.DecodeBase64)
	tools.Post("/hash", cfg.Toolkit.Hash)
	tools.Post("/jwt/validate", cfg.Toolkit.ValidateJWT)
	tools.Post("/jwt/decode", cfg.Toolkit.DecodeJWT)
	tools.Post("/json/parse", cfg.Toolkit.ParseJSON)
	tools.Post("/json/format", cfg.Toolkit.FormatJSON)
	tools.Post("/regex/test", cfg.Toolkit.TestRegex)
	tools.Post("/regex/replace", cfg.Toolkit.ReplaceRegex)
	tools.Get("/regex/patterns", cfg.Toolkit.RegexPatterns)
	tools.Post("/regex/identify", cfg.Toolkit.IdentifyRegex)
	tools.Post("/dns", cfg.Toolkit.LookupDNS)
	tools.Post("/url/parse", cfg.Toolkit.ParseURL)
	tools.Post("/url/build", cfg.Toolkit.BuildURL)
	tools.Post("/url/test", cfg.Toolkit.TestURL)
	tools.Post("/url/security", cfg.Toolkit.CheckURLSecurity)
	tools.Get("/url/methods", cfg.Toolkit.URLTestMethods)
	tools.Post("/faker", cfg.Toolkit.GenerateFakeData)
	tools.Get("/faker/types", cfg.Toolkit.FakerTypes)

	logs := api.Group("/logs", auth.RequireAuthenticated())
	logs.Post("/", cfg.Logs.Record)
	logs.Get("/summary", cfg.Logs.Summary)

	admin := api.Group("/admin", auth.RequireRole(string(domain.RoleAdmin)))
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Put("/users/:id", cfg.Users.Update)
	admin.Patch("/users/:id/role", cfg.Users.UpdateRole)
	admin.Delete("/users/:id", cfg.Users.Delete)

	admin.Get("/tools", cfg.Tools.List)
	admin.Post("/tools", cfg.Tools.Create)
	admin.Get("/tools/:id", cfg.Tools.Get)
	admin.Patch("/tools/:id/status", cfg.Tools.UpdateStatus)
	admin.Delete("/tools/:id", cfg.Tools.Delete)
}
