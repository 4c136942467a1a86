package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/config"
	"github.com/ferramentas/toolhub/internal/domain"
	"github.com/ferramentas/toolhub/internal/repository"
)

var defaultTools = []domain.Tool{
	{Key: "password-generator", Title: "Password Generator", Description: "Generate strong, customizable passwords.", Icon: "Key", Href: "/dashboard/tools/password-generator", Active: true},
	{Key: "base64-encoder", Title: "Base64 Encoder", Description: "Encode and decode Base64 text.", Icon: "Binary", Href: "/dashboard/tools/base64-encoder", Active: true},
	{Key: "hash-generator", Title: "Hash Generator", Description: "Create MD5, SHA-1, SHA-256 and SHA-512 hashes.", Icon: "Hash", Href: "/dashboard/tools/hash-generator", Active: true},
	{Key: "uuid-generator", Title: "UUID Generator", Description: "Generate version 4 UUIDs.", Icon: "FileJson", Href: "/dashboard/tools/uuid-generator", Active: true},
	{Key: "json-formatter", Title: "JSON Formatter", Description: "Format and validate JSON documents.", Icon: "FileJson", Href: "/dashboard/tools/json-formatter", Active: true},
	{Key: "url-encoder", Title: "URL Parser", Description: "Parse and build URLs.", Icon: "Link", Href: "/dashboard/tools/url-encoder", Active: true},
	{Key: "regex-tester", Title: "Regex Tester", Description: "Test, replace and identify regular expressions.", Icon: "FileText", Href: "/dashboard/tools/regex-tester", Active: true},
	{Key: "dns-lookup", Title: "DNS Lookup", Description: "Inspect DNS records of a domain.", Icon: "Globe", Href: "/dashboard/tools/dns-lookup", Active: true},
	{Key: "url-tester", Title: "URL Tester", Description: "Send test requests and scan security headers.", Icon: "Globe", Href: "/dashboard/tools/url-tester", Active: true},
	{Key: "data-generator", Title: "Data Generator", Description: "Generate fake sample data.", Icon: "FileText", Href: "/dashboard/tools/data-generator", Active: true},
}

// Run inserts the default tool catalog and the admin account when absent.
func Run(ctx context.Context, cfg config.AuthConfig, users repository.UserRepository, tools repository.ToolRepository, logger *zap.Logger) error {
	count, err := tools.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for i := range defaultTools {
			tool := defaultTools[i]
			if err := tools.Create(ctx, &tool); err != nil {
				return err
			}
		}
		logger.Info("tool catalog seeded", zap.Int("count", len(defaultTools)))
	}

	if _, err := users.GetByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword("password", cfg.BcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Username:     "admin",
		Email:        "admin@toolhub.local",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("admin user seeded")
	return nil
}
