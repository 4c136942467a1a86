package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ferramentas/toolhub/internal/domain"
	"github.com/ferramentas/toolhub/internal/repository"
)

const (
	activeToolsCacheKey = "toolhub:tools:active"
	activeToolsCacheTTL = 5 * time.Minute
)

// ToolService manages the tool catalog. The active-tool list is served
// through a redis cache-aside; cache failures degrade to direct reads.
type ToolService struct {
	tools  repository.ToolRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewToolService builds the service. cache may be nil.
func NewToolService(tools repository.ToolRepository, cache *redis.Client, logger *zap.Logger) *ToolService {
	return &ToolService{tools: tools, cache: cache, logger: logger}
}

// List returns the full catalog, active or not.
func (s *ToolService) List(ctx context.Context) ([]*domain.Tool, error) {
	return s.tools.List(ctx)
}

// GetByID returns a single catalog entry.
func (s *ToolService) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	return s.tools.GetByID(ctx, id)
}

// ListActive returns the active catalog entries, preferring the cache.
func (s *ToolService) ListActive(ctx context.Context) ([]*domain.Tool, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, activeToolsCacheKey).Bytes()
		if err == nil {
			var tools []*domain.Tool
			if jsonErr := json.Unmarshal(cached, &tools); jsonErr == nil {
				return tools, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("active tools cache read failed", zap.Error(err))
		}
	}

	tools, err := s.tools.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(tools); err == nil {
			if err := s.cache.Set(ctx, activeToolsCacheKey, payload, activeToolsCacheTTL).Err(); err != nil {
				s.logger.Warn("active tools cache write failed", zap.Error(err))
			}
		}
	}
	return tools, nil
}

// Create inserts a catalog entry and invalidates the active-list cache.
func (s *ToolService) Create(ctx context.Context, tool *domain.Tool) error {
	if err := s.tools.Create(ctx, tool); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// UpdateStatus toggles a tool's active flag.
func (s *ToolService) UpdateStatus(ctx context.Context, id int64, active bool) (*domain.Tool, error) {
	if err := s.tools.UpdateStatus(ctx, id, active); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return s.tools.GetByID(ctx, id)
}

// Delete removes a catalog entry.
func (s *ToolService) Delete(ctx context.Context, id int64) error {
	if err := s.tools.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *ToolService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, activeToolsCacheKey).Err(); err != nil {
		s.logger.Warn("active tools cache invalidation failed", zap.Error(err))
	}
}
