package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ferramentas/toolhub/internal/domain"
	"github.com/ferramentas/toolhub/internal/events"
	"github.com/ferramentas/toolhub/internal/repository"
)

// UsageService records tool usage. Writes happen through the event
// dispatcher so handlers stay off the persistence path.
type UsageService struct {
	logs       repository.UsageLogRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUsageService builds the service.
func NewUsageService(logs repository.UsageLogRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UsageService {
	return &UsageService{logs: logs, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the persistence handler to tool usage events.
func (s *UsageService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventToolUsed, s.handleToolUsed)
}

// Record persists a usage entry directly, for the explicit logs endpoint.
func (s *UsageService) Record(ctx context.Context, userID, toolName, ipAddress string) error {
	return s.logs.Create(ctx, &domain.ToolUsageLog{
		UserID:    userID,
		ToolName:  toolName,
		IPAddress: ipAddress,
	})
}

// CountForUser reports how many tools the user ran in the given window.
func (s *UsageService) CountForUser(ctx context.Context, userID string, window time.Duration) (int64, error) {
	return s.logs.CountByUserSince(ctx, userID, time.Now().Add(-window))
}

func (s *UsageService) handleToolUsed(ctx context.Context, event events.Event) error {
	if event.UserID == "" {
		return nil
	}
	err := s.logs.Create(ctx, &domain.ToolUsageLog{
		UserID:    event.UserID,
		ToolName:  event.ToolName,
		IPAddress: event.IPAddress,
	})
	if err != nil {
		s.logger.Warn("failed to persist tool usage",
			zap.String("tool", event.ToolName),
			zap.Error(err))
	}
	return err
}
