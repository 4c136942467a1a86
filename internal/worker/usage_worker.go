package worker

import (
	"github.com/ferramentas/toolhub/internal/service"
)

// StartUsageWorker registers the handlers that persist tool usage and
// forward login notifications.
func StartUsageWorker(usageService *service.UsageService, notificationService *service.NotificationService) {
	if usageService != nil {
		usageService.RegisterHandlers()
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
}
