package services

import (
	"context"

	"github.com/justfortestingnothibghere/DataForge-Cloud/logger"
	"github.com/justfortestingnothibghere/DataForge-Cloud/models"
	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"

	"go.uber.org/zap"
)

// recordEvent appends an analytics event best-effort. Analytics is not
// authoritative: a failed write is logged and swallowed so it can never
// fail the operation that triggered it.
func recordEvent(ctx context.Context, repo repositories.AnalyticsRepository, userID *uint, eventType string, details any) {
	event, err := models.NewAnalyticsEvent(userID, eventType, details)
	if err != nil {
		logger.L().Warn("analytics event encode failed", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := repo.Create(ctx, nil, &event); err != nil {
		logger.L().Warn("analytics event write failed", zap.String("event_type", eventType), zap.Error(err))
	}
}
