package repositories

import (
	"context"

	"github.com/justfortestingnothibghere/DataForge-Cloud/models"

	"gorm.io/gorm"
)

type GormAnalyticsRepository struct {
	db *gorm.DB
}

func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

func (r *GormAnalyticsRepository) Create(_ context.Context, tx *gorm.DB, event *models.AnalyticsEvent) error {
	return useTx(r.db, tx).Create(event).Error
}

func (r *GormAnalyticsRepository) ListRecentByUser(_ context.Context, tx *gorm.DB, userID uint, limit int) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := useTx(r.db, tx).Where("user_id = ?", userID).Order("id DESC").Limit(limit).Find(&events).Error
	return events, err
}
