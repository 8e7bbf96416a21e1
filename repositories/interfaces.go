package repositories

import (
	"context"

	"github.com/justfortestingnothibghere/DataForge-Cloud/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository interface {
	CountByUsername(ctx context.Context, username string) (int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error)
	GetByAPIKey(ctx context.Context, tx *gorm.DB, apiKey string) (models.User, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error
	ListAll(ctx context.Context, tx *gorm.DB) ([]models.User, error)
	CountPremium(ctx context.Context, tx *gorm.DB) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, userID uint) error
}

type UploadRepository interface {
	Create(ctx context.Context, tx *gorm.DB, upload *models.Upload) error
	GetByIDAndUser(ctx context.Context, tx *gorm.DB, uploadID uint, userID uint) (models.Upload, error)
	GetByIDAndToken(ctx context.Context, tx *gorm.DB, uploadID uint, token string) (models.Upload, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Upload, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, uploadID uint) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

type AnalyticsRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.AnalyticsEvent) error
	ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]models.AnalyticsEvent, error)
}

type Container struct {
	TxManager TxManager
	Users     UserRepository
	Uploads   UploadRepository
	Analytics AnalyticsRepository
}
