package repositories

import (
	"context"

	"github.com/justfortestingnothibghere/DataForge-Cloud/models"

	"gorm.io/gorm"
)

type GormUploadRepository struct {
	db *gorm.DB
}

func NewGormUploadRepository(db *gorm.DB) *GormUploadRepository {
	return &GormUploadRepository{db: db}
}

func (r *GormUploadRepository) Create(_ context.Context, tx *gorm.DB, upload *models.Upload) error {
	return useTx(r.db, tx).Create(upload).Error
}

func (r *GormUploadRepository) GetByIDAndUser(_ context.Context, tx *gorm.DB, uploadID uint, userID uint) (models.Upload, error) {
	var upload models.Upload
	err := useTx(r.db, tx).Where("id = ? AND user_id = ?", uploadID, userID).First(&upload).Error
	return upload, err
}

func (r *GormUploadRepository) GetByIDAndToken(_ context.Context, tx *gorm.DB, uploadID uint, token string) (models.Upload, error) {
	var upload models.Upload
	err := useTx(r.db, tx).Where("id = ? AND share_token = ? AND share_token <> ''", uploadID, token).First(&upload).Error
	return upload, err
}

func (r *GormUploadRepository) ListByUser(_ context.Context, tx *gorm.DB, userID uint) ([]models.Upload, error) {
	var uploads []models.Upload
	err := useTx(r.db, tx).Where("user_id = ?", userID).Order("id").Find(&uploads).Error
	return uploads, err
}

func (r *GormUploadRepository) CountByUser(_ context.Context, tx *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.Upload{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *GormUploadRepository) CountAll(_ context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.Upload{}).Count(&count).Error
	return count, err
}

func (r *GormUploadRepository) DeleteByID(_ context.Context, tx *gorm.DB, uploadID uint) error {
	return useTx(r.db, tx).Delete(&models.Upload{}, uploadID).Error
}

func (r *GormUploadRepository) DeleteByUser(_ context.Context, tx *gorm.DB, userID uint) error {
	return useTx(r.db, tx).Where("user_id = ?", userID).Delete(&models.Upload{}).Error
}
