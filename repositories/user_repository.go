package repositories

import (
	"context"

	"github.com/justfortestingnothibghere/DataForge-Cloud/models"

	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CountByUsername(_ context.Context, username string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) CountByEmail(_ context.Context, email string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) Create(_ context.Context, tx *gorm.DB, user *models.User) error {
	return useTx(r.db, tx).Create(user).Error
}

func (r *GormUserRepository) GetByUsername(_ context.Context, tx *gorm.DB, username string) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).Where("username = ?", username).First(&user).Error
	return user, err
}

func (r *GormUserRepository) GetByID(_ context.Context, tx *gorm.DB, userID uint) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).First(&user, userID).Error
	return user, err
}

func (r *GormUserRepository) GetByAPIKey(_ context.Context, tx *gorm.DB, apiKey string) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).Where("api_key = ?", apiKey).First(&user).Error
	return user, err
}

func (r *GormUserRepository) UpdateByID(_ context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *GormUserRepository) ListAll(_ context.Context, tx *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := useTx(r.db, tx).Order("id").Find(&users).Error
	return users, err
}

func (r *GormUserRepository) CountPremium(_ context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.User{}).Where("is_premium = ?", true).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) DeleteByID(_ context.Context, tx *gorm.DB, userID uint) error {
	return useTx(r.db, tx).Delete(&models.User{}, userID).Error
}
