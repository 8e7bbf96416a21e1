package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/storage"

	"gorm.io/gorm"
)

type AdminUserRow struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	UploadsCount int64  `json:"uploads_count"`
	IsPremium    bool   `json:"is_premium"`
}

type AdminStats struct {
	TotalUsers     int     `json:"total_users"`
	TotalUploads   int64   `json:"total_uploads"`
	TotalStorageGB float64 `json:"total_storage_gb"`
	PremiumCount   int64   `json:"premium_count"`
}

type DashboardOutput struct {
	Users []AdminUserRow `json:"users"`
	Stats AdminStats     `json:"stats"`
}

type AdminService interface {
	Dashboard(ctx context.Context) (DashboardOutput, error)
	DeleteUser(ctx context.Context, userID uint) error
}

type adminService struct {
	txManager TxManager
	users     repositories.UserRepository
	uploads   repositories.UploadRepository
	store     storage.Store
}

func NewAdminService(txManager TxManager, users repositories.UserRepository, uploads repositories.UploadRepository, store storage.Store) AdminService {
	return &adminService{txManager: txManager, users: users, uploads: uploads, store: store}
}

func (s *adminService) Dashboard(ctx context.Context) (DashboardOutput, error) {
	users, err := s.users.ListAll(ctx, nil)
	if err != nil {
		return DashboardOutput{}, newAppError(http.StatusInternalServerError, "failed to list users", err)
	}

	rows := make([]AdminUserRow, 0, len(users))
	for _, u := range users {
		count, err := s.uploads.CountByUser(ctx, nil, u.ID)
		if err != nil {
			return DashboardOutput{}, newAppError(http.StatusInternalServerError, "failed to count uploads", err)
		}
		rows = append(rows, AdminUserRow{ID: u.ID, Username: u.Username, UploadsCount: count, IsPremium: u.IsPremium})
	}

	totalUploads, err := s.uploads.CountAll(ctx, nil)
	if err != nil {
		return DashboardOutput{}, newAppError(http.StatusInternalServerError, "failed to count uploads", err)
	}

	totalStorage, err := s.store.TotalUsed()
	if err != nil {
		return DashboardOutput{}, newAppError(http.StatusInternalServerError, "failed to compute storage usage", err)
	}

	premiumCount, err := s.users.CountPremium(ctx, nil)
	if err != nil {
		return DashboardOutput{}, newAppError(http.StatusInternalServerError, "failed to count premium users", err)
	}

	return DashboardOutput{
		Users: rows,
		Stats: AdminStats{
			TotalUsers:     len(users),
			TotalUploads:   totalUploads,
			TotalStorageGB: float64(totalStorage) / float64(1<<30),
			PremiumCount:   premiumCount,
		},
	}, nil
}

// DeleteUser cascades: upload records and the user row go first in one
// transaction, blobs after. A crash between the two leaves orphaned
// blobs rather than records pointing at missing files.
func (s *adminService) DeleteUser(ctx context.Context, userID uint) error {
	if _, err := s.users.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleting an absent user is a no-op, matching the original.
			return nil
		}
		return newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	uploads, err := s.uploads.ListByUser(ctx, nil, userID)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to list uploads", err)
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.uploads.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		return s.users.DeleteByID(ctx, tx, userID)
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete user", err)
	}

	for _, upload := range uploads {
		if upload.FilePath != "" {
			_ = s.store.Delete(upload.FilePath)
		}
	}
	return nil
}
