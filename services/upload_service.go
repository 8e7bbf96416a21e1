package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/justfortestingnothibghere/DataForge-Cloud/models"
	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateUploadInput struct {
	Kind     models.UploadKind
	Content  string
	FileName string
	Data     []byte
	Share    bool
	TTLHours int
}

type CreateUploadOutput struct {
	ItemID    uint   `json:"item_id"`
	AccessURL string `json:"access_url"`
	ShareLink string `json:"share_link,omitempty"`
}

type UploadDetailOutput struct {
	Owner     string    `json:"owner"`
	Kind      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content,omitempty"`
	FileURL   string    `json:"file_url,omitempty"`
}

type AnalyticsSummaryOutput struct {
	UploadsCount int64                    `json:"uploads_count"`
	StorageUsed  int64                    `json:"storage_used"`
	Labels       []string                 `json:"labels"`
	Datasets     []map[string]interface{} `json:"datasets"`
}

type UploadService interface {
	Create(ctx context.Context, userID uint, in CreateUploadInput) (CreateUploadOutput, error)
	GetForOwner(ctx context.Context, owner models.User, uploadID uint) (UploadDetailOutput, error)
	Delete(ctx context.Context, userID uint, uploadID uint) error
	AnalyticsSummary(ctx context.Context, userID uint) (AnalyticsSummaryOutput, error)
	Export(ctx context.Context, userID uint) ([]byte, error)
}

type uploadService struct {
	txManager TxManager
	users     repositories.UserRepository
	uploads   repositories.UploadRepository
	analytics repositories.AnalyticsRepository
	store     storage.Store
}

func NewUploadService(
	txManager TxManager,
	users repositories.UserRepository,
	uploads repositories.UploadRepository,
	analytics repositories.AnalyticsRepository,
	store storage.Store,
) UploadService {
	return &uploadService{
		txManager: txManager,
		users:     users,
		uploads:   uploads,
		analytics: analytics,
		store:     store,
	}
}

func (s *uploadService) Create(ctx context.Context, userID uint, in CreateUploadInput) (CreateUploadOutput, error) {
	if !in.Kind.Valid() {
		return CreateUploadOutput{}, newAppError(http.StatusBadRequest, "invalid type", nil)
	}
	if in.Kind.Inline() {
		if in.Content == "" {
			return CreateUploadOutput{}, newAppError(http.StatusBadRequest, "content required for text", nil)
		}
		if len(in.Data) > 0 {
			return CreateUploadOutput{}, newAppError(http.StatusBadRequest, "text uploads do not take a file", nil)
		}
	} else {
		if len(in.Data) == 0 {
			return CreateUploadOutput{}, newAppError(http.StatusBadRequest, "file required", nil)
		}
		if in.Content != "" {
			return CreateUploadOutput{}, newAppError(http.StatusBadRequest, "content is only valid for text uploads", nil)
		}
	}
	if in.TTLHours < 1 {
		in.TTLHours = 24
	}

	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return CreateUploadOutput{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	upload := models.Upload{UserID: user.ID, Kind: in.Kind}
	shareLink := ""

	if !in.Kind.Inline() {
		size := int64(len(in.Data))
		// Point-in-time check only: two concurrent uploads can both pass
		// and jointly overshoot the limit.
		if !user.IsPremium {
			used, err := s.store.UsedByOwner(user.ID)
			if err != nil {
				return CreateUploadOutput{}, newAppError(http.StatusInternalServerError, "failed to compute storage usage", err)
			}
			if used+size > user.StorageLimit {
				return CreateUploadOutput{}, newAppErrorWithData(http.StatusForbidden,
					"storage limit exceeded, upgrade to premium",
					map[string]interface{}{
						"storage_limit":  user.StorageLimit,
						"storage_used":   used,
						"required_space": size,
					}, nil)
			}
		}

		key := storage.NewKey(user.ID, in.FileName)
		if err := s.store.Save(key, in.Data); err != nil {
			return CreateUploadOutput{}, newAppError(http.StatusInternalServerError, "failed to store file", err)
		}
		upload.FilePath = key

		if in.Share {
			upload.ShareToken = uuid.New().String()
			expires := time.Now().Add(time.Duration(in.TTLHours) * time.Hour)
			upload.ShareExpiresAt = &expires
		}
	} else {
		upload.Content = in.Content
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.uploads.Create(ctx, tx, &upload)
	})
	if err != nil {
		if upload.FilePath != "" {
			_ = s.store.Delete(upload.FilePath)
		}
		return CreateUploadOutput{}, newAppError(http.StatusInternalServerError, "failed to save upload", err)
	}

	if upload.ShareToken != "" {
		shareLink = fmt.Sprintf("/api/share/%d?token=%s", upload.ID, upload.ShareToken)
	}

	recordEvent(ctx, s.analytics, &user.ID, models.EventUpload, models.UploadDetails{
		UploadID: upload.ID,
		Kind:     upload.Kind,
	})

	return CreateUploadOutput{
		ItemID:    upload.ID,
		AccessURL: fmt.Sprintf("/api/v2/%s?uploads=%d", user.Username, upload.ID),
		ShareLink: shareLink,
	}, nil
}

func (s *uploadService) GetForOwner(ctx context.Context, owner models.User, uploadID uint) (UploadDetailOutput, error) {
	upload, err := s.uploads.GetByIDAndUser(ctx, nil, uploadID, owner.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UploadDetailOutput{}, newAppError(http.StatusNotFound, "upload not found", nil)
		}
		return UploadDetailOutput{}, newAppError(http.StatusInternalServerError, "failed to query upload", err)
	}

	out := UploadDetailOutput{
		Owner:     owner.Username,
		Kind:      string(upload.Kind),
		CreatedAt: upload.CreatedAt,
	}
	if upload.Kind.Inline() {
		out.Content = upload.Content
	} else {
		out.FileURL = "/uploads/" + upload.FilePath
	}
	return out, nil
}

// Delete removes the record first and the blob second. The two steps are
// not transactional: a crash in between leaves an orphaned blob, which
// is acceptable; the reverse order could lose the only copy of the path.
func (s *uploadService) Delete(ctx context.Context, userID uint, uploadID uint) error {
	upload, err := s.uploads.GetByIDAndUser(ctx, nil, uploadID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "upload not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to query upload", err)
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.uploads.DeleteByID(ctx, tx, upload.ID)
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete upload", err)
	}

	if upload.FilePath != "" {
		if err := s.store.Delete(upload.FilePath); err != nil {
			return newAppError(http.StatusInternalServerError, "failed to delete file", err)
		}
	}
	return nil
}

func (s *uploadService) AnalyticsSummary(ctx context.Context, userID uint) (AnalyticsSummaryOutput, error) {
	uploadsCount, err := s.uploads.CountByUser(ctx, nil, userID)
	if err != nil {
		return AnalyticsSummaryOutput{}, newAppError(http.StatusInternalServerError, "failed to count uploads", err)
	}

	used, err := s.store.UsedByOwner(userID)
	if err != nil {
		return AnalyticsSummaryOutput{}, newAppError(http.StatusInternalServerError, "failed to compute storage usage", err)
	}

	events, err := s.analytics.ListRecentByUser(ctx, nil, userID, 10)
	if err != nil {
		return AnalyticsSummaryOutput{}, newAppError(http.StatusInternalServerError, "failed to query analytics", err)
	}

	labels := make([]string, 0, len(events))
	counts := make([]int, 0, len(events))
	// ListRecentByUser returns newest first; present oldest first.
	for i := len(events) - 1; i >= 0; i-- {
		labels = append(labels, events[i].EventType)
		counts = append(counts, 1)
	}

	return AnalyticsSummaryOutput{
		UploadsCount: uploadsCount,
		StorageUsed:  used,
		Labels:       labels,
		Datasets:     []map[string]interface{}{{"data": counts}},
	}, nil
}

// Export bundles every artifact the caller owns into one zip: inline
// text as {id}.txt, blobs under {id} plus their original extension.
func (s *uploadService) Export(ctx context.Context, userID uint) ([]byte, error) {
	uploads, err := s.uploads.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to query uploads", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, upload := range uploads {
		switch {
		case upload.Kind.Inline():
			w, err := zw.Create(fmt.Sprintf("%d.txt", upload.ID))
			if err == nil {
				_, err = w.Write([]byte(upload.Content))
			}
			if err != nil {
				_ = zw.Close()
				return nil, newAppError(http.StatusInternalServerError, "failed to build export archive", err)
			}
		case upload.FilePath != "":
			data, err := s.store.Read(upload.FilePath)
			if err != nil {
				// Blob may have been orphaned by a crash; skip it.
				continue
			}
			w, err := zw.Create(fmt.Sprintf("%d%s", upload.ID, filepath.Ext(upload.FilePath)))
			if err == nil {
				_, err = w.Write(data)
			}
			if err != nil {
				_ = zw.Close()
				return nil, newAppError(http.StatusInternalServerError, "failed to build export archive", err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to finalize export archive", err)
	}
	return buf.Bytes(), nil
}
