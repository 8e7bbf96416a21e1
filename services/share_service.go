package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/storage"

	"gorm.io/gorm"
)

// ShareOutput carries either inline content or a path to a blob on disk,
// never both.
type ShareOutput struct {
	Inline       bool
	Content      string
	AbsPath      string
	DownloadName string
}

type ShareService interface {
	Redeem(ctx context.Context, uploadID uint, token string) (ShareOutput, error)
}

type shareService struct {
	uploads repositories.UploadRepository
	store   storage.Store
}

func NewShareService(uploads repositories.UploadRepository, store storage.Store) ShareService {
	return &shareService{uploads: uploads, store: store}
}

// Redeem resolves a share link. A wrong token, a missing item and an
// expired link all produce the same 404 so callers cannot probe which
// tokens exist.
func (s *shareService) Redeem(ctx context.Context, uploadID uint, token string) (ShareOutput, error) {
	notFound := newAppError(http.StatusNotFound, "share link invalid or expired", nil)
	if token == "" {
		return ShareOutput{}, notFound
	}

	upload, err := s.uploads.GetByIDAndToken(ctx, nil, uploadID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShareOutput{}, notFound
		}
		return ShareOutput{}, newAppError(http.StatusInternalServerError, "failed to query upload", err)
	}

	if upload.ShareExpiresAt != nil && upload.ShareExpiresAt.Before(time.Now()) {
		return ShareOutput{}, notFound
	}

	if upload.Kind.Inline() {
		return ShareOutput{Inline: true, Content: upload.Content}, nil
	}

	abs, err := s.store.Path(upload.FilePath)
	if err != nil {
		return ShareOutput{}, notFound
	}
	return ShareOutput{
		AbsPath:      abs,
		DownloadName: fmt.Sprintf("shared_%d%s", upload.ID, filepath.Ext(upload.FilePath)),
	}, nil
}
