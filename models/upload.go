package models

import "time"

// UploadKind tags the two payload shapes an upload can carry: inline text
// or a stored blob. Image, video and document differ only in labeling.
type UploadKind string

const (
	KindText     UploadKind = "text"
	KindImage    UploadKind = "image"
	KindVideo    UploadKind = "video"
	KindDocument UploadKind = "document"
)

func (k UploadKind) Valid() bool {
	switch k {
	case KindText, KindImage, KindVideo, KindDocument:
		return true
	}
	return false
}

// Inline reports whether the upload stores its content in the record
// itself rather than in a blob on disk.
func (k UploadKind) Inline() bool {
	return k == KindText
}

type Upload struct {
	ID     uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint       `gorm:"not null;index" json:"user_id"`
	Kind   UploadKind `gorm:"type:varchar(20);not null" json:"type"`

	// Exactly one of Content and FilePath is set, decided by Kind.
	Content  string `gorm:"type:text" json:"content,omitempty"`
	FilePath string `gorm:"type:varchar(1000)" json:"-"`

	ShareToken     string     `gorm:"type:varchar(64);index" json:"-"`
	ShareExpiresAt *time.Time `json:"share_expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}
