package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	EventUpload  = "upload"
	EventAPICall = "api_call"
)

// UploadDetails is the payload recorded for EventUpload.
type UploadDetails struct {
	UploadID uint       `json:"upload_id"`
	Kind     UploadKind `json:"type"`
}

// APICallDetails is the payload recorded for EventAPICall.
type APICallDetails struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}

// AnalyticsEvent is an append-only, best-effort record. UserID is a weak
// reference: deleting a user does not cascade here.
type AnalyticsEvent struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	EventType string         `gorm:"type:varchar(30);not null;index" json:"event_type"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func NewAnalyticsEvent(userID *uint, eventType string, details any) (AnalyticsEvent, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return AnalyticsEvent{}, err
	}
	return AnalyticsEvent{UserID: userID, EventType: eventType, Details: raw}, nil
}
