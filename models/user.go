package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(100)" json:"name"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	APIKey       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ProfilePhoto string    `gorm:"type:varchar(500)" json:"profile_photo,omitempty"`
	IsPremium    bool      `gorm:"default:false" json:"is_premium"`
	StorageLimit int64     `gorm:"default:1073741824" json:"storage_limit"`
	IsAdmin      bool      `gorm:"default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
