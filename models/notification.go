package models

import (
	"time"
)

// PushToken stores an Expo device token for push notifications
type PushToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"token" gorm:"not null;uniqueIndex"`
	Platform  string    `json:"platform"` // "android", "ios"
	DeviceID  string    `json:"device_id"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notification is a persisted record of a delivered (or attempted) notification
type Notification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	Title     string     `json:"title" gorm:"not null"`
	Body      string     `json:"body" gorm:"not null"`
	Type      string     `json:"type" gorm:"default:system"` // "quote", "payment", "request_update", "chat", "system"
	Data      string     `json:"data" gorm:"type:text"`      // JSON payload
	Read      bool       `json:"read" gorm:"default:false"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for PushToken
func (PushToken) TableName() string {
	return "push_tokens"
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
