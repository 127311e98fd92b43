package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleWorker UserRole = "worker"
)

// WorkerType identifies the kind of service a worker provides
type WorkerType string

const (
	WorkerTypeMechanic WorkerType = "mechanic"
	WorkerTypeCrane    WorkerType = "crane"
	WorkerTypeShop     WorkerType = "shop"
)

type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	FullName          string     `json:"full_name" gorm:"size:255;not null"`
	PhoneNumber       string     `json:"phone_number" gorm:"size:20;uniqueIndex;not null"`
	Email             string     `json:"email" gorm:"size:255"`
	PasswordHash      string     `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role              UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'client';check:role IN ('client','worker')"`
	WorkerType        WorkerType `json:"worker_type,omitempty" gorm:"type:varchar(20)"` // Only set for workers
	ProfilePictureURL *string    `json:"profile_picture_url" gorm:"size:255"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleClient
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleClient, RoleWorker:
		return true
	default:
		return false
	}
}

// IsWorker checks if the user is a worker
func (u *User) IsWorker() bool {
	return u.Role == RoleWorker
}

// IsClient checks if the user is a client
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// IsShopWorker checks if the user is a parts-shop worker
func (u *User) IsShopWorker() bool {
	return u.Role == RoleWorker && u.WorkerType == WorkerTypeShop
}
