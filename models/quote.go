package models

import (
	"time"

	"gorm.io/gorm"
)

// QuoteStatus represents the current status of a price quote
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// Quote represents a worker's priced proposal against a service request
type Quote struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	RequestID       uint            `json:"request_id" gorm:"not null;index"`
	Request         ServiceRequest  `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	WorkerID        uint            `json:"worker_id" gorm:"not null;index"`
	Worker          User            `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	ClientID        uint            `json:"client_id" gorm:"not null;index"` // Denormalized from the request
	Client          User            `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	TransportFee    float64         `json:"transport_fee" gorm:"type:decimal(10,2);default:0"`
	TotalPrice      float64         `json:"total_price" gorm:"type:decimal(10,2);not null"`
	EstimatedTime   string          `json:"estimated_time" gorm:"type:varchar(100)"`
	Notes           string          `json:"notes" gorm:"type:text"`
	Status          QuoteStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	RejectionReason string          `json:"rejection_reason,omitempty" gorm:"type:text"`
	Services        []QuoteLineItem `json:"services,omitempty" gorm:"foreignKey:QuoteID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// QuoteLineItem is a single priced service line belonging to a quote
type QuoteLineItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	QuoteID     uint      `json:"quote_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:varchar(255);not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// TableName specifies the table name for QuoteLineItem
func (QuoteLineItem) TableName() string {
	return "quote_services"
}

// QuoteCreate represents the request body for creating a quote
type QuoteCreate struct {
	RequestID     uint                  `json:"request_id" binding:"required"`
	Services      []QuoteLineItemCreate `json:"services" binding:"required,min=1,dive"`
	TransportFee  float64               `json:"transport_fee"`
	TotalPrice    float64               `json:"total_price" binding:"required,gt=0"`
	EstimatedTime string                `json:"estimated_time"`
	Notes         string                `json:"notes"`
}

// QuoteLineItemCreate represents one line item in a quote creation request
type QuoteLineItemCreate struct {
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
}
