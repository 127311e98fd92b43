package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus represents the verification status of a payment proof
type PaymentStatus string

const (
	PaymentStatusPendingVerification PaymentStatus = "pending_verification"
	PaymentStatusVerified            PaymentStatus = "verified"
	PaymentStatusRejected            PaymentStatus = "rejected"
)

// PaymentMethod is the channel the client used to pay
type PaymentMethod string

const (
	PaymentMethodTransfer  PaymentMethod = "transfer"
	PaymentMethodBinance   PaymentMethod = "binance"
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodZelle     PaymentMethod = "zelle"
	PaymentMethodPaypal    PaymentMethod = "paypal"
	PaymentMethodPagomovil PaymentMethod = "pagomovil"
)

// IsValidPaymentMethod checks that a method is one of the supported channels
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodTransfer, PaymentMethodBinance, PaymentMethodCash,
		PaymentMethodZelle, PaymentMethodPaypal, PaymentMethodPagomovil:
		return true
	default:
		return false
	}
}

// Payment represents a client's proof-of-payment submission against an accepted quote
type Payment struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	QuoteID       uint           `json:"quote_id" gorm:"not null;index"`
	Quote         Quote          `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
	ClientID      uint           `json:"client_id" gorm:"not null;index"`
	Client        User           `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	WorkerID      uint           `json:"worker_id" gorm:"not null;index"` // Denormalized from the quote at submission time
	Worker        User           `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	PaymentMethod PaymentMethod  `json:"payment_method" gorm:"type:varchar(20);not null"`
	Amount        float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Reference     string         `json:"reference" gorm:"type:varchar(100)"`
	PaymentDate   string         `json:"payment_date" gorm:"type:varchar(20)"`
	PaymentTime   string         `json:"payment_time" gorm:"type:varchar(20)"`
	ScreenshotURL string         `json:"payment_screenshot" gorm:"type:varchar(500)"`
	Status        PaymentStatus  `json:"status" gorm:"type:varchar(30);not null;default:'pending_verification'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// PaymentSubmit represents the request body for submitting a payment proof
type PaymentSubmit struct {
	QuoteID       uint    `json:"quote_id" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=transfer binance cash zelle paypal pagomovil"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Reference     string  `json:"reference"`
	PaymentDate   string  `json:"payment_date"`
	PaymentTime   string  `json:"payment_time"`
	Screenshot    string  `json:"payment_screenshot"`
}

// PaymentVerify represents the request body for verifying a payment
type PaymentVerify struct {
	Status string `json:"status" binding:"required,oneof=verified rejected"`
}
