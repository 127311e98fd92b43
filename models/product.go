package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a part or accessory sold by a shop worker
type Product struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	WorkerID  uint           `json:"worker_id" gorm:"not null;index"` // Owning shop worker
	Worker    User           `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Brand     string         `json:"brand" gorm:"type:varchar(100)"`
	Quantity  int            `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	Price     float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Category  string         `json:"category" gorm:"type:varchar(100)"`
	ImageURL  string         `json:"image_url" gorm:"type:varchar(500)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// ProductCreate represents the request body for creating a product
type ProductCreate struct {
	Name     string  `json:"name" binding:"required"`
	Brand    string  `json:"brand"`
	Quantity int     `json:"quantity" binding:"gte=0"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Category string  `json:"category"`
	ImageURL string  `json:"image_url"`
}

// ProductUpdate represents the request body for updating a product
type ProductUpdate struct {
	Name     *string  `json:"name"`
	Brand    *string  `json:"brand"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	ImageURL *string  `json:"image_url"`
}
