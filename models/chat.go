package models

import (
	"time"
)

// PurchaseStatus tracks the lifecycle of a purchase message embedded in chat
type PurchaseStatus string

const (
	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusAccepted PurchaseStatus = "accepted"
	PurchaseStatusRejected PurchaseStatus = "rejected"
)

// ChatRoom represents a conversation between a client and a worker tied to a service engagement
type ChatRoom struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ClientID        uint           `json:"client_id" gorm:"not null;index:idx_room_participants"`
	WorkerID        uint           `json:"worker_id" gorm:"not null;index:idx_room_participants"`
	RequestID       *uint          `json:"request_id" gorm:"index"`
	Client          User           `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Worker          User           `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	LastMessageAt   *time.Time     `json:"last_message_at"`
	LastMessageText string         `json:"last_message_text"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ChatMessage represents a single message in a chat room. Purchase messages
// carry a product reference and quantity and start with purchase_status
// "pending" until the client accepts or rejects the purchase.
type ChatMessage struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	ChatRoomID     uint           `json:"chat_room_id" gorm:"not null;index"`
	SenderID       uint           `json:"sender_id" gorm:"not null"`
	SenderType     string         `json:"sender_type" gorm:"not null"` // "client" or "worker"
	Content        string         `json:"content" gorm:"type:text"`
	MessageType    string         `json:"message_type" gorm:"default:text"` // "text", "image", "purchase"
	ProductID      *uint          `json:"product_id" gorm:"index"`
	Quantity       int            `json:"quantity" gorm:"default:0"`
	PurchaseStatus PurchaseStatus `json:"purchase_status,omitempty" gorm:"type:varchar(20)"`
	IsRead         bool           `json:"is_read" gorm:"default:false"`
	ReadAt         *time.Time     `json:"read_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for ChatRoom
func (ChatRoom) TableName() string {
	return "chat_rooms"
}

// TableName specifies the table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// IsPurchase reports whether the message is a product-purchase message
func (m *ChatMessage) IsPurchase() bool {
	return m.MessageType == "purchase" && m.ProductID != nil
}
