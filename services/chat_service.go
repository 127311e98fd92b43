package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"roadside-assist-server/models"
)

// ChatService links clients and workers through chat rooms tied to a service engagement
type ChatService struct {
	db *gorm.DB
}

// NewChatService creates a new chat service
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// GetOrCreateRoom finds the room for a client/worker pair, creating it if
// absent. An optional request id links the room to a service engagement.
func (s *ChatService) GetOrCreateRoom(clientID, workerID uint, requestID *uint) (*models.ChatRoom, error) {
	var client models.User
	if err := s.db.Where("id = ? AND role = ?", clientID, models.RoleClient).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var worker models.User
	if err := s.db.Where("id = ? AND role = ?", workerID, models.RoleWorker).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var room models.ChatRoom
	err := s.db.Where("client_id = ? AND worker_id = ?", clientID, workerID).First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	room = models.ChatRoom{
		ClientID:  clientID,
		WorkerID:  workerID,
		RequestID: requestID,
		IsActive:  true,
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}

	log.Printf("💬 Chat room %d created (client=%d worker=%d)", room.ID, clientID, workerID)
	return &room, nil
}

// ListRooms returns the rooms a user participates in, most recently active first
func (s *ChatService) ListRooms(userID uint) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	if err := s.db.Where("client_id = ? OR worker_id = ?", userID, userID).
		Preload("Client").
		Preload("Worker").
		Order("last_message_at DESC NULLS LAST").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoom returns a room the user participates in
func (s *ChatService) GetRoom(roomID, userID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.Preload("Client").Preload("Worker").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.ClientID != userID && room.WorkerID != userID {
		return nil, ErrForbidden
	}
	return &room, nil
}

// SendMessage persists a message in a room the sender participates in.
// Purchase messages (message_type "purchase") must reference an existing
// product with a positive quantity and start with purchase status pending.
func (s *ChatService) SendMessage(roomID, senderID uint, content, messageType string, productID *uint, quantity int) (*models.ChatMessage, error) {
	room, err := s.GetRoom(roomID, senderID)
	if err != nil {
		return nil, err
	}

	senderType := "client"
	if senderID == room.WorkerID {
		senderType = "worker"
	}

	message := models.ChatMessage{
		ChatRoomID:  roomID,
		SenderID:    senderID,
		SenderType:  senderType,
		Content:     content,
		MessageType: messageType,
	}

	if messageType == "purchase" {
		if productID == nil || quantity <= 0 {
			return nil, ErrInvalidInput
		}
		var product models.Product
		if err := s.db.First(&product, *productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		message.ProductID = productID
		message.Quantity = quantity
		message.PurchaseStatus = models.PurchaseStatusPending
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.ChatRoom{}).
			Where("id = ?", roomID).
			Updates(map[string]interface{}{
				"last_message_at":   now,
				"last_message_text": content,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// ListMessages returns a room's messages, oldest first, for a participant
func (s *ChatService) ListMessages(roomID, userID uint) ([]models.ChatMessage, error) {
	if _, err := s.GetRoom(roomID, userID); err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	if err := s.db.Where("chat_room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessagesRead marks every message in a room not sent by the user as read
func (s *ChatService) MarkMessagesRead(roomID, userID uint) error {
	if _, err := s.GetRoom(roomID, userID); err != nil {
		return err
	}

	now := time.Now()
	return s.db.Model(&models.ChatMessage{}).
		Where("chat_room_id = ? AND sender_id != ? AND is_read = ?", roomID, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
}
