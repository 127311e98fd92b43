package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"roadside-assist-server/models"
)

// InventoryService owns product stock and the atomic purchase-acceptance flow
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new inventory service
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// ProcessPurchase settles a pending purchase message. Accepting decrements the
// product's stock and flips the message's purchase status in one transaction;
// if the stock is short, both writes roll back and the quantity is untouched.
// Rejecting only flips the status. Terminal messages cannot be re-processed.
func (s *InventoryService) ProcessPurchase(messageID uint, action models.PurchaseStatus) error {
	if action != models.PurchaseStatusAccepted && action != models.PurchaseStatusRejected {
		return ErrInvalidInput
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var message models.ChatMessage
		if err := tx.First(&message, messageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !message.IsPurchase() {
			return ErrInvalidInput
		}

		if message.PurchaseStatus != models.PurchaseStatusPending {
			return ErrInvalidState
		}

		if action == models.PurchaseStatusAccepted {
			var product models.Product
			if err := tx.First(&product, *message.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			// Atomic decrement: the quantity guard in the WHERE clause makes a
			// concurrent purchase of the last units affect zero rows here
			// instead of driving the stock negative
			result := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", product.ID, message.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", message.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			log.Printf("📦 Product %d stock decremented by %d (message %d)", product.ID, message.Quantity, messageID)
		}

		// Flip the message exactly once; the status guard catches a concurrent
		// settle of the same message
		result := tx.Model(&models.ChatMessage{}).
			Where("id = ? AND purchase_status = ?", messageID, models.PurchaseStatusPending).
			Update("purchase_status", action)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConflict
		}

		log.Printf("📦 Purchase message %d settled as %s", messageID, action)
		return nil
	})
}

// CreateProduct adds a product to a shop worker's inventory
func (s *InventoryService) CreateProduct(workerID uint, req *models.ProductCreate) (*models.Product, error) {
	product := models.Product{
		WorkerID: workerID,
		Name:     req.Name,
		Brand:    req.Brand,
		Quantity: req.Quantity,
		Price:    req.Price,
		Category: req.Category,
		ImageURL: req.ImageURL,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product owned by the worker
func (s *InventoryService) UpdateProduct(productID uint, workerID uint, req *models.ProductUpdate) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ? AND worker_id = ?", productID, workerID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, ErrInvalidInput
		}
		updates["quantity"] = *req.Quantity
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		return &product, nil
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct soft-deletes a product owned by the worker
func (s *InventoryService) DeleteProduct(productID uint, workerID uint) error {
	result := s.db.Where("id = ? AND worker_id = ?", productID, workerID).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProducts returns a shop worker's products, newest first
func (s *InventoryService) ListProducts(workerID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product by id
func (s *InventoryService) GetProduct(productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}
