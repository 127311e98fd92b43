package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"roadside-assist-server/models"
)

// QuoteService owns creation, acceptance and rejection of price quotes
type QuoteService struct {
	db *gorm.DB
}

// NewQuoteService creates a new quote service
func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{db: db}
}

// Create inserts a quote and all of its line items in one transaction. If any
// line-item insert fails nothing persists, the quote row included.
func (s *QuoteService) Create(workerID uint, req *models.QuoteCreate) (*models.Quote, error) {
	var request models.ServiceRequest
	if err := s.db.First(&request, req.RequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if request.WorkerID != workerID {
		return nil, ErrForbidden
	}

	quote := models.Quote{
		RequestID:     req.RequestID,
		WorkerID:      workerID,
		ClientID:      request.ClientID,
		TransportFee:  req.TransportFee,
		TotalPrice:    req.TotalPrice,
		EstimatedTime: req.EstimatedTime,
		Notes:         req.Notes,
		Status:        models.QuoteStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		for _, item := range req.Services {
			if item.Description == "" || item.Price < 0 {
				return ErrInvalidInput
			}
			lineItem := models.QuoteLineItem{
				QuoteID:     quote.ID,
				Description: item.Description,
				Price:       item.Price,
			}
			if err := tx.Create(&lineItem).Error; err != nil {
				return err
			}
			quote.Services = append(quote.Services, lineItem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("💰 Quote %d created for request %d (worker=%d total=%.2f, %d services)",
		quote.ID, quote.RequestID, workerID, quote.TotalPrice, len(quote.Services))

	return &quote, nil
}

// Accept marks a quote accepted on behalf of its client. In the same
// transaction the parent request moves to accepted and every sibling pending
// quote on the request is rejected, so at most one quote per request is ever
// accepted.
func (s *QuoteService) Accept(quoteID uint, clientID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.First(&quote, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if quote.ClientID != clientID {
			return ErrForbidden
		}

		if quote.Status != models.QuoteStatusPending {
			return ErrInvalidState
		}

		// The parent request must still be open; a cancelled, rejected or
		// completed request cannot gain an accepted quote
		var request models.ServiceRequest
		if err := tx.First(&request, quote.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.Status != models.RequestStatusPending && request.Status != models.RequestStatusAccepted {
			return ErrInvalidState
		}

		// Conditional update guards against a concurrent accept/reject that
		// slipped in after the read above
		result := tx.Model(&models.Quote{}).
			Where("id = ? AND status = ?", quoteID, models.QuoteStatusPending).
			Update("status", models.QuoteStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConflict
		}

		// Sibling pending quotes on the same request lose
		if err := tx.Model(&models.Quote{}).
			Where("request_id = ? AND id != ? AND status = ?", quote.RequestID, quoteID, models.QuoteStatusPending).
			Update("status", models.QuoteStatusRejected).Error; err != nil {
			return err
		}

		// Move the parent request along if it is still pending. Zero rows
		// with a pending read above means the request changed underneath us
		reqResult := tx.Model(&models.ServiceRequest{}).
			Where("id = ? AND status = ?", quote.RequestID, models.RequestStatusPending).
			Update("status", models.RequestStatusAccepted)
		if reqResult.Error != nil {
			return reqResult.Error
		}
		if reqResult.RowsAffected == 0 && request.Status == models.RequestStatusPending {
			return ErrConflict
		}

		log.Printf("💰 Quote %d accepted by client %d (request %d)", quoteID, clientID, quote.RequestID)
		return nil
	})
}

// Reject marks a quote rejected on behalf of its client, storing the optional reason
func (s *QuoteService) Reject(quoteID uint, clientID uint, reason string) error {
	var quote models.Quote
	if err := s.db.First(&quote, quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if quote.ClientID != clientID {
		return ErrForbidden
	}

	if quote.Status != models.QuoteStatusPending {
		return ErrInvalidState
	}

	result := s.db.Model(&models.Quote{}).
		Where("id = ? AND status = ?", quoteID, models.QuoteStatusPending).
		Updates(map[string]interface{}{
			"status":           models.QuoteStatusRejected,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}

	log.Printf("💰 Quote %d rejected by client %d", quoteID, clientID)
	return nil
}

// ListForWorker returns a worker's quotes with line items attached, newest first
func (s *QuoteService) ListForWorker(workerID uint) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := s.db.Where("worker_id = ?", workerID).
		Preload("Services").
		Preload("Client").
		Preload("Request").
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// ListForClient returns a client's quotes with line items attached, newest first
func (s *QuoteService) ListForClient(clientID uint) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := s.db.Where("client_id = ?", clientID).
		Preload("Services").
		Preload("Worker").
		Preload("Request").
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}
