package services

import (
	"errors"
	"log"
	"math"

	"gorm.io/gorm"

	"roadside-assist-server/models"
)

// PaymentService owns submission and verification of payment proofs
type PaymentService struct {
	db *gorm.DB
	// amountTolerance bounds the accepted difference between the submitted
	// amount and the quote total
	amountTolerance float64
}

// NewPaymentService creates a new payment reconciliation service
func NewPaymentService(db *gorm.DB, amountTolerance float64) *PaymentService {
	return &PaymentService{db: db, amountTolerance: amountTolerance}
}

// Submit records a client's proof of payment against an accepted quote. The
// worker id is denormalized from the quote at submission time.
func (s *PaymentService) Submit(clientID uint, req *models.PaymentSubmit) (*models.Payment, error) {
	var quote models.Quote
	if err := s.db.First(&quote, req.QuoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if quote.ClientID != clientID {
		return nil, ErrForbidden
	}

	if quote.Status != models.QuoteStatusAccepted {
		return nil, ErrInvalidState
	}

	if math.Abs(req.Amount-quote.TotalPrice) > s.amountTolerance {
		return nil, ErrInvalidAmount
	}

	payment := models.Payment{
		QuoteID:       req.QuoteID,
		ClientID:      clientID,
		WorkerID:      quote.WorkerID,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Amount:        req.Amount,
		Reference:     req.Reference,
		PaymentDate:   req.PaymentDate,
		PaymentTime:   req.PaymentTime,
		ScreenshotURL: req.Screenshot,
		Status:        models.PaymentStatusPendingVerification,
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	log.Printf("💳 Payment %d submitted for quote %d (client=%d amount=%.2f method=%s)",
		payment.ID, payment.QuoteID, clientID, payment.Amount, payment.PaymentMethod)

	return &payment, nil
}

// Verify lets the payment's worker settle a pending payment as verified or
// rejected. The ownership check is folded into the lookup so a wrong worker
// sees NotFound rather than learning the payment exists. Terminal payments
// are immutable.
func (s *PaymentService) Verify(paymentID uint, workerID uint, decision models.PaymentStatus) error {
	if decision != models.PaymentStatusVerified && decision != models.PaymentStatusRejected {
		return ErrInvalidInput
	}

	var payment models.Payment
	if err := s.db.Where("id = ? AND worker_id = ?", paymentID, workerID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if payment.Status != models.PaymentStatusPendingVerification {
		return ErrInvalidState
	}

	result := s.db.Model(&models.Payment{}).
		Where("id = ? AND worker_id = ? AND status = ?",
			paymentID, workerID, models.PaymentStatusPendingVerification).
		Update("status", decision)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}

	log.Printf("💳 Payment %d settled as %s by worker %d", paymentID, decision, workerID)
	return nil
}

// ListForWorker returns a worker's payments, optionally filtered by status, newest first
func (s *PaymentService) ListForWorker(workerID uint, statusFilter models.PaymentStatus) ([]models.Payment, error) {
	query := s.db.Where("worker_id = ?", workerID)
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var payments []models.Payment
	if err := query.
		Preload("Client").
		Preload("Quote").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListForClient returns a client's payments, newest first
func (s *PaymentService) ListForClient(clientID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("client_id = ?", clientID).
		Preload("Worker").
		Preload("Quote").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
