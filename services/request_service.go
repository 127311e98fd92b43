package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"roadside-assist-server/models"
)

// RequestService owns creation and status transitions of service requests
type RequestService struct {
	db *gorm.DB
}

// NewRequestService creates a new request lifecycle service
func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// Create validates both principals and inserts a new request with status pending
func (s *RequestService) Create(req *models.ServiceRequestCreate) (*models.ServiceRequest, error) {
	// Both principals must exist with the expected roles
	var client models.User
	if err := s.db.Where("id = ? AND role = ?", req.ClientID, models.RoleClient).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var worker models.User
	if err := s.db.Where("id = ? AND role = ?", req.WorkerID, models.RoleWorker).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	serviceRequest := models.ServiceRequest{
		ClientID:           req.ClientID,
		WorkerID:           req.WorkerID,
		ServiceType:        models.WorkerType(req.ServiceType),
		Description:        req.Description,
		ProblemDescription: req.ProblemDescription,
		VehicleInfo:        req.VehicleInfo,
		UrgencyLevel:       req.UrgencyLevel,
		ClientName:         req.ClientName,
		ClientPhone:        req.ClientPhone,
		ClientLocation:     req.ClientLocation,
		LocationLat:        req.LocationLat,
		LocationLng:        req.LocationLng,
		Status:             models.RequestStatusPending,
	}

	if err := s.db.Create(&serviceRequest).Error; err != nil {
		return nil, err
	}

	log.Printf("📋 Service request %d created (client=%d worker=%d type=%s)",
		serviceRequest.ID, serviceRequest.ClientID, serviceRequest.WorkerID, serviceRequest.ServiceType)

	return &serviceRequest, nil
}

// TransitionStatus moves a request to a new status. The transition graph is
// pending -> accepted|rejected, accepted -> completed|cancelled; completed,
// rejected and cancelled are terminal. The write is a single conditional
// update so two interleaved transitions cannot both succeed.
func (s *RequestService) TransitionStatus(requestID uint, newStatus models.ServiceRequestStatus, callerID uint) (*models.ServiceRequest, error) {
	if !models.IsValidRequestStatus(newStatus) {
		return nil, ErrInvalidState
	}

	var request models.ServiceRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if request.ClientID != callerID && request.WorkerID != callerID {
		return nil, ErrForbidden
	}

	if !models.CanTransitionRequest(request.Status, newStatus) {
		return nil, ErrInvalidState
	}

	// Conditional update: the WHERE clause re-checks the status we loaded, so
	// a concurrent transition makes this affect zero rows instead of
	// overwriting it
	result := s.db.Model(&models.ServiceRequest{}).
		Where("id = ? AND status = ?", requestID, request.Status).
		Update("status", newStatus)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConflict
	}

	request.Status = newStatus

	log.Printf("📋 Service request %d transitioned to %s by user %d", requestID, newStatus, callerID)

	return &request, nil
}

// ListForPrincipal returns every request where the principal is the client or
// the worker, optionally filtered by status, newest first
func (s *RequestService) ListForPrincipal(principalID uint, role models.UserRole, statusFilter models.ServiceRequestStatus) ([]models.ServiceRequest, error) {
	query := s.db.Model(&models.ServiceRequest{})
	switch role {
	case models.RoleClient:
		query = query.Where("client_id = ?", principalID).Preload("Worker")
	case models.RoleWorker:
		query = query.Where("worker_id = ?", principalID).Preload("Client")
	default:
		return nil, ErrInvalidInput
	}

	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var requests []models.ServiceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
