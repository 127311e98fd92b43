package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceRequestStatus represents the current status of a service request
type ServiceRequestStatus string

const (
	RequestStatusPending   ServiceRequestStatus = "pending"
	RequestStatusAccepted  ServiceRequestStatus = "accepted"
	RequestStatusRejected  ServiceRequestStatus = "rejected"
	RequestStatusCompleted ServiceRequestStatus = "completed"
	RequestStatusCancelled ServiceRequestStatus = "cancelled"
)

// IsValidRequestStatus checks that a status is one of the known values
func IsValidRequestStatus(s ServiceRequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected,
		RequestStatusCompleted, RequestStatusCancelled:
		return true
	default:
		return false
	}
}

// RequestTransitions maps each status to the statuses it may move to.
// pending -> accepted|rejected, accepted -> completed|cancelled; the rest
// are terminal.
var RequestTransitions = map[ServiceRequestStatus][]ServiceRequestStatus{
	RequestStatusPending:  {RequestStatusAccepted, RequestStatusRejected},
	RequestStatusAccepted: {RequestStatusCompleted, RequestStatusCancelled},
}

// CanTransitionRequest reports whether a request may move from one status to another
func CanTransitionRequest(from, to ServiceRequestStatus) bool {
	for _, allowed := range RequestTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ServiceRequest represents a client's ask for a service from a specific worker
type ServiceRequest struct {
	ID                 uint                 `json:"id" gorm:"primaryKey"`
	ClientID           uint                 `json:"client_id" gorm:"not null;index"`
	Client             User                 `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	WorkerID           uint                 `json:"worker_id" gorm:"not null;index"`
	Worker             User                 `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	ServiceType        WorkerType           `json:"service_type" gorm:"type:varchar(20);not null"` // mechanic, crane, shop
	Description        string               `json:"description" gorm:"type:text"`
	ProblemDescription string               `json:"problem_description" gorm:"type:text"`
	VehicleInfo        string               `json:"vehicle_info" gorm:"type:varchar(255)"`
	UrgencyLevel       string               `json:"urgency_level" gorm:"type:varchar(20)"` // low, medium, high
	ClientName         string               `json:"client_name" gorm:"type:varchar(255)"`
	ClientPhone        string               `json:"client_phone" gorm:"type:varchar(20)"`
	ClientLocation     string               `json:"client_location" gorm:"type:text"`
	LocationLat        *float64             `json:"location_lat" gorm:"type:decimal(10,8)"`
	LocationLng        *float64             `json:"location_lng" gorm:"type:decimal(11,8)"`
	Status             ServiceRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	DeletedAt          gorm.DeletedAt       `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for ServiceRequest
func (ServiceRequest) TableName() string {
	return "requests"
}

// ServiceRequestCreate represents the request body for creating a service request
type ServiceRequestCreate struct {
	ClientID           uint     `json:"client_id" binding:"required"`
	WorkerID           uint     `json:"worker_id" binding:"required"`
	ServiceType        string   `json:"service_type" binding:"required,oneof=mechanic crane shop"`
	Description        string   `json:"description"`
	ProblemDescription string   `json:"problem_description"`
	VehicleInfo        string   `json:"vehicle_info"`
	UrgencyLevel       string   `json:"urgency_level"`
	ClientName         string   `json:"client_name"`
	ClientPhone        string   `json:"client_phone"`
	ClientLocation     string   `json:"client_location"`
	LocationLat        *float64 `json:"location_lat"`
	LocationLng        *float64 `json:"location_lng"`
}
