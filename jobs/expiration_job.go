package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"roadside-assist-server/models"
)

// ExpirationJob cancels service requests that stayed pending past their TTL
type ExpirationJob struct {
	db         *gorm.DB
	pendingTTL time.Duration
	stopChan   chan bool
}

// NewExpirationJob creates a new expiration job
func NewExpirationJob(db *gorm.DB, pendingTTL time.Duration) *ExpirationJob {
	return &ExpirationJob{
		db:         db,
		pendingTTL: pendingTTL,
		stopChan:   make(chan bool),
	}
}

// Start begins the expiration job
func (j *ExpirationJob) Start() {
	go j.run()
	log.Println("🚀 Request expiration job started")
}

// Stop stops the expiration job
func (j *ExpirationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Request expiration job stopped")
}

func (j *ExpirationJob) run() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.cancelStaleRequests()
		case <-j.stopChan:
			return
		}
	}
}

// cancelStaleRequests expires pending requests in one conditional update; the
// status guard leaves requests already transitioned by a worker untouched
func (j *ExpirationJob) cancelStaleRequests() {
	cutoff := time.Now().Add(-j.pendingTTL)

	result := j.db.Model(&models.ServiceRequest{}).
		Where("status = ? AND created_at <= ?", models.RequestStatusPending, cutoff).
		Update("status", models.RequestStatusCancelled)

	if result.Error != nil {
		log.Printf("❌ Error expiring stale requests: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("⏰ Cancelled %d stale pending requests", result.RowsAffected)
	}
}
