package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roadside-assist-server/database"
	"roadside-assist-server/models"
)

// newTestDB opens an isolated in-memory store with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	return db
}

func createClient(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		FullName:     name,
		PhoneNumber:  "+58" + name,
		PasswordHash: "x",
		Role:         models.RoleClient,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createWorker(t *testing.T, db *gorm.DB, name string, workerType models.WorkerType) *models.User {
	t.Helper()
	user := models.User{
		FullName:     name,
		PhoneNumber:  "+58" + name,
		PasswordHash: "x",
		Role:         models.RoleWorker,
		WorkerType:   workerType,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestRequest(t *testing.T, db *gorm.DB, clientID, workerID uint) *models.ServiceRequest {
	t.Helper()
	svc := NewRequestService(db)
	request, err := svc.Create(&models.ServiceRequestCreate{
		ClientID:    clientID,
		WorkerID:    workerID,
		ServiceType: "mechanic",
		ClientName:  "Test Client",
	})
	require.NoError(t, err)
	return request
}

func createTestQuote(t *testing.T, db *gorm.DB, requestID, workerID uint, total float64) *models.Quote {
	t.Helper()
	svc := NewQuoteService(db)
	quote, err := svc.Create(workerID, &models.QuoteCreate{
		RequestID: requestID,
		Services: []models.QuoteLineItemCreate{
			{Description: "Mano de obra", Price: total},
		},
		TotalPrice: total,
	})
	require.NoError(t, err)
	return quote
}
