package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roadside-assist-server/config"
	"roadside-assist-server/database"
	"roadside-assist-server/models"
	"roadside-assist-server/utils"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

func createAuthUser(t *testing.T, db *gorm.DB, phone string) *models.User {
	t.Helper()
	user := models.User{
		FullName:     "Maria Gonzalez",
		PhoneNumber:  phone,
		PasswordHash: "x",
		Role:         models.RoleClient,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func wsRouter() (*gin.Engine, *bool) {
	reached := false
	router := gin.New()
	router.GET("/ws", WebSocketAuthMiddleware(), func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})
	return router, &reached
}

func TestWebSocketAuthAcceptsActiveUser(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db, "18091112233")
	token, err := utils.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	router, reached := wsRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
}

func TestWebSocketAuthRejectsDeactivatedUser(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db, "18094445566")
	token, err := utils.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	// Account deactivated while the token is still valid
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("is_active", false).Error)

	router, reached := wsRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestWebSocketAuthRejectsDeletedUser(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db, "18097778899")
	token, err := utils.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	require.NoError(t, db.Unscoped().Delete(&models.User{}, user.ID).Error)

	router, reached := wsRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestWebSocketAuthRejectsMissingToken(t *testing.T) {
	setupAuthTest(t)

	router, reached := wsRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}
