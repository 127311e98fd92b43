package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"roadside-assist-server/database"
	"roadside-assist-server/models"
)

// RegisterNotificationRoutes registers push-token and notification routes
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.POST("/push-token", registerPushToken)
	router.GET("", getNotifications)
}

// registerPushToken stores or refreshes a user's Expo push token
func registerPushToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var request struct {
		PushToken string `json:"push_token" binding:"required"`
		Platform  string `json:"platform" binding:"required"`
		DeviceID  string `json:"device_id"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	var existingToken models.PushToken
	err := database.DB.Where("token = ?", request.PushToken).First(&existingToken).Error

	if err == gorm.ErrRecordNotFound {
		token := models.PushToken{
			UserID:   userID,
			Token:    request.PushToken,
			Platform: request.Platform,
			DeviceID: request.DeviceID,
			Active:   true,
		}
		if err := database.DB.Create(&token).Error; err != nil {
			respondError(c, err, "")
			return
		}
	} else if err != nil {
		respondError(c, err, "")
		return
	} else {
		existingToken.UserID = userID
		existingToken.Platform = request.Platform
		existingToken.DeviceID = request.DeviceID
		existingToken.Active = true
		if err := database.DB.Save(&existingToken).Error; err != nil {
			respondError(c, err, "")
			return
		}
	}

	respondOK(c, http.StatusOK, "Token registrado exitosamente", nil)
}

// getNotifications lists the caller's notifications, newest first
func getNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		respondError(c, err, "")
		return
	}

	respondOK(c, http.StatusOK, "", notifications)
}

// SendPushNotification records a notification and best-effort delivers it to
// every active device token of the user. Failures are logged only; delivery
// is not part of any business operation's correctness contract.
func SendPushNotification(userID uint, title, body, notificationType string, data map[string]interface{}) {
	dataJSON, _ := json.Marshal(data)
	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   notificationType,
		Data:   string(dataJSON),
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("⚠️ Failed to record notification for user %d: %v", userID, err)
	}

	var tokens []models.PushToken
	if err := database.DB.Where("user_id = ? AND active = ?", userID, true).Find(&tokens).Error; err != nil {
		log.Printf("⚠️ Failed to load push tokens for user %d: %v", userID, err)
		return
	}

	for _, token := range tokens {
		if err := sendExpoPushNotification(token.Token, title, body, data); err != nil {
			log.Printf("⚠️ Push delivery failed for user %d: %v", userID, err)
		}
	}
}

// sendExpoPushNotification sends a notification via the Expo Push API
func sendExpoPushNotification(token, title, body string, data map[string]interface{}) error {
	payload := map[string]interface{}{
		"to":       token,
		"title":    title,
		"body":     body,
		"data":     data,
		"sound":    "default",
		"priority": "high",
	}

	bodyBytes, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", "https://exp.host/--/api/v2/push/send", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("expo push failed: %s - %s", resp.Status, string(respBody))
	}

	return nil
}
