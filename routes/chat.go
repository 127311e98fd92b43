package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"roadside-assist-server/database"
	"roadside-assist-server/middleware"
	"roadside-assist-server/models"
	"roadside-assist-server/services"
	ws "roadside-assist-server/websocket"
)

var chatHub *ws.Hub

// RegisterChatRoutes registers chat routes against the shared WebSocket hub
func RegisterChatRoutes(router *gin.RouterGroup, hub *ws.Hub) {
	chatHub = hub

	router.GET("/ws", middleware.WebSocketAuthMiddleware(), handleChatWebSocket)

	router.GET("/rooms", middleware.AuthMiddleware(), getChatRooms)
	router.POST("/rooms/get-or-create", middleware.AuthMiddleware(), getOrCreateChatRoom)
	router.GET("/rooms/:id/messages", middleware.AuthMiddleware(), getChatMessages)
	router.POST("/rooms/:id/messages", middleware.AuthMiddleware(), sendChatMessage)
	router.POST("/rooms/:id/mark-read", middleware.AuthMiddleware(), markRoomRead)
	router.PUT("/messages/:id/purchase", middleware.AuthMiddleware(), settlePurchaseMessage)
}

// handleChatWebSocket upgrades the connection for realtime message delivery
func handleChatWebSocket(c *gin.Context) {
	userID := c.GetUint("user_id")

	// Subscribe the user to every room they participate in
	svc := services.NewChatService(database.DB)
	rooms, err := svc.ListRooms(userID)
	if err == nil {
		for _, room := range rooms {
			chatHub.JoinRoom(room.ID, userID)
		}
	}

	ws.ServeWebSocket(chatHub, c.Writer, c.Request, userID)
}

// getChatRooms lists the caller's chat rooms
func getChatRooms(c *gin.Context) {
	userID := c.GetUint("user_id")

	svc := services.NewChatService(database.DB)
	rooms, err := svc.ListRooms(userID)
	if err != nil {
		respondError(c, err, "Conversaciones no encontradas")
		return
	}

	respondOK(c, http.StatusOK, "", rooms)
}

// getOrCreateChatRoom finds or creates the room between the caller and a counterpart
func getOrCreateChatRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var body struct {
		CounterpartID uint  `json:"counterpart_id" binding:"required"`
		RequestID     *uint `json:"request_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	clientID, workerID := userID, body.CounterpartID
	if role == string(models.RoleWorker) {
		clientID, workerID = body.CounterpartID, userID
	}

	svc := services.NewChatService(database.DB)
	room, err := svc.GetOrCreateRoom(clientID, workerID, body.RequestID)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}

	chatHub.JoinRoom(room.ID, clientID)
	chatHub.JoinRoom(room.ID, workerID)

	respondOK(c, http.StatusOK, "", room)
}

// getChatMessages lists a room's messages for a participant
func getChatMessages(c *gin.Context) {
	userID := c.GetUint("user_id")

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de conversación inválido"})
		return
	}

	svc := services.NewChatService(database.DB)
	messages, err := svc.ListMessages(uint(roomID), userID)
	if err != nil {
		respondError(c, err, "Conversación no encontrada")
		return
	}

	respondOK(c, http.StatusOK, "", messages)
}

// sendChatMessage persists a message and fans it out to the room in realtime.
// Purchase messages reference a product and quantity.
func sendChatMessage(c *gin.Context) {
	userID := c.GetUint("user_id")

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de conversación inválido"})
		return
	}

	var body struct {
		Content     string `json:"content"`
		MessageType string `json:"message_type" binding:"omitempty,oneof=text image purchase"`
		ProductID   *uint  `json:"product_id"`
		Quantity    int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	if body.MessageType == "" {
		body.MessageType = "text"
	}

	svc := services.NewChatService(database.DB)
	message, err := svc.SendMessage(uint(roomID), userID, body.Content, body.MessageType, body.ProductID, body.Quantity)
	if err != nil {
		respondError(c, err, "Conversación no encontrada")
		return
	}

	chatHub.BroadcastToRoom(uint(roomID), &ws.Message{
		Type:       "chat",
		ChatRoomID: uint(roomID),
		SenderID:   userID,
		Content:    message.Content,
		Timestamp:  time.Now(),
		Data:       message,
	})

	// Push for the counterpart in case they are offline
	if room, err := svc.GetRoom(uint(roomID), userID); err == nil {
		recipient := room.ClientID
		if userID == room.ClientID {
			recipient = room.WorkerID
		}
		go SendPushNotification(recipient, "Nuevo mensaje", message.Content, "chat",
			map[string]interface{}{"chat_room_id": room.ID, "message_id": message.ID})
	}

	respondOK(c, http.StatusCreated, "", message)
}

// markRoomRead marks every counterpart message in a room as read
func markRoomRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de conversación inválido"})
		return
	}

	svc := services.NewChatService(database.DB)
	if err := svc.MarkMessagesRead(uint(roomID), userID); err != nil {
		respondError(c, err, "Conversación no encontrada")
		return
	}

	respondOK(c, http.StatusOK, "", nil)
}

// settlePurchaseMessage accepts or rejects a purchase message. Acceptance
// decrements the product's stock atomically with the message flip.
func settlePurchaseMessage(c *gin.Context) {
	userID := c.GetUint("user_id")

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de mensaje inválido"})
		return
	}

	var body struct {
		Action string `json:"action" binding:"required,oneof=accepted rejected"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	// The caller must participate in the message's room
	var message models.ChatMessage
	if err := database.DB.First(&message, messageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Mensaje no encontrado"})
		return
	}
	chatSvc := services.NewChatService(database.DB)
	if _, err := chatSvc.GetRoom(message.ChatRoomID, userID); err != nil {
		respondError(c, err, "Mensaje no encontrado")
		return
	}

	svc := services.NewInventoryService(database.DB)
	if err := svc.ProcessPurchase(uint(messageID), models.PurchaseStatus(body.Action)); err != nil {
		respondError(c, err, "Mensaje no encontrado")
		return
	}

	chatHub.BroadcastToRoom(message.ChatRoomID, &ws.Message{
		Type:       "purchase_update",
		ChatRoomID: message.ChatRoomID,
		Timestamp:  time.Now(),
		Data: gin.H{
			"message_id":      message.ID,
			"purchase_status": body.Action,
		},
	})

	respondOK(c, http.StatusOK, "Compra actualizada exitosamente", nil)
}
