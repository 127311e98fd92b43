package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roadside-assist-server/database"
	"roadside-assist-server/models"
	"roadside-assist-server/services"
)

// RegisterRequestRoutes registers service request routes
func RegisterRequestRoutes(router *gin.RouterGroup) {
	router.POST("", createRequest)
	router.GET("/my-requests", getMyRequests)
	router.PUT("/:id/status", updateRequestStatus)
}

// createRequest creates a new service request from a client toward a worker
func createRequest(c *gin.Context) {
	var req models.ServiceRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	svc := services.NewRequestService(database.DB)
	request, err := svc.Create(&req)
	if err != nil {
		respondError(c, err, "Cliente o trabajador no encontrado")
		return
	}

	// Fire-and-forget: delivery failure never fails the creation
	go SendPushNotification(request.WorkerID,
		"Nueva solicitud de servicio",
		fmt.Sprintf("%s necesita un servicio de %s", request.ClientName, request.ServiceType),
		"request_update",
		map[string]interface{}{"request_id": request.ID})

	respondOK(c, http.StatusCreated, "Solicitud creada exitosamente", request)
}

// getMyRequests lists the caller's requests by role, newest first
func getMyRequests(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := models.UserRole(c.GetString("role"))
	statusFilter := models.ServiceRequestStatus(c.Query("status"))

	svc := services.NewRequestService(database.DB)
	requests, err := svc.ListForPrincipal(userID, role, statusFilter)
	if err != nil {
		respondError(c, err, "Solicitudes no encontradas")
		return
	}

	respondOK(c, http.StatusOK, "", requests)
}

// updateRequestStatus transitions a request's status on behalf of its client or worker
func updateRequestStatus(c *gin.Context) {
	userID := c.GetUint("user_id")

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de solicitud inválido"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	svc := services.NewRequestService(database.DB)
	request, err := svc.TransitionStatus(uint(requestID), models.ServiceRequestStatus(body.Status), userID)
	if err != nil {
		respondError(c, err, "Solicitud no encontrada")
		return
	}

	// Notify the counterpart of the status change
	recipient := request.ClientID
	if userID == request.ClientID {
		recipient = request.WorkerID
	}
	go SendPushNotification(recipient,
		"Solicitud actualizada",
		fmt.Sprintf("La solicitud #%d ahora está %s", request.ID, request.Status),
		"request_update",
		map[string]interface{}{"request_id": request.ID, "status": string(request.Status)})

	respondOK(c, http.StatusOK, "Estado actualizado exitosamente", request)
}
