package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roadside-assist-server/config"
	"roadside-assist-server/database"
	"roadside-assist-server/models"
	"roadside-assist-server/services"
	"roadside-assist-server/utils"
)

// RegisterPaymentRoutes registers payment routes
func RegisterPaymentRoutes(router *gin.RouterGroup) {
	router.POST("/submit", submitPayment)
	router.POST("/screenshot", uploadPaymentScreenshot)
	router.PUT("/:id/verify", verifyPayment)
	router.GET("/worker", getWorkerPayments)
	router.GET("/client", getClientPayments)
}

func newPaymentService() *services.PaymentService {
	return services.NewPaymentService(database.DB, config.AppConfig.Payment.AmountTolerance)
}

// submitPayment records a client's proof of payment against an accepted quote
func submitPayment(c *gin.Context) {
	clientID := c.GetUint("user_id")

	var req models.PaymentSubmit
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := newPaymentService().Submit(clientID, &req)
	if err != nil {
		respondError(c, err, "Cotización no encontrada")
		return
	}

	go SendPushNotification(payment.WorkerID,
		"Nuevo pago recibido",
		fmt.Sprintf("Recibiste un comprobante de pago de %.2f por verificar", payment.Amount),
		"payment",
		map[string]interface{}{"payment_id": payment.ID, "quote_id": payment.QuoteID})

	respondOK(c, http.StatusCreated, "Pago registrado exitosamente", payment)
}

// uploadPaymentScreenshot stores a payment screenshot and returns its URL
func uploadPaymentScreenshot(c *gin.Context) {
	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Captura de pantalla requerida"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "")
		return
	}
	defer file.Close()

	url, err := utils.UploadImage(file, "payment_screenshots")
	if err != nil {
		respondError(c, err, "")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"url": url})
}

// verifyPayment lets the payment's worker settle it as verified or rejected
func verifyPayment(c *gin.Context) {
	workerID := c.GetUint("user_id")

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de pago inválido"})
		return
	}

	var body models.PaymentVerify
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	if err := newPaymentService().Verify(uint(paymentID), workerID, models.PaymentStatus(body.Status)); err != nil {
		respondError(c, err, "Pago no encontrado")
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, paymentID).Error; err == nil {
		go SendPushNotification(payment.ClientID,
			"Pago actualizado",
			fmt.Sprintf("Tu pago #%d fue %s", payment.ID, translatePaymentStatus(payment.Status)),
			"payment",
			map[string]interface{}{"payment_id": payment.ID, "status": string(payment.Status)})
	}

	respondOK(c, http.StatusOK, "Pago actualizado exitosamente", nil)
}

func translatePaymentStatus(s models.PaymentStatus) string {
	switch s {
	case models.PaymentStatusVerified:
		return "verificado"
	case models.PaymentStatusRejected:
		return "rechazado"
	default:
		return "actualizado"
	}
}

// getWorkerPayments lists the caller's payments as a worker, filterable by status
func getWorkerPayments(c *gin.Context) {
	workerID := c.GetUint("user_id")
	statusFilter := models.PaymentStatus(c.Query("status"))

	payments, err := newPaymentService().ListForWorker(workerID, statusFilter)
	if err != nil {
		respondError(c, err, "Pagos no encontrados")
		return
	}

	respondOK(c, http.StatusOK, "", payments)
}

// getClientPayments lists the caller's payments as a client
func getClientPayments(c *gin.Context) {
	clientID := c.GetUint("user_id")

	payments, err := newPaymentService().ListForClient(clientID)
	if err != nil {
		respondError(c, err, "Pagos no encontrados")
		return
	}

	respondOK(c, http.StatusOK, "", payments)
}
