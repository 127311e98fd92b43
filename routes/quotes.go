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

// RegisterQuoteRoutes registers quote routes
func RegisterQuoteRoutes(router *gin.RouterGroup) {
	router.POST("", createQuote)
	router.PUT("/:id/accept", acceptQuote)
	router.PUT("/:id/reject", rejectQuote)
	router.GET("/worker", getWorkerQuotes)
	router.GET("/client", getClientQuotes)
}

// createQuote lets a worker submit a priced quote against a request assigned to them
func createQuote(c *gin.Context) {
	workerID := c.GetUint("user_id")

	var req models.QuoteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	svc := services.NewQuoteService(database.DB)
	quote, err := svc.Create(workerID, &req)
	if err != nil {
		respondError(c, err, "Solicitud no encontrada")
		return
	}

	go SendPushNotification(quote.ClientID,
		"Nueva cotización",
		fmt.Sprintf("Recibiste una cotización de %.2f para tu solicitud", quote.TotalPrice),
		"quote",
		map[string]interface{}{"quote_id": quote.ID, "request_id": quote.RequestID})

	respondOK(c, http.StatusOK, "Cotización creada exitosamente", quote)
}

// acceptQuote lets the quote's client accept it
func acceptQuote(c *gin.Context) {
	clientID := c.GetUint("user_id")

	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de cotización inválido"})
		return
	}

	svc := services.NewQuoteService(database.DB)
	if err := svc.Accept(uint(quoteID), clientID); err != nil {
		respondError(c, err, "Cotización no encontrada")
		return
	}

	var quote models.Quote
	if err := database.DB.First(&quote, quoteID).Error; err == nil {
		go SendPushNotification(quote.WorkerID,
			"Cotización aceptada",
			fmt.Sprintf("Tu cotización #%d fue aceptada", quote.ID),
			"quote",
			map[string]interface{}{"quote_id": quote.ID, "request_id": quote.RequestID})
	}

	respondOK(c, http.StatusOK, "Cotización aceptada exitosamente", nil)
}

// rejectQuote lets the quote's client reject it with an optional reason
func rejectQuote(c *gin.Context) {
	clientID := c.GetUint("user_id")

	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de cotización inválido"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	// Body is optional for rejections
	_ = c.ShouldBindJSON(&body)

	svc := services.NewQuoteService(database.DB)
	if err := svc.Reject(uint(quoteID), clientID, body.Reason); err != nil {
		respondError(c, err, "Cotización no encontrada")
		return
	}

	var quote models.Quote
	if err := database.DB.First(&quote, quoteID).Error; err == nil {
		go SendPushNotification(quote.WorkerID,
			"Cotización rechazada",
			fmt.Sprintf("Tu cotización #%d fue rechazada", quote.ID),
			"quote",
			map[string]interface{}{"quote_id": quote.ID, "request_id": quote.RequestID})
	}

	respondOK(c, http.StatusOK, "Cotización rechazada", nil)
}

// getWorkerQuotes lists the caller's quotes as a worker, with line items
func getWorkerQuotes(c *gin.Context) {
	workerID := c.GetUint("user_id")

	svc := services.NewQuoteService(database.DB)
	quotes, err := svc.ListForWorker(workerID)
	if err != nil {
		respondError(c, err, "Cotizaciones no encontradas")
		return
	}

	respondOK(c, http.StatusOK, "", quotes)
}

// getClientQuotes lists the caller's quotes as a client, with line items
func getClientQuotes(c *gin.Context) {
	clientID := c.GetUint("user_id")

	svc := services.NewQuoteService(database.DB)
	quotes, err := svc.ListForClient(clientID)
	if err != nil {
		respondError(c, err, "Cotizaciones no encontradas")
		return
	}

	respondOK(c, http.StatusOK, "", quotes)
}
