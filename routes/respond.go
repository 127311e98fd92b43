package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"roadside-assist-server/services"
)

// respondOK writes the standard success envelope
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps a service error to its HTTP status and a user-facing
// message. Business-rule failures keep the message passed in; anything
// unexpected becomes a generic 500 with the detail logged server-side only.
func respondError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundMessage})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "No tiene permisos para esta operación"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Operación no válida para el estado actual"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Datos de solicitud inválidos"})
	case errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El monto no coincide con el total de la cotización"})
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Stock insuficiente para esta compra"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "La operación fue interrumpida por otra actualización, intente de nuevo"})
	default:
		log.Printf("❌ Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error interno del servidor"})
	}
}

// respondBindError writes a 400 for malformed request bodies
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Datos de solicitud inválidos",
		"error":   err.Error(),
	})
}
