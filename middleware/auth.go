package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roadside-assist-server/database"
	"roadside-assist-server/models"
	"roadside-assist-server/utils"
)

// AuthMiddleware validates the bearer token and sets user context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token de autorización requerido",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Formato de token inválido",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token inválido o expirado",
			})
			c.Abort()
			return
		}

		// The principal must still exist and be active
		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Usuario no encontrado",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Cuenta de usuario desactivada",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has the given role
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(role) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "No tiene permisos para esta operación",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// WebSocketAuthMiddleware authenticates WebSocket upgrade requests, which
// cannot carry an Authorization header from the browser, via a token query
// parameter (falling back to the header for native clients)
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token de autorización requerido",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token inválido o expirado",
			})
			c.Abort()
			return
		}

		// Same principal check as the HTTP middleware: a token outliving its
		// account must not open a socket
		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Usuario no encontrado",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Cuenta de usuario desactivada",
			})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))

		c.Next()
	}
}
