package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadside-assist-server/database"
	"roadside-assist-server/models"
	"roadside-assist-server/utils"
)

// RegisterRequest represents the registration request
type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required,oneof=client worker"`
	WorkerType  string `json:"worker_type" binding:"omitempty,oneof=mechanic crane shop"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/register", register)
	router.POST("/login", login)
}

// register handles user registration for both clients and workers
func register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.Role == string(models.RoleWorker) && req.WorkerType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "El tipo de trabajador es requerido",
		})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("phone_number = ?", req.PhoneNumber).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Ya existe un usuario con este número de teléfono",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, err, "")
		return
	}

	user := models.User{
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         models.UserRole(req.Role),
		WorkerType:   models.WorkerType(req.WorkerType),
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		respondError(c, err, "")
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err, "")
		return
	}

	respondOK(c, http.StatusCreated, "Usuario registrado exitosamente", gin.H{
		"token": token,
		"user":  user,
	})
}

// login handles user authentication
func login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var user models.User
	if err := database.DB.Where("phone_number = ?", req.PhoneNumber).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Credenciales inválidas",
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Credenciales inválidas",
		})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Cuenta de usuario desactivada",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err, "")
		return
	}

	respondOK(c, http.StatusOK, "Inicio de sesión exitoso", gin.H{
		"token": token,
		"user":  user,
	})
}
