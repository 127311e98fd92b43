package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roadside-assist-server/database"
	"roadside-assist-server/middleware"
	"roadside-assist-server/models"
	"roadside-assist-server/services"
	"roadside-assist-server/utils"
)

// RegisterProductRoutes registers product inventory routes. Mutations are
// restricted to workers; shop ownership is checked per product.
func RegisterProductRoutes(router *gin.RouterGroup) {
	router.GET("", listProducts)
	router.GET("/:id", getProduct)

	workerOnly := router.Group("")
	workerOnly.Use(middleware.RequireRole(models.RoleWorker))
	{
		workerOnly.POST("", createProduct)
		workerOnly.POST("/image", uploadProductImage)
		workerOnly.PUT("/:id", updateProduct)
		workerOnly.DELETE("/:id", deleteProduct)
	}
}

// listProducts returns a shop worker's inventory. Clients pass worker_id to
// browse a shop; workers see their own stock by default.
func listProducts(c *gin.Context) {
	workerID := c.GetUint("user_id")
	if param := c.Query("worker_id"); param != "" {
		if id, err := strconv.ParseUint(param, 10, 32); err == nil {
			workerID = uint(id)
		}
	}

	svc := services.NewInventoryService(database.DB)
	products, err := svc.ListProducts(workerID)
	if err != nil {
		respondError(c, err, "Productos no encontrados")
		return
	}

	respondOK(c, http.StatusOK, "", products)
}

// getProduct returns a single product
func getProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de producto inválido"})
		return
	}

	svc := services.NewInventoryService(database.DB)
	product, err := svc.GetProduct(uint(productID))
	if err != nil {
		respondError(c, err, "Producto no encontrado")
		return
	}

	respondOK(c, http.StatusOK, "", product)
}

// createProduct adds a product to the calling shop worker's inventory
func createProduct(c *gin.Context) {
	workerID := c.GetUint("user_id")

	var req models.ProductCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	svc := services.NewInventoryService(database.DB)
	product, err := svc.CreateProduct(workerID, &req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	respondOK(c, http.StatusCreated, "Producto creado exitosamente", product)
}

// uploadProductImage stores a product photo and returns its URL
func uploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Imagen requerida"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "")
		return
	}
	defer file.Close()

	url, err := utils.UploadImage(file, "products")
	if err != nil {
		respondError(c, err, "")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"url": url})
}

// updateProduct applies a partial update to a product owned by the caller
func updateProduct(c *gin.Context) {
	workerID := c.GetUint("user_id")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de producto inválido"})
		return
	}

	var req models.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	svc := services.NewInventoryService(database.DB)
	product, err := svc.UpdateProduct(uint(productID), workerID, &req)
	if err != nil {
		respondError(c, err, "Producto no encontrado")
		return
	}

	respondOK(c, http.StatusOK, "Producto actualizado exitosamente", product)
}

// deleteProduct soft-deletes a product owned by the caller
func deleteProduct(c *gin.Context) {
	workerID := c.GetUint("user_id")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de producto inválido"})
		return
	}

	svc := services.NewInventoryService(database.DB)
	if err := svc.DeleteProduct(uint(productID), workerID); err != nil {
		respondError(c, err, "Producto no encontrado")
		return
	}

	respondOK(c, http.StatusOK, "Producto eliminado exitosamente", nil)
}
