package controllers

import (
	"net/http"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/middleware"
	"roopshree-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockController struct {
	stockService *services.StockService
}

func NewStockController(stockService *services.StockService) *StockController {
	return &StockController{stockService: stockService}
}

type createStockRequest struct {
	InitialQuantity *int `json:"initial_quantity" binding:"required"`
}

// Create binds a stock record to a product (admin only)
func (sc *StockController) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	var req createStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	stock, svcErr := sc.stockService.Create(c.Request.Context(), productID, *req.InitialQuantity, identity.UserID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"stock": stock})
}

type adjustStockRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// Adjust sets the current stock level (admin only)
func (sc *StockController) Adjust(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	stock, svcErr := sc.stockService.Adjust(c.Request.Context(), productID, *req.Quantity, identity.UserID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// Get returns the current stock record for a product (admin only)
func (sc *StockController) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	stock, svcErr := sc.stockService.Get(c.Request.Context(), productID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// History returns the adjustment ledger for a product (admin only)
func (sc *StockController) History(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	rows, svcErr := sc.stockService.History(c.Request.Context(), productID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": rows})
}
