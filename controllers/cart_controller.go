package controllers

import (
	"net/http"

	"roopshree-backend/cache"
	"roopshree-backend/common/apperrors"
	"roopshree-backend/middleware"
	"roopshree-backend/models"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartRepo *cache.CartRepository
}

func NewCartController(cartRepo *cache.CartRepository) *CartController {
	return &CartController{cartRepo: cartRepo}
}

// GetCart returns the caller's cart, empty if none exists
func (cc *CartController) GetCart(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := cc.cartRepo.GetCart(c.Request.Context(), identity.UserID.String())
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	if cart == nil {
		cart = &models.Cart{UserID: identity.UserID.String(), Items: []models.CartItem{}}
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type saveCartRequest struct {
	Items []models.CartItem `json:"items" binding:"required,dive"`
}

// SaveCart replaces the caller's cart contents
func (cc *CartController) SaveCart(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req saveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 || item.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each item needs a product and a positive quantity"})
			return
		}
	}

	cart := &models.Cart{
		UserID: identity.UserID.String(),
		Items:  req.Items,
	}
	if err := cc.cartRepo.SaveCart(c.Request.Context(), cart); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// ClearCart empties the caller's cart
func (cc *CartController) ClearCart(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := cc.cartRepo.DeleteCart(c.Request.Context(), identity.UserID.String()); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
