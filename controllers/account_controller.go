package controllers

import (
	"errors"
	"net/http"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/middleware"
	"roopshree-backend/models"
	"roopshree-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountController serves the per-user surfaces: wishlist and addresses,
// plus the admin user listing.
type AccountController struct {
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
}

func NewAccountController(catalogRepo repository.CatalogRepository, userRepo repository.UserRepository) *AccountController {
	return &AccountController{
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
	}
}

// GetWishlist lists the caller's saved products
func (ac *AccountController) GetWishlist(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := ac.catalogRepo.ListWishlist(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": entries})
}

type wishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// AddToWishlist saves a product for the caller
func (ac *AccountController) AddToWishlist(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	entry := &models.Wishlist{
		ID:        uuid.New(),
		UserID:    identity.UserID,
		ProductID: req.ProductID,
	}
	if err := ac.catalogRepo.AddWishlist(c.Request.Context(), entry); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// RemoveFromWishlist drops a saved product
func (ac *AccountController) RemoveFromWishlist(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	if err := ac.catalogRepo.RemoveWishlist(c.Request.Context(), identity.UserID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not in wishlist"})
			return
		}
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}

// GetAddresses lists the caller's delivery addresses
func (ac *AccountController) GetAddresses(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	addresses, err := ac.catalogRepo.ListAddresses(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

type addressRequest struct {
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Pincode   string `json:"pincode" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// AddAddress creates a delivery address for the caller
func (ac *AccountController) AddAddress(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	address := &models.Address{
		ID:        uuid.New(),
		UserID:    identity.UserID,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	}
	if err := ac.catalogRepo.CreateAddress(c.Request.Context(), address); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// DeleteAddress removes one of the caller's addresses
func (ac *AccountController) DeleteAddress(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID format"})
		return
	}

	if err := ac.catalogRepo.DeleteAddress(c.Request.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// ListUsersByRole returns users filtered by role (admin only); used by the
// back office to pick delivery agents.
func (ac *AccountController) ListUsersByRole(c *gin.Context) {
	role := models.Role(c.DefaultQuery("role", string(models.RoleUser)))
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	users, err := ac.userRepo.ListByRole(c.Request.Context(), role)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
