package controllers

import (
	"net/http"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/middleware"
	"roopshree-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeliveryController serves the delivery agent dashboard: assigned orders and
// the handover OTP flow.
type DeliveryController struct {
	orderService *services.OrderService
	otpService   *services.OtpService
}

func NewDeliveryController(orderService *services.OrderService, otpService *services.OtpService) *DeliveryController {
	return &DeliveryController{
		orderService: orderService,
		otpService:   otpService,
	}
}

// GetAssignedOrders lists orders assigned to the calling delivery agent
func (dc *DeliveryController) GetAssignedOrders(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, limit := parsePaginationParams(c)

	result, err := dc.orderService.ListForDeliveryBoy(c.Request.Context(), identity.UserID, page, limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RequestOtp issues a delivery-confirmation code for an assigned order
func (dc *DeliveryController) RequestOtp(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	otp, svcErr := dc.otpService.Request(c.Request.Context(), orderID, identity)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	// The code itself goes to the customer by mail, never back to the agent.
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Confirmation code sent to the customer",
		"expires_at": otp.ExpiresAt,
	})
}

type verifyOtpRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyOtp completes the delivery when the presented code matches
func (dc *DeliveryController) VerifyOtp(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := dc.otpService.Verify(c.Request.Context(), orderID, req.Code, identity)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
