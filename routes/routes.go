package routes

import (
	"roopshree-backend/controllers"
	"roopshree-backend/middleware"
	"roopshree-backend/models"
	"roopshree-backend/services"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Account  *controllers.AccountController
	Order    *controllers.OrderController
	Stock    *controllers.StockController
	Delivery *controllers.DeliveryController
}

// Register wires every route with its role policy. Role checks live here,
// not inside handlers.
func Register(r *gin.Engine, tokens *services.TokenService, c Controllers) {
	// Public storefront
	auth := r.Group("/auth")
	auth.POST("/register", c.Auth.Register)
	auth.POST("/login", c.Auth.Login)
	auth.POST("/verify-email", c.Auth.VerifyEmail)
	auth.POST("/resend-verification", c.Auth.ResendVerification)
	auth.POST("/refresh", c.Auth.Refresh)

	r.GET("/products", c.Product.List)
	r.GET("/products/:id", c.Product.GetByID)
	r.GET("/banners", c.Product.ListBanners)
	r.GET("/offers", c.Product.ListOffers)

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(tokens))

	// Customer surface
	user := authed.Group("/")
	user.Use(middleware.RequireRoles(models.RoleUser, models.RoleAdmin))
	user.GET("/cart", c.Cart.GetCart)
	user.PUT("/cart", c.Cart.SaveCart)
	user.DELETE("/cart", c.Cart.ClearCart)
	user.GET("/wishlist", c.Account.GetWishlist)
	user.POST("/wishlist", c.Account.AddToWishlist)
	user.DELETE("/wishlist/:productId", c.Account.RemoveFromWishlist)
	user.GET("/addresses", c.Account.GetAddresses)
	user.POST("/addresses", c.Account.AddAddress)
	user.DELETE("/addresses/:id", c.Account.DeleteAddress)
	user.POST("/orders", c.Order.Checkout)
	user.GET("/orders", c.Order.GetOrders)
	user.GET("/orders/:id", c.Order.GetOrderByID)
	user.POST("/orders/:id/cancel", c.Order.Cancel)

	// Back office
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/orders", c.Order.GetAllOrders)
	admin.PATCH("/orders/:id/status", c.Order.SetStatus)
	admin.POST("/orders/:id/assign", c.Order.AssignDelivery)
	admin.POST("/products", c.Product.Create)
	admin.PUT("/products/:id", c.Product.Update)
	admin.DELETE("/products/:id", c.Product.Delete)
	admin.POST("/products/:id/stock", c.Stock.Create)
	admin.PATCH("/products/:id/stock", c.Stock.Adjust)
	admin.GET("/products/:id/stock", c.Stock.Get)
	admin.GET("/products/:id/stock/history", c.Stock.History)
	admin.POST("/banners", c.Product.CreateBanner)
	admin.DELETE("/banners/:id", c.Product.DeleteBanner)
	admin.POST("/offers", c.Product.CreateOffer)
	admin.DELETE("/offers/:id", c.Product.DeleteOffer)
	admin.GET("/users", c.Account.ListUsersByRole)

	// Delivery dashboard
	delivery := authed.Group("/delivery")
	delivery.Use(middleware.RequireRoles(models.RoleDeliveryBoy))
	delivery.GET("/orders", c.Delivery.GetAssignedOrders)
	delivery.POST("/orders/:id/otp", c.Delivery.RequestOtp)
	delivery.POST("/orders/:id/verify", c.Delivery.VerifyOtp)
}
