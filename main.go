package main

import (
	"roopshree-backend/cache"
	"roopshree-backend/common/logger"
	"roopshree-backend/config"
	"roopshree-backend/controllers"
	"roopshree-backend/database"
	"roopshree-backend/kafka"
	"roopshree-backend/models"
	"roopshree-backend/repository"
	"roopshree-backend/routes"
	"roopshree-backend/sender"
	"roopshree-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()
	log := logger.Log

	db, err := database.ConnectPostgres(cfg.DSN(), log,
		&models.User{}, &models.Address{},
		&models.Product{}, &models.Stock{}, &models.StockHistory{}, &models.Wishlist{},
		&models.Banner{}, &models.Offer{},
		&models.Order{}, &models.OrderOtp{},
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	emailSender, err := sender.NewSMTPSender(
		cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, cfg.SMTPSenderName,
	)
	if err != nil {
		log.Fatal("Failed to configure email sender", zap.Error(err))
	}

	var producer kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		p := kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic, log)
		defer p.Close()
		producer = p
	} else {
		log.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	otpRepo := repository.NewOtpRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	cartRepo := cache.NewCartRepository(redisClient, cfg.CartTTL)

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret)
	signupCodes := services.NewSignupCache(cfg.SignupCodeTTL)
	authService := services.NewAuthService(userRepo, tokens, signupCodes, emailSender, log)
	stockService := services.NewStockService(db, stockRepo)
	orderService := services.NewOrderService(db, orderRepo, productRepo, userRepo, stockService, producer, log)
	otpService := services.NewOtpService(db, otpRepo, orderRepo, userRepo, emailSender, cfg.OTPTTL, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	routes.Register(r, tokens, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Product:  controllers.NewProductController(productRepo, catalogRepo),
		Cart:     controllers.NewCartController(cartRepo),
		Account:  controllers.NewAccountController(catalogRepo, userRepo),
		Order:    controllers.NewOrderController(orderService),
		Stock:    controllers.NewStockController(stockService),
		Delivery: controllers.NewDeliveryController(orderService, otpService),
	})

	log.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
