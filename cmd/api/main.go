package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fikhidmatik/internal/config"
	"fikhidmatik/internal/database"
	"fikhidmatik/internal/domain"
	"fikhidmatik/internal/middleware"
	"fikhidmatik/internal/modules/artisan"
	"fikhidmatik/internal/modules/auth"
	"fikhidmatik/internal/modules/booking"
	"fikhidmatik/internal/modules/catalog"
	"fikhidmatik/internal/modules/chat"
	"fikhidmatik/internal/modules/review"
	jwtsvc "fikhidmatik/internal/pkg/jwt"
	"fikhidmatik/internal/pkg/logger"
	"fikhidmatik/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.IsProduction())
	defer logger.Sync()
	log := logger.L()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	artisanRepo := repository.NewArtisanRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	chatRepo := repository.NewChatRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, refreshTokenRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	artisanService := artisan.NewService(artisanRepo, userRepo)
	artisanHandler := artisan.NewHandler(artisanService)

	bookingService := booking.NewService(bookingRepo, artisanRepo)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, artisanRepo)
	reviewHandler := review.NewHandler(reviewService)

	hub := chat.NewHub()
	defer hub.Close()
	chatService := chat.NewService(chatRepo, artisanRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub, j)

	catalogHandler := catalog.NewHandler()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Credential endpoints get per-IP throttling on top of the
		// public group.
		authPublic := api.Group("/")
		authPublic.Use(middleware.RateLimit(cfg.AuthRatePerMinute, cfg.AuthRateBurst))

		protected := api.Group("/")
		protected.Use(middleware.Auth(j))

		artisanOnly := protected.Group("/")
		artisanOnly.Use(middleware.RequireRole(domain.RoleArtisan))

		authHandler.RegisterRoutes(authPublic, protected)
		artisanHandler.RegisterRoutes(api, artisanOnly)
		bookingHandler.RegisterRoutes(protected)
		reviewHandler.RegisterRoutes(api, protected)
		chatHandler.RegisterRoutes(api, protected)
		catalogHandler.RegisterRoutes(api)
	}

	log.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
