package main

import (
	"log"

	"github.com/bodavargasprado/wedding-api/internal/auth"
	"github.com/bodavargasprado/wedding-api/internal/config"
	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/bodavargasprado/wedding-api/internal/database"
	apierrors "github.com/bodavargasprado/wedding-api/internal/errors"
	"github.com/bodavargasprado/wedding-api/internal/handlers"
	"github.com/bodavargasprado/wedding-api/internal/logger"
	"github.com/bodavargasprado/wedding-api/internal/middleware"
	"github.com/bodavargasprado/wedding-api/internal/repository"
	"github.com/bodavargasprado/wedding-api/internal/services"
	"github.com/bodavargasprado/wedding-api/internal/storage"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("Failed to load env files: %v", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	apierrors.SetExposeDetails(cfg.ExposeErrorDetails())

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg, zlog); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(zlog); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	blobs, err := storage.New(cfg)
	if err != nil {
		zlog.Fatal("Failed to initialize storage", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(zlog))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.CORS(cfg.AllowedOrigins, cfg.AllowedOriginSuffixes))

	store, revoker, closeSessions, err := newSessionStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to create session store", zap.Error(err))
	}
	defer closeSessions()
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize services
	authService, err := services.NewAuthService(
		cfg.AdminSecret,
		cfg.AdminSecretHash,
		auth.NewJWTManager(cfg.JWTSecret, cfg.AdminTokenTTL),
		revoker,
		zlog.Named("auth"),
	)
	if err != nil {
		zlog.Fatal("Failed to initialize admin auth", zap.Error(err))
	}
	invitationService := services.NewInvitationService(
		repository.NewInvitationRepository(database.GetDB()),
		services.InvitationOptions{
			CodeAttempts:  cfg.CodeGenerationAttempts,
			RemovalPolicy: cfg.GuestRemovalPolicy,
			GuestCapacity: cfg.GuestCapacity,
		},
		zlog.Named("invitations"),
	)
	galleryService := services.NewGalleryService(
		repository.NewGalleryRepository(database.GetDB()),
		blobs,
		cfg.MaxUploadBytes,
		zlog.Named("gallery"),
	)

	// Disk blobs are served by the API itself
	if cfg.StorageDriver == "disk" && cfg.StoragePublicURL == "" {
		r.Static("/uploads/"+cfg.StorageBucket, cfg.StorageDir)
	}

	handlers.RegisterRoutes(r, handlers.Router{
		Invitations:   handlers.NewInvitationHandler(invitationService),
		Gallery:       handlers.NewGalleryHandler(galleryService),
		Auth:          handlers.NewAuthHandler(authService),
		Authenticator: authService,
		Cleanup:       galleryService,
		WeddingDate:   cfg.WeddingDate,
		GuestCapacity: cfg.GuestCapacity,
	})

	// Start server
	if len(cfg.TLSDomains) > 0 {
		zlog.Info("Server starting with TLS", zap.Strings("domains", cfg.TLSDomains))
		if err := autotls.Run(r, cfg.TLSDomains...); err != nil {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
		return
	}

	zlog.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
