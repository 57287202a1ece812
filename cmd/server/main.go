package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	identityapp "github.com/chronotes/backend/internal/application/identity"
	notesapp "github.com/chronotes/backend/internal/application/notes"
	socialapp "github.com/chronotes/backend/internal/application/social"
	trackingapp "github.com/chronotes/backend/internal/application/tracking"
	"github.com/chronotes/backend/internal/infrastructure/auth"
	"github.com/chronotes/backend/internal/infrastructure/config"
	"github.com/chronotes/backend/internal/infrastructure/logger"
	"github.com/chronotes/backend/internal/infrastructure/persistence"
	"github.com/chronotes/backend/internal/infrastructure/storage"
	"github.com/chronotes/backend/internal/infrastructure/telemetry"
	"github.com/chronotes/backend/internal/interfaces/http/handler"
	"github.com/chronotes/backend/internal/interfaces/http/middleware"
	"github.com/chronotes/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// Telemetry providers export traces, metrics and logs over OTLP when
	// enabled; with telemetry off they are inert
	telemetryCtx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(telemetryCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(telemetryCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(telemetryCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := loggerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Rebuild the logger with a tee into the OTLP log pipeline
	if loggerProvider.IsEnabled() {
		bridgeLevel, parseErr := zapcore.ParseLevel(cfg.Log.Level)
		if parseErr != nil {
			bridgeLevel = zapcore.InfoLevel
		}
		log, err = logger.New(logCfg, logger.WithExtraCores(loggerProvider.ZapCore(bridgeLevel)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}

	log.Info("Starting Chronotes backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Token blacklist backed by Redis when reachable, in-memory otherwise
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Object storage for note images and avatars
	var objectStorage notesapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage connected", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage disabled, image uploads will fail until configured")
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	timeEntryRepo := persistence.NewGormTimeEntryRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	collaboratorRepo := persistence.NewGormCollaboratorRepository(db.DB)
	noteHistoryRepo := persistence.NewGormNoteHistoryRepository(db.DB)
	noteImageRepo := persistence.NewGormNoteImageRepository(db.DB)
	friendshipRepo := persistence.NewGormFriendshipRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)

	// Chat push over SSE; created before the chat service so it can publish
	chatStream := handler.NewChatStreamHandler(
		handler.WithStreamLogger(log),
		handler.WithStreamHeartbeat(cfg.Chat.HeartbeatInterval),
		handler.WithStreamBufferSize(cfg.Chat.ClientBuffer),
	)
	defer chatStream.Stop()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	profileService := identityapp.NewProfileService(userRepo, objectStorage, cfg.Storage.PresignExpiration, log)
	categoryService := trackingapp.NewCategoryService(categoryRepo)
	timeEntryService := trackingapp.NewTimeEntryService(timeEntryRepo, categoryRepo)
	reportService := trackingapp.NewReportService(timeEntryRepo)
	noteService := notesapp.NewNoteService(noteRepo, noteHistoryRepo)
	collaboratorService := notesapp.NewCollaboratorService(noteRepo, collaboratorRepo, userRepo)
	imageService := notesapp.NewImageService(noteRepo, noteImageRepo, objectStorage, cfg.Storage.PresignExpiration, log)
	friendshipService := socialapp.NewFriendshipService(friendshipRepo, userRepo, timeEntryRepo)
	chatService := socialapp.NewChatService(messageRepo, friendshipService, chatStream, log)

	if meterProvider.IsEnabled() {
		usageMetrics, err := telemetry.NewUsageMetrics(meterProvider.Meter("chronotes-backend"), log)
		if err != nil {
			log.Fatal("Failed to register usage metrics", zap.Error(err))
		}
		timeEntryService.SetUsageMetrics(usageMetrics)
		noteService.SetUsageMetrics(usageMetrics)
		chatService.SetUsageMetrics(usageMetrics)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	profileHandler := handler.NewProfileHandler(profileService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	timeEntryHandler := handler.NewTimeEntryHandler(timeEntryService, reportService)
	noteHandler := handler.NewNoteHandler(noteService, collaboratorService, imageService)
	friendshipHandler := handler.NewFriendshipHandler(friendshipService)
	chatHandler := handler.NewChatHandler(chatService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, order matters
	engine.Use(middleware.RequestID())
	if tracerProvider.IsEnabled() {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	if tracerProvider.IsEnabled() {
		r.Use(middleware.TracingAttributeInjector())
	}

	// Auth routes (register/login/refresh are public via skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)

	// Profile routes
	profileRoutes := router.NewDomainGroup("profile", "/profile")
	profileRoutes.GET("", profileHandler.Get)
	profileRoutes.PATCH("", profileHandler.Update)
	profileRoutes.PUT("/password", profileHandler.ChangePassword)
	profileRoutes.POST("/image", profileHandler.UploadAvatar)

	// Time tracking routes
	trackingRoutes := router.NewDomainGroup("tracking", "")
	trackingRoutes.POST("/categories", categoryHandler.Create)
	trackingRoutes.GET("/categories", categoryHandler.List)
	trackingRoutes.POST("/categories/exists", categoryHandler.Exists)
	trackingRoutes.GET("/categories/:id", categoryHandler.GetByID)
	trackingRoutes.PATCH("/categories/:id", categoryHandler.Update)
	trackingRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	trackingRoutes.POST("/time-entries", timeEntryHandler.Create)
	trackingRoutes.GET("/time-entries", timeEntryHandler.List)
	trackingRoutes.POST("/time-entries/filter", timeEntryHandler.Filter)
	trackingRoutes.GET("/time-entries/:id", timeEntryHandler.GetByID)
	trackingRoutes.PATCH("/time-entries/:id", timeEntryHandler.Update)
	trackingRoutes.DELETE("/time-entries/:id", timeEntryHandler.Delete)
	trackingRoutes.GET("/reports/stats", timeEntryHandler.Report)

	// Note routes
	noteRoutes := router.NewDomainGroup("notes", "/notes")
	noteRoutes.POST("", noteHandler.Create)
	noteRoutes.GET("", noteHandler.List)
	noteRoutes.GET("/:id", noteHandler.GetByID)
	noteRoutes.PATCH("/:id", noteHandler.Update)
	noteRoutes.DELETE("/:id", noteHandler.Delete)
	noteRoutes.POST("/:id/pin", noteHandler.Pin)
	noteRoutes.POST("/:id/unpin", noteHandler.Unpin)
	noteRoutes.GET("/:id/history", noteHandler.History)
	noteRoutes.GET("/:id/collaborators", noteHandler.ListCollaborators)
	noteRoutes.POST("/:id/collaborators", noteHandler.AddCollaborator)
	noteRoutes.DELETE("/:id/collaborators/:user_id", noteHandler.RemoveCollaborator)
	noteRoutes.POST("/:id/images", noteHandler.UploadImage)
	noteRoutes.DELETE("/:id/images/:image_id", noteHandler.DeleteImage)

	// Friendship routes
	friendRoutes := router.NewDomainGroup("friends", "/friends")
	friendRoutes.GET("", friendshipHandler.ListFriends)
	friendRoutes.GET("/requests", friendshipHandler.ListRequests)
	friendRoutes.POST("/requests", friendshipHandler.SendRequest)
	friendRoutes.PATCH("/requests/:id", friendshipHandler.Respond)
	friendRoutes.GET("/:id/activities", friendshipHandler.Activities)

	// Chat routes
	messageRoutes := router.NewDomainGroup("messages", "/messages")
	messageRoutes.GET("/stream", chatStream.Stream)
	messageRoutes.POST("", chatHandler.Send)
	messageRoutes.GET("/:friend_id", chatHandler.Conversation)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(authRoutes).
		Register(profileRoutes).
		Register(trackingRoutes).
		Register(noteRoutes).
		Register(friendRoutes).
		Register(messageRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
