package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/common/logger"
	"variant-export-service/common/middleware"
	"variant-export-service/controllers"
	awspkg "variant-export-service/pkg/aws"
	"variant-export-service/repository"
	"variant-export-service/routes"
	"variant-export-service/services"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Bootstrap logger until the configured one is built
	bootstrap, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	zap.ReplaceGlobals(bootstrap)

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	ctx := context.Background()

	// --- 1. Configuration ---
	cfg, err := LoadConfig(ctx)
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	awsCfg, err := awspkg.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		zap.L().Fatal("Failed to load AWS config", zap.Error(err))
	}

	var sink io.Writer
	if cfg.CloudWatchEnabled {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchGroup, serviceName)
		if err != nil {
			zap.L().Warn("CloudWatch Logs disabled", zap.Error(err))
		} else {
			sink = cwLogs
		}
	}
	log, err := logger.New(cfg.Env, serviceName, sink)
	if err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	log.Info("AWS Configuration",
		zap.String("region", cfg.AWS.Region),
		zap.String("endpoint", cfg.AWS.Endpoint),
		zap.String("s3_endpoint", cfg.S3Endpoint),
		zap.String("catalog_table", cfg.CatalogTable),
		zap.String("session_backend", cfg.SessionBackend),
	)

	metrics := awspkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.MetricsEnabled)

	// --- 2. Storage ---
	catalogRepo := repository.NewDynamoCatalogAdapter(dynamodb.NewFromConfig(awsCfg), cfg.CatalogTable)

	var (
		sessionRepo  repository.SessionRepo
		settingsRepo repository.SettingsRepo
		redisClient  *redis.Client
		memSessions  *repository.MemorySessionRepository
	)
	switch cfg.SessionBackend {
	case SessionBackendMemory:
		memSessions = repository.NewMemorySessionRepository(time.Minute)
		sessionRepo = memSessions
		settingsRepo = repository.NewMemorySettingsRepository()
	default:
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to parse REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(redisOpts)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis not reachable at startup", zap.Error(err))
		}
		cancel()
		sessionRepo = repository.NewRedisSessionRepository(redisClient)
		settingsRepo = repository.NewRedisSettingsRepository(redisClient)
	}

	// --- 3. Services ---
	presigner := awspkg.NewObjectPresigner(awspkg.NewS3Client(awsCfg, cfg.S3Endpoint))
	images := services.NewS3ImageResolver(services.ImageResolverConfig{
		Bucket:    cfg.S3Bucket,
		Endpoint:  cfg.S3Endpoint,
		CDNDomain: cfg.CloudFrontDomain,
		Mode:      cfg.ImageURLMode,
		Expiry:    cfg.ImageURLExpiry,
	}, presigner, log)

	var publisher services.EventPublisher
	if cfg.ExportTopicARN != "" {
		publisher = services.NewSNSEventPublisher(awspkg.NewSNSClient(awsCfg), cfg.ExportTopicARN)
	}

	settingsService := services.NewSettingsService(settingsRepo)
	sessionService := services.NewSessionService(sessionRepo)
	generator := services.NewGenerator(services.GeneratorDeps{
		Catalog:   catalogRepo,
		Sessions:  sessionRepo,
		Images:    images,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    log,
	})

	catalogController := controllers.NewCatalogController(services.NewCatalogService(catalogRepo, images))
	exportController := controllers.NewExportController(
		services.NewScanner(catalogRepo, log),
		generator,
		sessionService,
		services.NewCSVExporter(sessionService, metrics, log),
		settingsService,
	)
	settingsController := controllers.NewSettingsController(settingsService)

	// --- 4. HTTP Server & Middleware ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimitPerMinute), cfg.RateLimitPerMinute, 10*time.Minute)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Timeout(controllers.DefaultContextTimeout))
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(limiter))
	r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, serviceName, catalogController, exportController, settingsController)

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Variant Export Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down Variant Export Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	limiter.Stop()
	if memSessions != nil {
		memSessions.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Variant Export Service stopped gracefully")
}
