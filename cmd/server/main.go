package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicedeck/internal/cache"
	"voicedeck/internal/config"
	"voicedeck/internal/repository"
	"voicedeck/internal/service"
	"voicedeck/internal/transport/rest"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// Local runs keep their env in a .env file; absence is fine.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("connect mongodb", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("ping mongodb", zap.Error(err))
	}
	logger.Info("connected to mongodb")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Cache backend: in-memory by default, Redis when replicas should share
	// each other's aggregations.
	var analyticsCache cache.Cache
	switch cfg.CacheBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			logger.Fatal("ping redis", zap.Error(err))
		}
		logger.Info("connected to redis")
		analyticsCache = cache.NewRedisCache(rdb)
	default:
		analyticsCache = cache.NewMemoryCache()
	}

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	analysisRepo := repository.NewAnalysisRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	// Initialize services
	metricsSvc := service.NewMetricsService(surveyRepo, responseRepo, memberRepo, analysisRepo, analyticsCache, logger)
	trendSvc := service.NewTrendService(analysisRepo, analyticsCache, logger)
	engagementSvc := service.NewEngagementService(sessionRepo, logger)
	anomalySvc := service.NewAnomalyService(metricsSvc, logger)
	realtimeSvc := service.NewRealtimeService(surveyRepo, responseRepo, logger)

	router := rest.NewRouter(&rest.Container{
		MetricsService:    metricsSvc,
		TrendService:      trendSvc,
		EngagementService: engagementSvc,
		AnomalyService:    anomalySvc,
		RealtimeService:   realtimeSvc,
		Logger:            logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
