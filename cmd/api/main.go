package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"oncodx/internal/config"
	"oncodx/internal/db"
	apihttp "oncodx/internal/http"
	"oncodx/internal/model"
	"oncodx/internal/repository"
	"oncodx/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	doctorRepo := repository.NewPgDoctorRepository(pool)
	diagnosisRepo := repository.NewPgDiagnosisRepository(pool)

	// El clasificador se carga una sola vez. Si falla, el servicio
	// arranca igual en modo degradado: /predict responde "Model not
	// loaded" mientras el resto de rutas sigue operativo.
	classifier, err := model.Load(model.Type(cfg.ModelType), cfg.ModelPath)
	if err != nil {
		logger.Error("model load failed, serving without classifier", zap.Error(err))
		classifier = nil
	} else {
		defer classifier.Release()
		logger.Info("model loaded",
			zap.String("type", cfg.ModelType),
			zap.String("path", cfg.ModelPath),
		)
	}

	var (
		loginLimiter service.LoginRateLimiter
		tokenStore   service.RefreshTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	doctorSvc := service.NewDoctorService(logger, doctorRepo, loginLimiter)
	engine := service.NewInferenceEngine(classifier, cfg.FallbackConfidence)
	policy := service.NewRiskPolicy(cfg.BenignConfidenceThreshold)
	diagSvc := service.NewDiagnosisService(logger, engine, policy, diagnosisRepo)

	authHandler := apihttp.NewAuthHandler(logger, doctorSvc, jwtSvc)
	predictHandler := apihttp.NewPredictHandler(logger, diagSvc)
	diagnosisHandler := apihttp.NewDiagnosisHandler(logger, diagSvc)
	authMW := apihttp.JWTAuthMiddleware(jwtSvc, doctorRepo)
	router := apihttp.NewRouter(logger, authHandler, predictHandler, diagnosisHandler, authMW)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
