package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"todo-api/internal/config"
	"todo-api/internal/db"
	apihttp "todo-api/internal/http"
	"todo-api/internal/repository"
	"todo-api/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			if cfg.TokenStore == config.TokenStoreRedis {
				cancel()
				logger.Fatal("redis ping failed", zap.Error(err))
			}
			logger.Warn("redis ping failed", zap.Error(err))
			redisClient = nil
		}
		cancel()
	}

	var tokenStore service.TokenStore = repository.NewPgTokenRepository(pool)
	if cfg.TokenStore == config.TokenStoreRedis {
		tokenStore = service.NewRedisTokenStore(redisClient)
	}

	var limiter service.LoginRateLimiter
	if cfg.LoginRateMax > 0 {
		if redisClient != nil {
			limiter = service.NewRedisLoginRateLimiter(redisClient, cfg.LoginRateWindow(), cfg.LoginRateMax)
		} else {
			limiter = service.NewMemoryLoginRateLimiter(cfg.LoginRateWindow(), cfg.LoginRateMax)
		}
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTTTL())
	userSvc := service.NewUserService(
		logger,
		repository.NewPgUserRepository(pool),
		tokenStore,
		jwtSvc,
		service.NewBcryptHasher(cfg.BcryptCost),
		limiter,
	)
	todoSvc := service.NewTodoService(repository.NewPgTodoRepository(pool))

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := apihttp.NewRouter(apihttp.RouterDeps{
		Logger:         logger,
		Auth:           userSvc,
		Users:          apihttp.NewUserHandler(logger, userSvc),
		Todos:          apihttp.NewTodoHandler(logger, todoSvc),
		Health:         apihttp.NewHealthHandler(logger, pool.Ping),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.HTTPPort),
			zap.String("token_store", cfg.TokenStore),
			zap.Bool("login_rate_limit", limiter != nil),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
