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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"warehouse/internal/cache"
	"warehouse/internal/config"
	"warehouse/internal/handlers"
	"warehouse/internal/logging"
	authmw "warehouse/internal/middleware/auth"
	loggingmw "warehouse/internal/middleware/logging"
	"warehouse/internal/mykafka"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	httpserver "warehouse/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var listCache cache.Cache
	var redisCache *cache.Redis
	if configuration.REDIS_URL != "" {
		redisCache, err = cache.NewRedis(context.Background(), configuration.REDIS_URL)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		listCache = redisCache
	} else {
		logger.Warn("REDIS_URL not set, using in-process list cache")
		listCache = cache.NewMemory()
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	productRepo := &repository.ProductRepo{DB: db}
	userRepo := &repository.UserRepo{DB: db}

	authService := &service.AuthService{
		Users:     userRepo,
		JWTSecret: []byte(configuration.JWT_SECRET),
		Issuer:    configuration.JWT_ISSUER,
		Audience:  configuration.JWT_AUDIENCE,
	}
	listService := &service.ProductList{Repo: productRepo, Cache: listCache}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:             db,
		ProductHandler: &handlers.ProductHandler{Repo: productRepo, List: listService, Producer: producer},
		AuthHandler:    &handlers.AuthHandler{Auth: authService, Producer: producer},
		Guard:          &authmw.Guard{Auth: authService},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
