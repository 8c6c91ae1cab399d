package main

// @title           Books Inventory API
// @version         1.0
// @description     CRUD API for managing a books inventory.

// @host      localhost:5555
// @BasePath  /

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"books-api/internal/config"
	"books-api/internal/db"
	"books-api/internal/docs"
	"books-api/internal/handler"
	"books-api/internal/logger"
	"books-api/internal/middleware"
	"books-api/internal/repository"
)

const (
	appVersion      = "0.1.0"
	booksCollection = "books"
	shutdownTimeout = 10 * time.Second
)

func main() {
	startTime := time.Now()

	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("connecting to mongo at %s", cfg.MongoURI)
	client, err := db.ConnectWithRetry(ctx, cfg, log)
	if err != nil {
		log.Fatalf("mongo connection failed: %v", err)
	}

	repo := repository.NewMongoBookRepository(
		client.Database(cfg.MongoDB).Collection(booksCollection),
	)

	e := gin.New()
	e.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		cors.Default(),
	)

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.BasePath = "/"

	healthHandler := handler.NewHealthHandler(client, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	bookHandler := handler.NewBookHandler(repo, log)
	bookHandler.RegisterRoutes(e.Group(""))

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	log.Infof("books API %s listening on %s", appVersion, cfg.Addr())

	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully")
	case err := <-errCh:
		log.Fatalf("http server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to stop server: %v", err)
	}

	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Warnf("failed to close mongo: %v", err)
	}

	log.Info("books API stopped cleanly")
}
