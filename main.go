package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/api"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/config"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/db"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/logger"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/pages/finder"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/services"
)

var runMode = flag.String("m", "web", "Run mode: 'web' (finder pages only, default), 'all' (pages plus service API)")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.RunMode != "web" && cfg.RunMode != "all" {
		zlog.Fatal("invalid run mode", zap.String("mode", cfg.RunMode))
	}
	gin.SetMode(gin.ReleaseMode)

	// Initialize the send message repository
	var sendMessageService services.ISendMessageService
	var mongoClient *mongo.Client
	switch cfg.RepositorySource {
	case config.RepositorySourceMongo:
		var mongoDb *mongo.Database
		mongoClient, mongoDb, err = db.ConnectDB(context.Background(), cfg.MongoURI, cfg.MongoDbName, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to database", zap.Error(err))
		}
		sendMessageService = services.NewSendMessageService(mongoDb)
	default:
		sendMessageService = services.NewRemoteSendMessageService(cfg, nil, zlog.Named("finder_api"))
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient, zlog); err != nil {
			zlog.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	formatter, err := finder.NewFormatter(cfg.DisplayLocale, cfg.DisplayTimezone)
	if err != nil {
		zlog.Fatal("failed to initialize formatter", zap.Error(err))
	}

	// Closed on shutdown to stop background middleware goroutines
	stop := make(chan struct{})

	webRouter, err := api.SetupRouter(cfg, sendMessageService, formatter, zlog, stop)
	if err != nil {
		zlog.Fatal("failed to set up web router", zap.Error(err))
	}

	var wg sync.WaitGroup

	// Channel to signal shutdown from Service API
	shutdownChan := make(chan struct{}, 1)

	webSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           webRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		zlog.Info("web server listening", zap.String("port", cfg.WebPort), zap.String("repository", cfg.RepositorySource))
		if err := webSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("web server ListenAndServe error", zap.Error(err))
		}
		zlog.Info("web server stopped")
	}()

	var serviceSrv *http.Server
	if cfg.RunMode == "all" {
		serviceSrv = &http.Server{
			Addr:              ":" + cfg.ServiceApiPort,
			Handler:           api.SetupServiceRouter(zlog.Named("service_api"), shutdownChan),
			ReadHeaderTimeout: 10 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			zlog.Info("service API listening", zap.String("port", cfg.ServiceApiPort))
			if err := serviceSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zlog.Fatal("service API ListenAndServe error", zap.Error(err))
			}
			zlog.Info("service API stopped")
		}()
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zlog.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case <-shutdownChan:
		zlog.Info("shutdown requested via service API")
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := webSrv.Shutdown(ctxShutdown); err != nil {
		zlog.Error("web server shutdown error", zap.Error(err))
	}
	if serviceSrv != nil {
		if err := serviceSrv.Shutdown(ctxShutdown); err != nil {
			zlog.Error("service API shutdown error", zap.Error(err))
		}
	}
	close(stop)

	wg.Wait()
	zlog.Info("server gracefully stopped")
}
