package main

import (
	"context"
	"errors"
	"naskah/config"
	"naskah/internal/document/repository"
	"naskah/internal/document/service"
	"naskah/pkg/logger"
	"naskah/router"
	"naskah/socket"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	repo := repository.NewDocumentRepository()
	docService := service.NewDocumentService(repo, nil)

	// The hub snapshots through the service and the service publishes to
	// the hub, so the hub is attached after both exist.
	hub := socket.NewHub(docService)
	docService.Hub = hub
	go hub.Run()

	if cfg.JWTSecret == "" {
		logger.Sugar.Warn("JWT_SECRET not set, authentication is disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(docService, hub, cfg.JWTSecret, cfg.CORSOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Sugar.Infof("Document repository listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Sugar.Infof("Stopped with %d documents in memory", repo.Count())
}
