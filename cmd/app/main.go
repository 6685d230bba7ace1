package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/usa-trezo/en-us/cmd/processor"
	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/config"
	"github.com/usa-trezo/en-us/internal/app/models"
	"github.com/usa-trezo/en-us/internal/app/services/coingecko"
	"github.com/usa-trezo/en-us/internal/app/services/poller"
	"github.com/usa-trezo/en-us/internal/app/services/render"
	"github.com/usa-trezo/en-us/internal/app/services/state"
	"github.com/usa-trezo/en-us/internal/app/services/storage"
	"github.com/usa-trezo/en-us/internal/app/web"

	ws "github.com/usa-trezo/en-us/internal/app/services/websocket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger := logger.GetLogger()
			logger.WithField("panic", r).Fatal("Application panicked")
		}
	}()

	logger := logger.GetLogger()

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Warn("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	// Health and metrics endpoints
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	go func() {
		logger.Info("Starting metrics server on " + cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start metrics server")
		}
	}()

	format, err := render.NewFormatter(cfg.PriceLocale)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize price formatter")
	}

	var fetcher poller.Fetcher = coingecko.New(cfg.MarketsURL, cfg.FetchTimeout)
	if cfg.CacheEnabled() {
		cache, err := storage.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("Snapshot cache unavailable, fetching upstream directly")
		} else {
			defer cache.Close()
			fetcher = storage.NewCachedFetcher(fetcher, cache, cfg.RedisTTL)
			logger.WithField("ttl", cfg.RedisTTL.String()).Info("Snapshot cache enabled")
		}
	}

	tickerState := state.New(cfg.StrictOrdering)
	snapshots := make(chan models.Snapshot, 4)

	proc := processor.New(tickerState, snapshots)
	go proc.Start(ctx)

	wsServer := ws.NewServer(tickerState, format, cfg.BroadcastInterval, cfg.CORSAllowedOrigins)
	go wsServer.Start(ctx)

	pollerDone := make(chan struct{})
	go func() {
		poller.New(fetcher, snapshots, cfg.RefreshInterval, nil).Start(ctx)
		close(pollerDone)
	}()

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewServer(tickerState, format, wsServer.HandleConnection).Router(cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server on " + cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	<-sig
	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Metrics server shutdown failed")
	}

	select {
	case <-pollerDone:
	case <-shutdownCtx.Done():
		logger.Warn("Gave up waiting for in-flight refreshes")
	}
}
