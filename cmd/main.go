package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tokenwatch/internal/adapters/config"
	"tokenwatch/internal/adapters/dexscreener"
	"tokenwatch/internal/adapters/errors/noop"
	"tokenwatch/internal/adapters/errors/sentry"
	"tokenwatch/internal/adapters/pricefeed"
	tgadapter "tokenwatch/internal/adapters/telegram"
	"tokenwatch/internal/metrics"
	"tokenwatch/internal/repository/memory"
	watchservice "tokenwatch/internal/services/watch"
	"tokenwatch/pkg/errors"
	"tokenwatch/pkg/logger"
	"tokenwatch/pkg/telegram"
	"tokenwatch/pkg/telegram/adapters/tgbotapi"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Initialize metrics
	metrics.Init()

	// Initialize bot transport
	bot, err := tgbotapi.NewBot(tgbotapi.Config{
		Token:          cfg.Telegram.BotToken,
		Debug:          cfg.App.Debug,
		HTTPTimeout:    cfg.Telegram.HTTPTimeout,
		RateLimitBurst: cfg.Telegram.RateLimitBurst,
		RateLimitRate:  cfg.Telegram.RateLimitRate,
	}, log)
	if err != nil {
		log.Fatalf("Failed to create telegram bot: %v", err)
	}

	// Initialize registry, market data and price feed clients
	registry := memory.NewWatchRegistry(cfg.Watch.RegistryTTL)
	market := dexscreener.NewClient(cfg.DexScreener.BaseURL, cfg.DexScreener.Timeout, log)
	prices := pricefeed.NewCoinGeckoClient(cfg.PriceFeed.BaseURL, cfg.PriceFeed.Timeout, log)

	// Initialize watch engine
	watchSvc := watchservice.NewService(registry, market, bot, cfg.Watch.DetectDelay, log)

	// Initialize commands and update routing
	commandRegistry := telegram.NewCommandRegistry(bot, log)
	tgadapter.RegisterCommands(commandRegistry, prices, log)

	handler := tgadapter.NewHandler(bot, commandRegistry, watchSvc, log)
	bot.SetHandler(handler.HandleUpdate)

	log.Info("System initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Start(gctx)
	})

	if cfg.Metrics.Enabled {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.Metrics.ListenAddr, log)
		})
	}

	// Wait for shutdown signal or component failure
	waitForShutdown(gctx, cancel, errorTracker, log)

	bot.Stop()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("Component stopped with error: %v", err)
	}

	log.Info("Shutdown complete")
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// serveMetrics exposes Prometheus metrics until the context is cancelled.
func serveMetrics(ctx context.Context, addr string, log *logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Metrics server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "metrics server failed")
	}
	return nil
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down...")
	case <-ctx.Done():
		log.Info("Component failed, shutting down...")
	}

	cancel()

	if errorTracker != nil {
		if err := errorTracker.Flush(context.Background()); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}
}
