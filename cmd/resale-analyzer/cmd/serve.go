package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/api/handlers"
	"github.com/Joshspeakman/ebay-resale-analyzer/internal/api/middleware"
	"github.com/Joshspeakman/ebay-resale-analyzer/internal/config"
	"github.com/Joshspeakman/ebay-resale-analyzer/internal/market"
	"github.com/Joshspeakman/ebay-resale-analyzer/internal/metrics"
	"github.com/Joshspeakman/ebay-resale-analyzer/internal/telemetry"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/logger"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/vision"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cobraCmd *cobra.Command, _ []string) error {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := cobraCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "err", err)
		}
	}()

	identifier, err := buildIdentifier(ctx, cfg.Vision)
	if err != nil {
		return fmt.Errorf("configuring vision backend: %w", err)
	}

	provider, limiter, err := buildProvider(ctx, cfg.Market, log)
	if err != nil {
		return fmt.Errorf("configuring market provider: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(logger.WithComponent(log, "http")))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(identifier, provider)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Resale Analyzer API", Version))
	handlers.RegisterPriceRoutes(api, handlers.NewPriceHandler())
	handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler())
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(cfg.Market.Provider, limiter))

	analyze := handlers.NewAnalyzeHandler(identifier, provider,
		handlers.WithAnalyzeLogger(logger.WithComponent(log, "analyze")),
		handlers.WithAnalyzeLimits(cfg.Server.MaxUploadBytes, cfg.Vision.MaxImages),
	)
	handlers.RegisterAnalyzeRoutes(e, analyze)

	// Periodic quota report, only meaningful with a rate-limited provider.
	var reporter *cron.Cron
	if limiter != nil {
		reporter = cron.New()
		_, err := reporter.AddFunc(
			fmt.Sprintf("@every %s", cfg.Schedule.QuotaReportInterval),
			func() { reportQuota(log, limiter) },
		)
		if err != nil {
			return fmt.Errorf("scheduling quota report: %w", err)
		}
		reporter.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server",
		"addr", addr,
		"vision_backend", cfg.Vision.Backend,
		"market_provider", cfg.Market.Provider,
	)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	if reporter != nil {
		reporter.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func buildIdentifier(ctx context.Context, cfg config.VisionConfig) (vision.Identifier, error) {
	switch cfg.Backend {
	case "openai_compat":
		return vision.NewOpenAICompatIdentifier(
			cfg.OpenAICompat.Endpoint,
			cfg.OpenAICompat.Model,
			vision.WithOpenAICompatHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
	default:
		return vision.NewGeminiIdentifier(ctx, cfg.Gemini.Model)
	}
}

// buildProvider returns the market provider and, for rate-limited providers,
// the limiter backing it.
func buildProvider(ctx context.Context, cfg config.MarketConfig, log *slog.Logger) (market.Provider, *market.Limiter, error) {
	if cfg.Provider != "live" {
		return market.NewStaticProvider(), nil, nil
	}

	searcher, err := market.NewGeminiSearcher(ctx, cfg.Search.Model)
	if err != nil {
		return nil, nil, err
	}

	limiter := market.NewLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, cfg.RateLimit.DailyBudget)
	provider := market.NewLiveProvider(searcher, limiter,
		market.WithLiveLogger(logger.WithComponent(log, "market")),
		market.WithLiveThresholds(cfg.MinSoldListings, cfg.MinActiveListings),
	)
	return provider, limiter, nil
}

func reportQuota(log *slog.Logger, limiter *market.Limiter) {
	used := limiter.Used()
	metrics.SearchDailyUsage.Set(float64(used))
	log.Info("search quota",
		"used", used,
		"remaining", limiter.Remaining(),
		"reset_at", limiter.ResetAt().Format(time.RFC3339),
	)
}
