package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/bersekolah/beswanadmin/internal/bootstrap"
	"github.com/bersekolah/beswanadmin/internal/config"
	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/observability/metrics"
)

const service = "beswan-watch"

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	app, err := bootstrap.New(service, cfg)
	if err != nil {
		os.Stderr.WriteString("bootstrap: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := app.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchMetrics := metrics.NewWatchMetrics(service)
	mux := http.NewServeMux()
	mux.Handle("/metrics", watchMetrics.Handler())
	server := &http.Server{
		Addr:         ":" + cfg.WatchMetricsPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", "port", cfg.WatchMetricsPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
			stop()
		}
	}()

	poll(ctx, app, watchMetrics, cfg.WatchInterval)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics shutdown", "error", err)
	}
}

// poll fetches statistics on a fixed cadence until the context ends. An
// expired credential stops the loop; everything else is recorded and
// retried on the next tick.
func poll(ctx context.Context, app *bootstrap.App, m *metrics.WatchMetrics, interval time.Duration) {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		start := time.Now()
		stats, err := app.Review.Statistics(ctx)
		m.ObservePoll(service, time.Since(start), err)

		switch {
		case err == nil:
			m.SetStatistics(service, *stats)
			app.Logger.Info("statistics", "total", stats.Total, "by_status", stats.ByStatus)
		case errors.Is(err, context.Canceled):
			return
		case domain.IsKind(err, domain.ErrUnauthorized):
			app.Logger.Error("credential rejected, stopping", "error", err)
			return
		default:
			app.Logger.Warn("statistics poll failed", "error", err)
		}
	}
}
