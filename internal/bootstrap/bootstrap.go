package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bersekolah/beswanadmin/internal/config"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
	"github.com/bersekolah/beswanadmin/internal/core/usecase"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/auth"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/export/xlsx"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/resilience"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/scholarship"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/storage/localfs"
	"github.com/bersekolah/beswanadmin/internal/observability/logging"
)

// App holds the wired object graph shared by the CLI and the watch
// process. Everything talks to the admin API through one gateway so the
// circuit breaker sees every outbound call.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Gateway ports.ScholarshipGateway

	Review    *usecase.ReviewSession
	Documents *usecase.DocumentPipeline
	Export    *usecase.ExportUseCase
}

func New(service string, cfg config.Config) (*App, error) {
	logger := logging.New(service, cfg.LogLevel, cfg.LogFormat)

	var tokens ports.TokenSource
	if cfg.TokenFile != "" {
		tokens = auth.NewFileTokenSource(cfg.TokenFile)
	} else {
		tokens = auth.NewStaticTokenSource(cfg.Token)
	}

	execCfg := resilience.DefaultConfig()
	execCfg.RetryMaxAttempts = cfg.RetryMaxAttempts
	execCfg.BreakerEnabled = cfg.BreakerEnabled
	exec := resilience.NewExecutor(execCfg)

	gateway := scholarship.New(cfg.APIBaseURL, tokens,
		scholarship.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		scholarship.WithExecutor(exec),
		scholarship.WithLogger(logger),
	)

	exportDir, err := localfs.NewExportDir(cfg.ExportDir)
	if err != nil {
		return nil, fmt.Errorf("init export dir: %w", err)
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Gateway: gateway,

		Review:    usecase.NewReviewSession(gateway, logger),
		Documents: usecase.NewDocumentPipeline(gateway, localfs.Files{}, logger, cfg.Category),
		Export:    usecase.NewExportUseCase(gateway, exportDir, xlsx.Inspector{}, logger),
	}, nil
}
