package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	service "github.com/athid/kallelse/internal/app"
	"github.com/athid/kallelse/internal/config"
	"github.com/athid/kallelse/pkg/logger"
	"github.com/athid/kallelse/pkg/metrics"
)

// HTTP timeouts for the optional metrics listener.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logging: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// CLI flags layer on top of the loaded configuration.
	var (
		input       = flag.String("input", "", "Input form-responses workbook (.xlsx)")
		output      = flag.String("output", "", "Output workbook (.xlsx)")
		sheet       = flag.String("sheet", cfg.Sheet, "Form-responses sheet name")
		gkCap       = flag.Int("gk-cap", cfg.GKCap, "Max goalkeeper turns per player")
		maxHome     = flag.Int("max-home-base", cfg.MaxHomeBase, "Max standard home call-ups per player")
		maxAway     = flag.Int("max-away-base", cfg.MaxAwayBase, "Max standard away call-ups per player")
		slotTarget  = flag.Int("slot-target", cfg.SlotTarget, "Call-ups per match, goalkeeper included")
		exactFour   = flag.Bool("require-exact-reserve-four", cfg.RequireExactReserveFour, "Build KEDJA 3 only from exactly four remaining players")
		preferVols  = flag.Bool("prefer-gk-volunteers", cfg.PreferGKVolunteers, "Prefer goalkeeper volunteers")
		backfill    = flag.Bool("backfill-reserve-volunteers", cfg.BackfillReserveVolunteers, "Fill short matches with reserve volunteers")
		metricsAddr = flag.String("metrics-addr", cfg.MetricsAddr, "Expose /metrics on this address (empty = disabled)")
		logLevel    = flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	)
	flag.Parse()

	cfg.Sheet = *sheet
	cfg.GKCap = *gkCap
	cfg.MaxHomeBase = *maxHome
	cfg.MaxAwayBase = *maxAway
	cfg.SlotTarget = *slotTarget
	cfg.RequireExactReserveFour = *exactFour
	cfg.PreferGKVolunteers = *preferVols
	cfg.BackfillReserveVolunteers = *backfill
	cfg.MetricsAddr = *metricsAddr
	cfg.LogLevel = *logLevel

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if *input == "" || *output == "" {
		os.Stderr.WriteString("usage: kallelse -input INPUT.xlsx -output OUTPUT.xlsx [options]\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Optional metrics listener for long or repeated batch runs.
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "starting metrics listener", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "metrics listener failed", logger.Error(err))
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	svc := service.New(
		service.WithInput(*input),
		service.WithOutput(*output),
		service.WithConfig(cfg),
		service.WithLogger(log),
	)

	if _, err := svc.Run(ctx); err != nil {
		os.Stderr.WriteString("allocation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
