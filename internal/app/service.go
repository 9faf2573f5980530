// Package service wires the run pipeline: read the form workbook, derive
// away-willingness, allocate every match in order, render the report, and
// write the output workbook.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/athid/kallelse/internal/adapters/spreadsheet"
	"github.com/athid/kallelse/internal/config"
	"github.com/athid/kallelse/internal/domain/allocate"
	"github.com/athid/kallelse/internal/domain/report"
	"github.com/athid/kallelse/pkg/logger"
	"github.com/athid/kallelse/pkg/metrics"
)

// Service runs one allocation from input workbook to output workbook.
type Service struct {
	input  string
	output string
	cfg    *config.Config

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInput sets the input workbook path.
func WithInput(path string) Option {
	return func(s *Service) {
		s.input = path
	}
}

// WithOutput sets the output workbook path.
func WithOutput(path string) Option {
	return func(s *Service) {
		s.output = path
	}
}

// WithConfig sets the allocation configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// New creates a Service with defaults and applies options.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the full pipeline and returns the rendered report. Every run
// gets a UUID for log correlation.
func (s *Service) Run(ctx context.Context) (*report.Report, error) {
	if s.input == "" || s.output == "" {
		return nil, ErrMissingPath
	}

	runID := uuid.NewString()
	log := s.log
	if log == nil {
		log = logger.Get()
	}
	log = log.Named("run")

	start := time.Now()
	log.Info(ctx, "starting allocation run",
		logger.String("run_id", runID),
		logger.String("input", s.input),
		logger.String("sheet", s.cfg.Sheet))

	readStart := time.Now()
	src, err := spreadsheet.Read(ctx, s.input, s.cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	metrics.ObserveWorkbookReadDuration(time.Since(readStart).Seconds())
	metrics.UpdatePlayersTracked(src.Roster.Len())
	metrics.UpdateMatchesTracked(len(src.Matches))

	if src.DuplicatesDropped > 0 {
		log.Warn(ctx, "dropped duplicate form submissions",
			logger.String("run_id", runID),
			logger.Int("dropped", src.DuplicatesDropped))
	}

	// Derivation runs once, before allocation begins.
	src.Roster.DeriveAwayWillingness(src.AwayResponseCounts)

	for _, m := range src.Matches {
		m.SlotTarget = s.cfg.SlotTarget
	}

	a := allocate.New(
		allocate.WithGKCap(s.cfg.GKCap),
		allocate.WithVenueCaps(s.cfg.MaxHomeBase, s.cfg.MaxAwayBase),
		allocate.WithSlotTarget(s.cfg.SlotTarget),
		allocate.WithRequireExactReserveFour(s.cfg.RequireExactReserveFour),
		allocate.WithPreferGKVolunteers(s.cfg.PreferGKVolunteers),
		allocate.WithBackfillReserveVolunteers(s.cfg.BackfillReserveVolunteers),
		allocate.WithLogger(log),
	)
	outcomes := a.Run(ctx, src.Roster, src.Matches)

	rep := report.Render(src.Roster, outcomes)

	writeStart := time.Now()
	if err := spreadsheet.Write(ctx, s.output, src, rep); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	metrics.ObserveWorkbookWriteDuration(time.Since(writeStart).Seconds())
	metrics.ObserveRunDuration(time.Since(start).Seconds())

	issues := 0
	for _, out := range outcomes {
		issues += len(out.Issues)
	}
	log.Info(ctx, "allocation run complete",
		logger.String("run_id", runID),
		logger.String("output", s.output),
		logger.Int("players", src.Roster.Len()),
		logger.Int("matches", len(src.Matches)),
		logger.Int("issues", issues))

	return rep, nil
}
