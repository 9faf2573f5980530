package allocate

import (
	"github.com/athid/kallelse/pkg/logger"
)

// Default allocation rules, matching the league's standing agreement.
const (
	defaultGKCap       = 1
	defaultMaxHomeBase = 2
	defaultMaxAwayBase = 2
	defaultSlotTarget  = 9
)

// Option applies a configuration option to the Allocator.
type Option func(*Allocator)

// WithGKCap bounds goalkeeper turns per player.
func WithGKCap(n int) Option {
	return func(a *Allocator) {
		if n >= 0 {
			a.gkCap = n
		}
	}
}

// WithVenueCaps bounds standard home and away call-ups per player.
func WithVenueCaps(home, away int) Option {
	return func(a *Allocator) {
		if home >= 0 {
			a.maxHomeBase = home
		}
		if away >= 0 {
			a.maxAwayBase = away
		}
	}
}

// WithSlotTarget sets the default call-up total per match, goalkeeper
// included. A match descriptor may override it per match.
func WithSlotTarget(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.slotTarget = n
		}
	}
}

// WithRequireExactReserveFour toggles the strict reserve-chain rule.
func WithRequireExactReserveFour(strict bool) Option {
	return func(a *Allocator) {
		a.requireExactReserveFour = strict
	}
}

// WithPreferGKVolunteers toggles the goalkeeper volunteer preference.
func WithPreferGKVolunteers(prefer bool) Option {
	return func(a *Allocator) {
		a.preferGKVolunteers = prefer
	}
}

// WithBackfillReserveVolunteers toggles extending short matches with
// players willing to take extra matches.
func WithBackfillReserveVolunteers(backfill bool) Option {
	return func(a *Allocator) {
		a.backfillReserveVolunteers = backfill
	}
}

// WithLogger sets the logger used for per-match decisions.
func WithLogger(log logger.Logger) Option {
	return func(a *Allocator) {
		a.log = log
	}
}

// New creates an Allocator with the default rules and applies options.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		gkCap:                     defaultGKCap,
		maxHomeBase:               defaultMaxHomeBase,
		maxAwayBase:               defaultMaxAwayBase,
		slotTarget:                defaultSlotTarget,
		requireExactReserveFour:   true,
		preferGKVolunteers:        true,
		backfillReserveVolunteers: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
