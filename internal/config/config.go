// Package config defines tool configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Default allocation settings. These mirror the league's standing rules:
// at most one goalkeeper turn per player, at most two standard home and two
// standard away call-ups, and a third line only when it can be filled exactly.
const (
	defaultGKCap       = 1
	defaultMaxHomeBase = 2
	defaultMaxAwayBase = 2
	defaultSlotTarget  = 9 // one goalkeeper plus two field lines of four
	defaultSheet       = "Formulärsvar 1 (exakt)"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Sheet is the name of the form-responses sheet in the input workbook.
	Sheet string `koanf:"sheet"`

	// GKCap bounds goalkeeper turns per player for the season.
	GKCap int `koanf:"gk_cap"`

	// MaxHomeBase and MaxAwayBase bound standard call-ups per player and venue.
	MaxHomeBase int `koanf:"max_home_base"`
	MaxAwayBase int `koanf:"max_away_base"`

	// SlotTarget is the total call-ups per match, goalkeeper included.
	SlotTarget int `koanf:"slot_target"`

	// RequireExactReserveFour builds the reserve chain only from exactly
	// four remaining players. Relaxed, any non-empty remainder qualifies.
	RequireExactReserveFour bool `koanf:"require_exact_reserve_four"`

	// PreferGKVolunteers picks goalkeeper volunteers before non-volunteers.
	PreferGKVolunteers bool `koanf:"prefer_gk_volunteers"`

	// BackfillReserveVolunteers extends a short match with players willing
	// to take extra matches, counted as reserve call-ups.
	BackfillReserveVolunteers bool `koanf:"backfill_reserve_volunteers"`

	// MetricsAddr enables a /metrics listener when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config populated with the defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		Sheet:                     defaultSheet,
		GKCap:                     defaultGKCap,
		MaxHomeBase:               defaultMaxHomeBase,
		MaxAwayBase:               defaultMaxAwayBase,
		SlotTarget:                defaultSlotTarget,
		RequireExactReserveFour:   true,
		PreferGKVolunteers:        true,
		BackfillReserveVolunteers: true,
		MetricsAddr:               "",
	}
}
