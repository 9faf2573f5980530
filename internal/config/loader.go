package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if KALLELSE_CONFIG is set
//  3. env (prefix KALLELSE_)
//
// CLI flags are layered on top by the caller.
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("KALLELSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: KALLELSE_GK_CAP, KALLELSE_MAX_HOME_BASE, ...
	// Map env keys like KALLELSE_GK_CAP -> gk_cap (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("KALLELSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "kallelse_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects settings the allocator cannot honor.
func (c *Config) validate() error {
	if c.Sheet == "" {
		return fmt.Errorf("%w: sheet must not be empty", ErrInvalidConfig)
	}
	if c.GKCap < 0 {
		return fmt.Errorf("%w: gk_cap must not be negative", ErrInvalidConfig)
	}
	if c.MaxHomeBase < 0 || c.MaxAwayBase < 0 {
		return fmt.Errorf("%w: venue caps must not be negative", ErrInvalidConfig)
	}
	if c.SlotTarget < 1 {
		return fmt.Errorf("%w: slot_target must be at least 1", ErrInvalidConfig)
	}
	return nil
}
