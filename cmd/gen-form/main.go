package main

import (
	"context"
	"flag"
	"os"

	"github.com/athid/kallelse/internal/genform"
	"github.com/athid/kallelse/pkg/logger"
)

// Default generation constants.
const (
	defaultPlayers      = 16
	defaultHomeMatches  = 4
	defaultAwayMatches  = 4
	defaultGKShare      = 0.25
	defaultReserveShare = 0.5
	defaultAvailability = 0.75
	defaultSeed         = 42
)

func main() {
	var (
		players      = flag.Int("players", defaultPlayers, "Number of players on the roster")
		homeMatches  = flag.Int("home", defaultHomeMatches, "Number of home match columns")
		awayMatches  = flag.Int("away", defaultAwayMatches, "Number of away match columns")
		gkShare      = flag.Float64("gk-share", defaultGKShare, "Share of players volunteering as goalkeeper")
		reserveShare = flag.Float64("reserve-share", defaultReserveShare, "Share of players willing to take extra matches")
		availability = flag.Float64("availability", defaultAvailability, "Probability of a yes per player and match")
		seed         = flag.Int64("seed", defaultSeed, "Seed for deterministic generation")
		output       = flag.String("output", "", "Output workbook path (default: form_responses_UUID.xlsx)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		genform.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	cfg := &genform.Config{
		Players:          *players,
		HomeMatches:      *homeMatches,
		AwayMatches:      *awayMatches,
		GKShare:          *gkShare,
		ReserveShare:     *reserveShare,
		AvailabilityRate: *availability,
		Seed:             *seed,
		Output:           *output,
		Verbose:          *verbose,
	}

	if err := genform.Run(context.Background(), cfg); err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
