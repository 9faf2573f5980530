package genform

import (
	"os"
)

// ShowHelp prints usage information for the form generator.
func ShowHelp() {
	os.Stdout.WriteString(`Kallelse Form Generator
=======================

Generates a synthetic form-responses workbook for testing the allocation
pipeline.

Usage:
  go run cmd/gen-form/main.go [options]

Options:
  -players int
        Number of players on the roster (default 16)
  -home int
        Number of home match columns (default 4)
  -away int
        Number of away match columns (default 4)
  -gk-share float
        Share of players volunteering as goalkeeper (default 0.25)
  -reserve-share float
        Share of players willing to take extra matches (default 0.5)
  -availability float
        Probability of a yes per player and match (default 0.75)
  -seed int
        Seed for deterministic generation (default 42)
  -output string
        Output workbook path (default: form_responses_UUID.xlsx)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate with default settings
  go run cmd/gen-form/main.go

  # A bigger season with scarce availability
  go run cmd/gen-form/main.go -players 22 -home 8 -away 8 -availability 0.5
`)
}
