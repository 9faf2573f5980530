package genform

// Config holds configuration for the form generator.
type Config struct {
	Players          int     // Number of players on the roster
	HomeMatches      int     // Number of home match columns
	AwayMatches      int     // Number of away match columns
	GKShare          float64 // Share of players volunteering as goalkeeper
	ReserveShare     float64 // Share of players willing to take extra matches
	AvailabilityRate float64 // Probability of a yes per player and match
	Seed             int64   // Seed for deterministic generation
	Output           string  // Output workbook path
	Verbose          bool    // Enable verbose logging
}
