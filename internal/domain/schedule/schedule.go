// Package schedule describes the season's match columns: venue kinds, the
// title classifier used by the I/O adapter, and per-match availability.
package schedule

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// VenueKind tells whether a match is played at home or away.
type VenueKind int

const (
	VenueUnknown VenueKind = iota
	VenueHome
	VenueAway
)

// String returns a stable label, also used as a metrics label value.
func (v VenueKind) String() string {
	switch v {
	case VenueHome:
		return "home"
	case VenueAway:
		return "away"
	default:
		return "unknown"
	}
}

// Classify maps a form column title to a venue kind. Match columns carry a
// parenthesized venue marker, e.g. "Match 3 mot Hammarby (Hemma)". Titles
// without the marker classify as VenueUnknown and are not match columns.
func Classify(title string) VenueKind {
	if !strings.Contains(title, "(") || !strings.Contains(title, ")") {
		return VenueUnknown
	}
	switch {
	case strings.Contains(title, "Hemma"):
		return VenueHome
	case strings.Contains(title, "Borta"):
		return VenueAway
	}
	return VenueUnknown
}

// Yes reports whether a free-form form answer counts as a yes.
func Yes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "ja", "j", "yes", "y", "1", "true":
		return true
	}
	return false
}

// Match is one match column, tagged with its venue kind and the set of
// players who responded as available.
type Match struct {
	// Title is the original column header, also the output tab name.
	Title string
	Venue VenueKind

	// NeedsGoalkeeper is true unless the caller clears it.
	NeedsGoalkeeper bool

	// SlotTarget is the total call-ups for this match, goalkeeper included.
	// Zero means "use the allocator default".
	SlotTarget int

	// Available holds the names of players who marked availability.
	Available mapset.Set[string]
}

// NewMatch creates a match with an empty availability set.
func NewMatch(title string, venue VenueKind) *Match {
	return &Match{
		Title:           title,
		Venue:           venue,
		NeedsGoalkeeper: true,
		Available:       mapset.NewSet[string](),
	}
}

// MarkAvailable records a player's availability response.
func (m *Match) MarkAvailable(name string) {
	m.Available.Add(name)
}
