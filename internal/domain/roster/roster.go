// Package roster holds the per-player records and running call counters for
// one allocation run.
//
// The roster is the single mutable state of a run. The allocator is its only
// writer; counters only ever go up. Selection order everywhere in the engine
// is the explicit Ordinal key, so two runs over the same input produce the
// same allocation.
package roster

import (
	"sort"
)

// Player is one roster row: static willingness flags from the form, the
// derived away-willingness, and the running counters.
type Player struct {
	// Name is the unique row key, taken from the form's name column.
	Name string
	// Ordinal is the stable roster-order key (form's player number when
	// present, otherwise the 1-based row position).
	Ordinal int

	// Static flags from the form.
	WillingMoreMatches bool
	WillingGoalkeeper  bool

	// AwayWilling is seeded from the form and re-derived from away-response
	// data when such data exists.
	AwayWilling bool

	// Counters. Incremented exactly once per call-up event, never
	// decremented, for the lifetime of one run.
	homeCalls    int
	awayCalls    int
	gkCalls      int
	reserveCalls int

	// Reference totals: all matches the player appears in, reserve
	// call-ups included.
	homeMatches int
	awayMatches int
}

// Counter reads.
func (p *Player) HomeCalls() int    { return p.homeCalls }
func (p *Player) AwayCalls() int    { return p.awayCalls }
func (p *Player) GKCalls() int      { return p.gkCalls }
func (p *Player) ReserveCalls() int { return p.reserveCalls }
func (p *Player) HomeMatches() int  { return p.homeMatches }
func (p *Player) AwayMatches() int  { return p.awayMatches }

// TotalCalls returns the standard call-up total (home + away).
func (p *Player) TotalCalls() int { return p.homeCalls + p.awayCalls }

// Counter increments. Cap checks are the allocator's job; keeping cap policy
// out of the model keeps it configurable in one place.
func (p *Player) RecordHomeCall()    { p.homeCalls++ }
func (p *Player) RecordAwayCall()    { p.awayCalls++ }
func (p *Player) RecordGKCall()      { p.gkCalls++ }
func (p *Player) RecordReserveCall() { p.reserveCalls++ }

// RecordHomeAppearance and RecordAwayAppearance track the reference totals.
func (p *Player) RecordHomeAppearance() { p.homeMatches++ }
func (p *Player) RecordAwayAppearance() { p.awayMatches++ }

// Roster owns all Player records for a run.
type Roster struct {
	players []*Player
	byName  map[string]*Player
	derived bool
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{
		byName: make(map[string]*Player),
	}
}

// Add registers a player. Duplicate form submissions for the same name are
// dropped, first row wins; Add reports whether the player was newly added.
func (r *Roster) Add(p *Player) bool {
	if p == nil || p.Name == "" {
		return false
	}
	if _, seen := r.byName[p.Name]; seen {
		return false
	}
	r.byName[p.Name] = p
	r.players = append(r.players, p)
	return true
}

// Lookup returns the player with the given name, or nil.
func (r *Roster) Lookup(name string) *Player {
	return r.byName[name]
}

// Players returns all players ordered by Ordinal.
func (r *Roster) Players() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ordinal < out[j].Ordinal
	})
	return out
}

// Len returns the roster size.
func (r *Roster) Len() int { return len(r.players) }

// DeriveAwayWillingness recomputes AwayWilling from per-player away-response
// counts. A nil map means no away-response data exists and the seeded flags
// are kept. Runs once before allocation; calling it again with the same
// counts yields the same result.
func (r *Roster) DeriveAwayWillingness(awayResponses map[string]int) {
	if awayResponses == nil {
		return
	}
	for _, p := range r.players {
		p.AwayWilling = awayResponses[p.Name] > 0
	}
	r.derived = true
}

// Derived reports whether away-willingness has been derived from response data.
func (r *Roster) Derived() bool { return r.derived }
