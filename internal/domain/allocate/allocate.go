// Package allocate implements the call-up engine: goalkeeper selection,
// home/away slot filling, the conditional reserve chain, and the
// possible-reserves annotation.
//
// Matches are processed strictly in input order because every match's
// eligibility pool depends on counters mutated by all prior matches. The
// allocator is the only writer of roster counters; every branch degrades to
// a valid outcome, so a run never fails mid-season.
package allocate

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/athid/kallelse/internal/domain/roster"
	"github.com/athid/kallelse/internal/domain/schedule"
	"github.com/athid/kallelse/pkg/logger"
	"github.com/athid/kallelse/pkg/metrics"
)

// reserveChainSize is the fixed size of the third line.
const reserveChainSize = 4

// Outcome is the allocator's decision record for one match.
type Outcome struct {
	Match *schedule.Match

	// Goalkeeper is nil when no eligible candidate existed.
	Goalkeeper *roster.Player

	// Selected is the ordered call-up list, goalkeeper first when assigned.
	Selected []*roster.Player

	// ReserveChain is the third line, empty when not built.
	ReserveChain []*roster.Player

	// PossibleReserves lists available players not selected above.
	// Informational only; never read back into cap logic.
	PossibleReserves mapset.Set[string]

	// Issues records degraded outcomes for this match.
	Issues []Issue
}

// FieldPlayers returns the selected players minus the goalkeeper.
func (o *Outcome) FieldPlayers() []*roster.Player {
	if o.Goalkeeper == nil {
		return o.Selected
	}
	return o.Selected[1:]
}

// selectedSet returns the names selected for this match so far.
func (o *Outcome) selectedSet() mapset.Set[string] {
	s := mapset.NewSet[string]()
	for _, p := range o.Selected {
		s.Add(p.Name)
	}
	return s
}

// Allocator applies the league's call-up rules over a season.
type Allocator struct {
	gkCap       int
	maxHomeBase int
	maxAwayBase int
	slotTarget  int

	requireExactReserveFour   bool
	preferGKVolunteers        bool
	backfillReserveVolunteers bool

	log logger.Logger
}

// Run processes every match in input order and returns one outcome per
// match. The roster's counters are mutated as decisions are made.
func (a *Allocator) Run(ctx context.Context, r *roster.Roster, matches []*schedule.Match) []*Outcome {
	outcomes := make([]*Outcome, 0, len(matches))
	for _, m := range matches {
		out := a.allocateMatch(ctx, r, m)
		outcomes = append(outcomes, out)
		metrics.RecordMatchAllocated()
	}
	return outcomes
}

// allocateMatch runs the per-match rule chain: goalkeeper, slot filling,
// reserve-volunteer backfill, reserve chain, possible reserves.
func (a *Allocator) allocateMatch(ctx context.Context, r *roster.Roster, m *schedule.Match) *Outcome {
	out := &Outcome{
		Match:            m,
		PossibleReserves: mapset.NewSet[string](),
	}

	// Availability in roster order.
	avail := make([]*roster.Player, 0, m.Available.Cardinality())
	for _, p := range r.Players() {
		if m.Available.Contains(p.Name) {
			avail = append(avail, p)
		}
	}

	if m.NeedsGoalkeeper {
		a.pickGoalkeeper(ctx, avail, m, out)
	}

	a.fillSlots(ctx, avail, m, out)
	a.buildReserveChain(ctx, avail, m, out)

	// Possible reserves: whoever responded available but was not called up
	// in any capacity.
	selected := out.selectedSet()
	for _, p := range out.ReserveChain {
		selected.Add(p.Name)
	}
	for _, p := range avail {
		if !selected.Contains(p.Name) {
			out.PossibleReserves.Add(p.Name)
		}
	}

	if a.log != nil {
		a.log.Debug(ctx, "match allocated",
			logger.String("match", m.Title),
			logger.String("venue", m.Venue.String()),
			logger.Int("available", len(avail)),
			logger.Int("selected", len(out.Selected)),
			logger.Int("reserve_chain", len(out.ReserveChain)),
			logger.Int("issues", len(out.Issues)))
	}
	return out
}

// pickGoalkeeper selects the goalkeeper for a match. Candidates must be
// under the goalkeeper cap; volunteers win over non-volunteers when
// preferred, and roster order breaks ties within a partition.
func (a *Allocator) pickGoalkeeper(ctx context.Context, avail []*roster.Player, m *schedule.Match, out *Outcome) {
	var eligible, volunteers []*roster.Player
	for _, p := range avail {
		if p.GKCalls() >= a.gkCap {
			continue
		}
		eligible = append(eligible, p)
		if p.WillingGoalkeeper {
			volunteers = append(volunteers, p)
		}
	}

	// Both partitions keep roster order, so the first candidate wins.
	pool := eligible
	if a.preferGKVolunteers && len(volunteers) > 0 {
		pool = volunteers
	}
	if len(pool) == 0 {
		a.reportIssue(ctx, out, Issue{
			Kind:   IssueNoEligibleGoalkeeper,
			Detail: fmt.Sprintf("no available player under the goalkeeper cap of %d", a.gkCap),
		})
		return
	}

	gk := pool[0]
	gk.RecordGKCall()
	// Goalkeeper call-ups are not exempt from the venue caps. A goalkeeper
	// already at the venue cap takes the turn as a reserve call instead.
	if a.venueCalls(gk, m.Venue) < a.venueCap(m.Venue) {
		a.recordVenueCall(gk, m.Venue)
	} else {
		gk.RecordReserveCall()
		metrics.RecordReserveCallUp()
	}
	a.recordAppearance(gk, m.Venue)

	out.Goalkeeper = gk
	out.Selected = append(out.Selected, gk)
	metrics.RecordGoalkeeperAssignment()
}

// fillSlots fills the match up to its slot target from players under the
// venue cap, then backfills from reserve volunteers when configured.
func (a *Allocator) fillSlots(ctx context.Context, avail []*roster.Player, m *schedule.Match, out *Outcome) {
	target := m.SlotTarget
	if target <= 0 {
		target = a.slotTarget
	}

	selected := out.selectedSet()
	venueCap := a.venueCap(m.Venue)
	for _, p := range avail {
		if len(out.Selected) >= target {
			break
		}
		if selected.Contains(p.Name) || a.venueCalls(p, m.Venue) >= venueCap {
			continue
		}
		a.recordVenueCall(p, m.Venue)
		a.recordAppearance(p, m.Venue)
		out.Selected = append(out.Selected, p)
		selected.Add(p.Name)
	}

	// Not enough players with base capacity: pull in reserve volunteers.
	// Their turn counts as a reserve call, so the base caps stay intact.
	if a.backfillReserveVolunteers {
		for _, p := range avail {
			if len(out.Selected) >= target {
				break
			}
			if selected.Contains(p.Name) || !p.WillingMoreMatches {
				continue
			}
			p.RecordReserveCall()
			a.recordAppearance(p, m.Venue)
			out.Selected = append(out.Selected, p)
			selected.Add(p.Name)
			metrics.RecordReserveCallUp()
		}
	}

	if len(out.Selected) < target {
		a.reportIssue(ctx, out, Issue{
			Kind:   IssueUnfilledSlot,
			Detail: fmt.Sprintf("filled %d of %d slots", len(out.Selected), target),
		})
	}
}

// buildReserveChain builds the third line from players not yet called up.
// Strict mode requires exactly four remaining players; relaxed mode admits
// any non-empty remainder, up to four.
func (a *Allocator) buildReserveChain(ctx context.Context, avail []*roster.Player, m *schedule.Match, out *Outcome) {
	selected := out.selectedSet()
	remaining := make([]*roster.Player, 0, len(avail))
	for _, p := range avail {
		if !selected.Contains(p.Name) {
			remaining = append(remaining, p)
		}
	}

	if a.requireExactReserveFour {
		if len(remaining) != reserveChainSize {
			if len(remaining) > 0 {
				a.reportIssue(ctx, out, Issue{
					Kind:   IssueReserveChainSkipped,
					Detail: fmt.Sprintf("%d players remaining, need exactly %d", len(remaining), reserveChainSize),
				})
			}
			return
		}
	} else {
		if len(remaining) == 0 {
			return
		}
		if len(remaining) > reserveChainSize {
			remaining = remaining[:reserveChainSize]
		}
	}

	for _, p := range remaining {
		p.RecordReserveCall()
		a.recordAppearance(p, m.Venue)
		metrics.RecordReserveCallUp()
	}
	out.ReserveChain = remaining
}

// reportIssue records a degraded outcome on the match and in metrics.
func (a *Allocator) reportIssue(ctx context.Context, out *Outcome, issue Issue) {
	out.Issues = append(out.Issues, issue)
	metrics.RecordAllocationIssue(string(issue.Kind))
	if a.log != nil {
		a.log.Warn(ctx, "degraded allocation outcome",
			logger.String("match", out.Match.Title),
			logger.String("kind", string(issue.Kind)),
			logger.String("detail", issue.Detail))
	}
}

func (a *Allocator) venueCap(v schedule.VenueKind) int {
	if v == schedule.VenueHome {
		return a.maxHomeBase
	}
	return a.maxAwayBase
}

func (a *Allocator) venueCalls(p *roster.Player, v schedule.VenueKind) int {
	if v == schedule.VenueHome {
		return p.HomeCalls()
	}
	return p.AwayCalls()
}

func (a *Allocator) recordVenueCall(p *roster.Player, v schedule.VenueKind) {
	if v == schedule.VenueHome {
		p.RecordHomeCall()
	} else {
		p.RecordAwayCall()
	}
	metrics.RecordCallUp(v.String())
}

func (a *Allocator) recordAppearance(p *roster.Player, v schedule.VenueKind) {
	if v == schedule.VenueHome {
		p.RecordHomeAppearance()
	} else {
		p.RecordAwayAppearance()
	}
}
