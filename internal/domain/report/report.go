// Package report projects final counters and per-match selections into the
// output structure. Pure read of the roster and the allocator's decisions;
// no decision logic lives here.
package report

import (
	"sort"

	"github.com/athid/kallelse/internal/domain/allocate"
	"github.com/athid/kallelse/internal/domain/roster"
)

// Overview column headers on the main sheet. The Swedish labels are the
// club's established workbook format.
const (
	ColHomeCalls    = "Kallelser Hemma"
	ColAwayCalls    = "Kallelser Borta"
	ColTotalCalls   = "Kallelser Totalt"
	ColReserveCalls = "Reservkallelser"
	ColGKCalls      = "Målvaktsgånger"
	ColHomeMatches  = "Antal Hemma matcher"
	ColAwayMatches  = "Antal Borta matcher"
	ColAwayWilling  = "Vill borta"
)

// Row labels on the per-match tabs.
const (
	RowGoalkeeper       = "MÅLVAKT"
	RowLine1            = "KEDJA 1 (UTE)"
	RowLine2            = "KEDJA 2 (UTE)"
	RowReserveChain     = "KEDJA 3 (RESERV)"
	RowPossibleReserves = "MÖJLIGA RESERVER"
)

// fieldLineSize is the number of players per field line.
const fieldLineSize = 4

// PlayerSummary is one overview row on the main sheet.
type PlayerSummary struct {
	Ordinal      int
	Name         string
	HomeCalls    int
	AwayCalls    int
	TotalCalls   int
	ReserveCalls int
	GKCalls      int
	HomeMatches  int
	AwayMatches  int
	AwayWilling  bool
}

// MatchRow is one labeled row on a per-match tab.
type MatchRow struct {
	Label string
	Names []string
}

// MatchSheet is the rendered annotation for one match.
type MatchSheet struct {
	Title string
	Rows  []MatchRow
}

// Report is the full rendered output of a run.
type Report struct {
	Players []PlayerSummary
	Matches []MatchSheet
}

// Render projects the roster and the allocation outcomes into a Report.
// Must run after the allocator has finished entirely.
func Render(r *roster.Roster, outcomes []*allocate.Outcome) *Report {
	rep := &Report{
		Players: make([]PlayerSummary, 0, r.Len()),
		Matches: make([]MatchSheet, 0, len(outcomes)),
	}

	for _, p := range r.Players() {
		rep.Players = append(rep.Players, PlayerSummary{
			Ordinal:      p.Ordinal,
			Name:         p.Name,
			HomeCalls:    p.HomeCalls(),
			AwayCalls:    p.AwayCalls(),
			TotalCalls:   p.TotalCalls(),
			ReserveCalls: p.ReserveCalls(),
			GKCalls:      p.GKCalls(),
			HomeMatches:  p.HomeMatches(),
			AwayMatches:  p.AwayMatches(),
			AwayWilling:  p.AwayWilling,
		})
	}

	for _, out := range outcomes {
		rep.Matches = append(rep.Matches, renderMatch(r, out))
	}
	return rep
}

// renderMatch builds the tab rows for one match: goalkeeper, the two field
// lines, the reserve chain when it exists, and the possible reserves.
func renderMatch(r *roster.Roster, out *allocate.Outcome) MatchSheet {
	sheet := MatchSheet{Title: out.Match.Title}

	var gkNames []string
	if out.Goalkeeper != nil {
		gkNames = []string{out.Goalkeeper.Name}
	}
	sheet.Rows = append(sheet.Rows, MatchRow{Label: RowGoalkeeper, Names: gkNames})

	field := out.FieldPlayers()
	line1 := field
	var line2 []*roster.Player
	if len(field) > fieldLineSize {
		line1 = field[:fieldLineSize]
		line2 = field[fieldLineSize:]
	}
	sheet.Rows = append(sheet.Rows,
		MatchRow{Label: RowLine1, Names: playerNames(line1)},
		MatchRow{Label: RowLine2, Names: playerNames(line2)},
	)

	if len(out.ReserveChain) > 0 {
		sheet.Rows = append(sheet.Rows, MatchRow{Label: RowReserveChain, Names: playerNames(out.ReserveChain)})
	}

	sheet.Rows = append(sheet.Rows, MatchRow{
		Label: RowPossibleReserves,
		Names: orderedNames(r, out.PossibleReserves.ToSlice()),
	})
	return sheet
}

func playerNames(players []*roster.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

// orderedNames sorts a name set into roster order.
func orderedNames(r *roster.Roster, names []string) []string {
	sort.Slice(names, func(i, j int) bool {
		pi, pj := r.Lookup(names[i]), r.Lookup(names[j])
		if pi == nil || pj == nil {
			return names[i] < names[j]
		}
		return pi.Ordinal < pj.Ordinal
	})
	return names
}
