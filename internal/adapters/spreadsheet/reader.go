// Package spreadsheet adapts the form-responses workbook to the domain
// model and renders the allocation result back to a workbook. The core
// never sees a cell; malformed input fails fast here.
package spreadsheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/athid/kallelse/internal/domain/roster"
	"github.com/athid/kallelse/internal/domain/schedule"
)

// Known column headers of the form-responses sheet.
const (
	colPlayerOrdinal = "Spelare"
	colPlayerName    = "Barnets namn"
	colGoalkeeper    = "Målvakt"
	colReserve       = "Reserv"
	colAwayResponses = "#Borta svar"
)

// requiredColumns must exist on the sheet for a run to start.
var requiredColumns = []string{colGoalkeeper, colReserve}

// Record keeps one player's raw form row for re-emission on the output
// sheet, keyed by header.
type Record struct {
	Name  string
	Cells map[string]string
}

// Source is the parsed input workbook.
type Source struct {
	Sheet   string
	Headers []string

	Roster  *roster.Roster
	Matches []*schedule.Match
	Records []Record

	// AwayResponseCounts is nil when the sheet carries no away-response
	// data at all; the roster then keeps its seeded willingness flags.
	AwayResponseCounts map[string]int

	// DuplicatesDropped counts form rows dropped because the player had
	// already submitted; first submission wins.
	DuplicatesDropped int
}

// Read parses the form-responses sheet into a Source.
func Read(ctx context.Context, path, sheet string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrOpenWorkbook, path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSheetNotFound, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingColumn, sheet)
	}

	headers := rows[0]
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		headers[i] = h
		if _, seen := colIndex[h]; !seen && h != "" {
			colIndex[h] = i
		}
	}
	for _, required := range requiredColumns {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("%w: %q in sheet %q", ErrMissingColumn, required, sheet)
		}
	}

	src := &Source{
		Sheet:   sheet,
		Headers: headers,
		Roster:  roster.New(),
	}

	// Match columns are recognized by their venue marker, in header order.
	matchByHeader := make(map[string]*schedule.Match)
	for _, h := range headers {
		if venue := schedule.Classify(h); venue != schedule.VenueUnknown {
			m := schedule.NewMatch(h, venue)
			src.Matches = append(src.Matches, m)
			matchByHeader[h] = m
		}
	}
	if len(src.Matches) == 0 {
		return nil, fmt.Errorf("%w: headers must contain \"(Hemma)\" or \"(Borta)\"", ErrNoMatchColumns)
	}

	_, hasAwayResponses := colIndex[colAwayResponses]
	hasAwayMatches := false
	for _, m := range src.Matches {
		if m.Venue == schedule.VenueAway {
			hasAwayMatches = true
		}
	}
	if hasAwayResponses || hasAwayMatches {
		src.AwayResponseCounts = make(map[string]int)
	}

	cell := func(row []string, header string) string {
		idx, ok := colIndex[header]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for i, row := range rows[1:] {
		rowNum := i + 1 // 1-based data row position

		name := cell(row, colPlayerName)
		if name == "" {
			name = strconv.Itoa(rowNum)
		}

		ordinal := rowNum
		if raw := cell(row, colPlayerOrdinal); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				ordinal = n
			}
		}

		p := &roster.Player{
			Name:               name,
			Ordinal:            ordinal,
			WillingGoalkeeper:  schedule.Yes(cell(row, colGoalkeeper)),
			WillingMoreMatches: schedule.Yes(cell(row, colReserve)),
		}
		if !src.Roster.Add(p) {
			src.DuplicatesDropped++
			continue
		}

		cells := make(map[string]string, len(headers))
		for _, h := range headers {
			if h != "" {
				cells[h] = cell(row, h)
			}
		}
		src.Records = append(src.Records, Record{Name: name, Cells: cells})

		awayYes := 0
		for _, m := range src.Matches {
			if schedule.Yes(cell(row, m.Title)) {
				m.MarkAvailable(name)
				if m.Venue == schedule.VenueAway {
					awayYes++
				}
			}
		}

		if src.AwayResponseCounts != nil {
			if hasAwayResponses {
				n, _ := strconv.Atoi(cell(row, colAwayResponses))
				src.AwayResponseCounts[name] = n
			} else {
				src.AwayResponseCounts[name] = awayYes
			}
		}
	}

	return src, nil
}
