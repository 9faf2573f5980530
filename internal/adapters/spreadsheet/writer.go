package spreadsheet

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/athid/kallelse/internal/domain/report"
)

// Excel sheet names are capped at 31 characters and reject a handful of
// characters.
const (
	maxSheetNameLen      = 31
	truncatedNameLen     = 28
	collisionSuffixStart = 27
)

var invalidSheetChars = regexp.MustCompile(`[:\\/?*\[\]]`)

// baseColumns are re-emitted from the input sheet, in this order, when
// present.
var baseColumns = []string{colPlayerOrdinal, colPlayerName, colGoalkeeper, colReserve}

// overviewColumns are the computed summary columns on the main sheet.
var overviewColumns = []string{
	report.ColHomeCalls,
	report.ColAwayCalls,
	report.ColTotalCalls,
	report.ColReserveCalls,
	report.ColGKCalls,
}

// referenceColumns are informational totals, reserve call-ups included.
var referenceColumns = []string{
	report.ColHomeMatches,
	report.ColAwayMatches,
	report.ColAwayWilling,
}

// Write renders the report into a new workbook at path: the main sheet with
// the overview columns, plus one tab per match.
func Write(ctx context.Context, path string, src *Source, rep *report.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	mainSheet := sanitizeSheetName(src.Sheet)
	if err := f.SetSheetName("Sheet1", mainSheet); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
	}

	if err := writeMainSheet(f, mainSheet, src, rep); err != nil {
		return err
	}
	if err := writeMatchSheets(f, rep); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWriteWorkbook, path, err)
	}
	return nil
}

// writeMainSheet emits base columns, overview columns, reference columns
// and the original match columns, one row per player in roster order.
func writeMainSheet(f *excelize.File, sheet string, src *Source, rep *report.Report) error {
	columns := make([]string, 0, len(src.Headers)+len(overviewColumns)+len(referenceColumns))
	present := make(map[string]bool, len(src.Headers))
	for _, h := range src.Headers {
		present[h] = true
	}
	for _, c := range baseColumns {
		if present[c] {
			columns = append(columns, c)
		}
	}
	columns = append(columns, overviewColumns...)
	columns = append(columns, referenceColumns...)
	for _, m := range src.Matches {
		columns = append(columns, m.Title)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	recordByName := make(map[string]Record, len(src.Records))
	for _, rec := range src.Records {
		recordByName[rec.Name] = rec
	}

	for i, ps := range rep.Players {
		rec := recordByName[ps.Name]
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			switch c {
			case report.ColHomeCalls:
				row[j] = ps.HomeCalls
			case report.ColAwayCalls:
				row[j] = ps.AwayCalls
			case report.ColTotalCalls:
				row[j] = ps.TotalCalls
			case report.ColReserveCalls:
				row[j] = ps.ReserveCalls
			case report.ColGKCalls:
				row[j] = ps.GKCalls
			case report.ColHomeMatches:
				row[j] = ps.HomeMatches
			case report.ColAwayMatches:
				row[j] = ps.AwayMatches
			case report.ColAwayWilling:
				row[j] = yesNo(ps.AwayWilling)
			default:
				row[j] = rec.Cells[c]
			}
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeMatchSheets emits one tab per match with the labeled call-up rows.
func writeMatchSheets(f *excelize.File, rep *report.Report) error {
	used := map[string]bool{}
	for _, sheet := range rep.Matches {
		name := sanitizeSheetName(sheet.Title)
		base := name
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", clip(base, collisionSuffixStart), n)
		}
		used[name] = true

		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("%w: sheet %q: %w", ErrWriteWorkbook, name, err)
		}
		for i, row := range sheet.Rows {
			cells := make([]interface{}, 0, len(row.Names)+1)
			cells = append(cells, row.Label)
			for _, n := range row.Names {
				cells = append(cells, n)
			}
			if err := setRow(f, name, i+1, cells); err != nil {
				return err
			}
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Ja"
	}
	return "Nej"
}

// sanitizeSheetName makes a title safe for use as an Excel sheet name.
func sanitizeSheetName(name string) string {
	safe := invalidSheetChars.ReplaceAllString(name, "-")
	if len(safe) > maxSheetNameLen {
		safe = clip(safe, truncatedNameLen) + "..."
	}
	return safe
}

// clip truncates to at most n bytes without splitting a multi-byte rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
