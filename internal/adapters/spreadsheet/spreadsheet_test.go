package spreadsheet_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/athid/kallelse/internal/adapters/spreadsheet"
	"github.com/athid/kallelse/internal/domain/allocate"
	"github.com/athid/kallelse/internal/domain/report"
	"github.com/athid/kallelse/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

const testSheet = "Formulärsvar 1 (exakt)"

// writeFormWorkbook creates a small form-responses workbook on disk.
func writeFormWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", testSheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(testSheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "form.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func formRows() [][]interface{} {
	return [][]interface{}{
		{"Spelare", "Barnets namn", "Målvakt", "Reserv", "Match 1 mot AIK (Hemma)", "Match 2 mot Nacka (Borta)"},
		{1, "Alva", "Ja", "Nej", "Ja", "Ja"},
		{2, "Boel", "Nej", "Ja", "Ja", "Nej"},
		{3, "Cleo", "nej", "ja", "nej", "ja"},
		{4, "Alva", "Nej", "Nej", "Ja", "Ja"}, // duplicate submission
	}
}

func TestRead(t *testing.T) {
	Convey("Given a form-responses workbook", t, func() {
		ctx := context.Background()
		path := writeFormWorkbook(t, formRows())

		Convey("When reading the sheet", func() {
			src, err := spreadsheet.Read(ctx, path, testSheet)

			Convey("Then parsing succeeds", func() {
				So(err, ShouldBeNil)
				So(src, ShouldNotBeNil)
			})

			Convey("And the roster keeps the first submission per player", func() {
				So(src.Roster.Len(), ShouldEqual, 3)
				So(src.DuplicatesDropped, ShouldEqual, 1)
				alva := src.Roster.Lookup("Alva")
				So(alva, ShouldNotBeNil)
				So(alva.Ordinal, ShouldEqual, 1)
				So(alva.WillingGoalkeeper, ShouldBeTrue)
				So(alva.WillingMoreMatches, ShouldBeFalse)
				So(src.Roster.Lookup("Boel").WillingMoreMatches, ShouldBeTrue)
			})

			Convey("And match columns are classified by venue", func() {
				So(src.Matches, ShouldHaveLength, 2)
				So(src.Matches[0].Venue, ShouldEqual, schedule.VenueHome)
				So(src.Matches[1].Venue, ShouldEqual, schedule.VenueAway)
			})

			Convey("And availability follows the yes answers", func() {
				home, away := src.Matches[0], src.Matches[1]
				So(home.Available.Contains("Alva"), ShouldBeTrue)
				So(home.Available.Contains("Boel"), ShouldBeTrue)
				So(home.Available.Contains("Cleo"), ShouldBeFalse)
				So(away.Available.Contains("Alva"), ShouldBeTrue)
				So(away.Available.Contains("Boel"), ShouldBeFalse)
				So(away.Available.Contains("Cleo"), ShouldBeTrue)
			})

			Convey("And away-response counts come from the away columns", func() {
				So(src.AwayResponseCounts, ShouldNotBeNil)
				So(src.AwayResponseCounts["Alva"], ShouldEqual, 1)
				So(src.AwayResponseCounts["Boel"], ShouldEqual, 0)
				So(src.AwayResponseCounts["Cleo"], ShouldEqual, 1)
			})
		})

		Convey("When the sheet name does not exist", func() {
			_, err := spreadsheet.Read(ctx, path, "Blad 2")

			Convey("Then it fails fast with ErrSheetNotFound", func() {
				So(err, ShouldWrap, spreadsheet.ErrSheetNotFound)
			})
		})

		Convey("When the workbook path does not exist", func() {
			_, err := spreadsheet.Read(ctx, filepath.Join(t.TempDir(), "missing.xlsx"), testSheet)

			Convey("Then it fails fast with ErrOpenWorkbook", func() {
				So(err, ShouldWrap, spreadsheet.ErrOpenWorkbook)
			})
		})
	})

	Convey("Given a workbook without the required columns", t, func() {
		path := writeFormWorkbook(t, [][]interface{}{
			{"Barnets namn", "Match 1 (Hemma)"},
			{"Alva", "Ja"},
		})

		Convey("When reading the sheet", func() {
			_, err := spreadsheet.Read(context.Background(), path, testSheet)

			Convey("Then it fails fast with ErrMissingColumn", func() {
				So(err, ShouldWrap, spreadsheet.ErrMissingColumn)
			})
		})
	})

	Convey("Given a workbook without match columns", t, func() {
		path := writeFormWorkbook(t, [][]interface{}{
			{"Barnets namn", "Målvakt", "Reserv"},
			{"Alva", "Ja", "Nej"},
		})

		Convey("When reading the sheet", func() {
			_, err := spreadsheet.Read(context.Background(), path, testSheet)

			Convey("Then it fails fast with ErrNoMatchColumns", func() {
				So(err, ShouldWrap, spreadsheet.ErrNoMatchColumns)
			})
		})
	})

	Convey("Given a workbook with an explicit away-response column", t, func() {
		path := writeFormWorkbook(t, [][]interface{}{
			{"Barnets namn", "Målvakt", "Reserv", "#Borta svar", "Match 1 (Hemma)"},
			{"Alva", "Ja", "Nej", 2, "Ja"},
			{"Boel", "Nej", "Ja", 0, "Ja"},
		})

		Convey("When reading the sheet", func() {
			src, err := spreadsheet.Read(context.Background(), path, testSheet)

			Convey("Then the column wins over counting yes answers", func() {
				So(err, ShouldBeNil)
				So(src.AwayResponseCounts["Alva"], ShouldEqual, 2)
				So(src.AwayResponseCounts["Boel"], ShouldEqual, 0)
			})
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a parsed and allocated season", t, func() {
		ctx := context.Background()
		path := writeFormWorkbook(t, formRows())
		src, err := spreadsheet.Read(ctx, path, testSheet)
		So(err, ShouldBeNil)

		src.Roster.DeriveAwayWillingness(src.AwayResponseCounts)
		a := allocate.New(allocate.WithSlotTarget(2), allocate.WithRequireExactReserveFour(false))
		outcomes := a.Run(ctx, src.Roster, src.Matches)
		rep := report.Render(src.Roster, outcomes)

		outPath := filepath.Join(t.TempDir(), "allocation.xlsx")

		Convey("When writing the output workbook", func() {
			err := spreadsheet.Write(ctx, outPath, src, rep)
			So(err, ShouldBeNil)

			f, err := excelize.OpenFile(outPath)
			So(err, ShouldBeNil)
			defer func() { _ = f.Close() }()

			Convey("Then the main sheet carries the overview columns", func() {
				rows, err := f.GetRows(testSheet)
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 4) // header + three players

				header := rows[0]
				So(header, ShouldContain, report.ColHomeCalls)
				So(header, ShouldContain, report.ColAwayCalls)
				So(header, ShouldContain, report.ColTotalCalls)
				So(header, ShouldContain, report.ColReserveCalls)
				So(header, ShouldContain, report.ColGKCalls)
				So(header, ShouldContain, "Match 1 mot AIK (Hemma)")
				So(header[0], ShouldEqual, "Spelare")
				So(header[1], ShouldEqual, "Barnets namn")
			})

			Convey("And every match gets its own tab with labeled rows", func() {
				for _, m := range src.Matches {
					rows, err := f.GetRows(m.Title)
					So(err, ShouldBeNil)
					So(len(rows), ShouldBeGreaterThanOrEqualTo, 3)
					So(rows[0][0], ShouldEqual, report.RowGoalkeeper)
				}
			})
		})
	})
}
