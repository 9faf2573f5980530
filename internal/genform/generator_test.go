package genform_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/athid/kallelse/internal/adapters/spreadsheet"
	"github.com/athid/kallelse/internal/genform"
	"github.com/athid/kallelse/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generator configuration", t, func() {
		if err := logger.Init(); err != nil {
			t.Fatalf("init logger: %v", err)
		}
		ctx := context.Background()

		Convey("When generating a workbook", func() {
			output := filepath.Join(t.TempDir(), "form.xlsx")
			cfg := &genform.Config{
				Players:          12,
				HomeMatches:      3,
				AwayMatches:      3,
				GKShare:          0.25,
				ReserveShare:     0.5,
				AvailabilityRate: 0.75,
				Seed:             42,
				Output:           output,
			}
			err := genform.Run(ctx, cfg)

			Convey("Then the allocation reader can parse it back", func() {
				So(err, ShouldBeNil)

				src, err := spreadsheet.Read(ctx, output, "Formulärsvar 1 (exakt)")
				So(err, ShouldBeNil)
				So(src.Roster.Len(), ShouldEqual, 12)
				So(src.Matches, ShouldHaveLength, 6)
				So(src.DuplicatesDropped, ShouldEqual, 0)
			})
		})

		Convey("When the shape is invalid", func() {
			err := genform.Run(ctx, &genform.Config{Players: 0})

			Convey("Then generation fails with ErrInvalidShape", func() {
				So(err, ShouldWrap, genform.ErrInvalidShape)
			})
		})
	})
}
