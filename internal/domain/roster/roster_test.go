package roster_test

import (
	"testing"

	"github.com/athid/kallelse/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRosterAdd(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		r := roster.New()

		Convey("When adding players", func() {
			added1 := r.Add(&roster.Player{Name: "Alva", Ordinal: 1})
			added2 := r.Add(&roster.Player{Name: "Boel", Ordinal: 2})

			Convey("Then both should be added in order", func() {
				So(added1, ShouldBeTrue)
				So(added2, ShouldBeTrue)
				So(r.Len(), ShouldEqual, 2)
				players := r.Players()
				So(players[0].Name, ShouldEqual, "Alva")
				So(players[1].Name, ShouldEqual, "Boel")
			})
		})

		Convey("When a player submits the form twice", func() {
			first := &roster.Player{Name: "Alva", Ordinal: 1, WillingGoalkeeper: true}
			second := &roster.Player{Name: "Alva", Ordinal: 5}
			So(r.Add(first), ShouldBeTrue)
			So(r.Add(second), ShouldBeFalse)

			Convey("Then the first submission wins", func() {
				So(r.Len(), ShouldEqual, 1)
				So(r.Lookup("Alva"), ShouldEqual, first)
				So(r.Lookup("Alva").WillingGoalkeeper, ShouldBeTrue)
			})
		})

		Convey("When adding a player without a name", func() {
			So(r.Add(&roster.Player{Ordinal: 3}), ShouldBeFalse)
			So(r.Add(nil), ShouldBeFalse)
			So(r.Len(), ShouldEqual, 0)
		})
	})
}

func TestRosterOrdering(t *testing.T) {
	Convey("Given players added out of ordinal order", t, func() {
		r := roster.New()
		So(r.Add(&roster.Player{Name: "Cleo", Ordinal: 3}), ShouldBeTrue)
		So(r.Add(&roster.Player{Name: "Alva", Ordinal: 1}), ShouldBeTrue)
		So(r.Add(&roster.Player{Name: "Boel", Ordinal: 2}), ShouldBeTrue)

		Convey("Then Players() should order by the explicit ordinal key", func() {
			players := r.Players()
			So(players[0].Name, ShouldEqual, "Alva")
			So(players[1].Name, ShouldEqual, "Boel")
			So(players[2].Name, ShouldEqual, "Cleo")
		})
	})
}

func TestCounters(t *testing.T) {
	Convey("Given a player", t, func() {
		p := &roster.Player{Name: "Alva", Ordinal: 1}

		Convey("When recording call-ups", func() {
			p.RecordHomeCall()
			p.RecordHomeCall()
			p.RecordAwayCall()
			p.RecordGKCall()
			p.RecordReserveCall()
			p.RecordHomeAppearance()
			p.RecordAwayAppearance()

			Convey("Then counters should only accumulate", func() {
				So(p.HomeCalls(), ShouldEqual, 2)
				So(p.AwayCalls(), ShouldEqual, 1)
				So(p.TotalCalls(), ShouldEqual, 3)
				So(p.GKCalls(), ShouldEqual, 1)
				So(p.ReserveCalls(), ShouldEqual, 1)
				So(p.HomeMatches(), ShouldEqual, 1)
				So(p.AwayMatches(), ShouldEqual, 1)
			})
		})
	})
}

func TestDeriveAwayWillingness(t *testing.T) {
	Convey("Given a roster with seeded away-willingness", t, func() {
		r := roster.New()
		So(r.Add(&roster.Player{Name: "Alva", Ordinal: 1, AwayWilling: true}), ShouldBeTrue)
		So(r.Add(&roster.Player{Name: "Boel", Ordinal: 2, AwayWilling: false}), ShouldBeTrue)

		Convey("When no away-response data exists", func() {
			r.DeriveAwayWillingness(nil)

			Convey("Then the seeded flags are kept", func() {
				So(r.Derived(), ShouldBeFalse)
				So(r.Lookup("Alva").AwayWilling, ShouldBeTrue)
				So(r.Lookup("Boel").AwayWilling, ShouldBeFalse)
			})
		})

		Convey("When away-response counts are provided", func() {
			counts := map[string]int{"Alva": 0, "Boel": 2}
			r.DeriveAwayWillingness(counts)

			Convey("Then willingness follows the counts", func() {
				So(r.Derived(), ShouldBeTrue)
				So(r.Lookup("Alva").AwayWilling, ShouldBeFalse)
				So(r.Lookup("Boel").AwayWilling, ShouldBeTrue)
			})

			Convey("And deriving twice yields the same result as once", func() {
				r.DeriveAwayWillingness(counts)
				So(r.Lookup("Alva").AwayWilling, ShouldBeFalse)
				So(r.Lookup("Boel").AwayWilling, ShouldBeTrue)
			})
		})
	})
}
