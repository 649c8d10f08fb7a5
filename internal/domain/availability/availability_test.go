package availability_test

import (
	"errors"
	"testing"

	"github.com/okian/draftassist/internal/domain/availability"
	"github.com/okian/draftassist/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func catalogFixture() []model.Player {
	return []model.Player{
		{Name: "Christian McCaffrey", Position: model.RB, Team: "SF", Rank: 1, ADP: "1.01", ProjectedPoints: 330},
		{Name: "Justin Jefferson", Position: model.WR, Team: "MIN", Rank: 2, ADP: "1.03", ProjectedPoints: 310},
		{Name: "Travis Kelce", Position: model.TE, Team: "KC", Rank: 15, ADP: "2.04", ProjectedPoints: 240},
		{Name: "Patrick Mahomes", Position: model.QB, Team: "KC", Rank: 20, ProjectedPoints: 380},
		{Name: "Kenneth Walker III", Position: model.RB, Team: "SEA", Rank: 30, ADP: "3.02"},
	}
}

func TestAvailable(t *testing.T) {
	Convey("Given a catalog and a draft with three picks", t, func() {
		catalog := catalogFixture()
		state := &model.DraftState{DraftedPlayers: []model.DraftedPlayer{
			{Name: "Unknown Player", FirstName: "Justin", LastName: "Jefferson"},
			{Name: "TRAVIS KELCE"},
			{Name: "Kenneth Walker"},
			{Name: "  "},
		}}

		available := availability.Available(catalog, state)

		Convey("Then picks are removed by case-insensitive exact name", func() {
			So(len(available), ShouldEqual, 3)
			So(available[0].Name, ShouldEqual, "Christian McCaffrey")
			So(available[1].Name, ShouldEqual, "Patrick Mahomes")
		})

		Convey("Then a spelling mismatch leaves the player listed", func() {
			So(available[2].Name, ShouldEqual, "Kenneth Walker III")
		})

		Convey("Then filtering again with no new picks is idempotent", func() {
			So(availability.Available(available, state), ShouldResemble, available)
			So(availability.Available(catalog, state), ShouldResemble, available)
		})

		Convey("Then the input catalog is untouched", func() {
			So(len(catalog), ShouldEqual, 5)
		})

		Convey("Then empty drafted names are dropped", func() {
			So(len(availability.DraftedNames(state)), ShouldEqual, 3)
		})
	})

	Convey("Given no draft state", t, func() {
		So(len(availability.Available(catalogFixture(), nil)), ShouldEqual, 5)
	})
}

func TestFilter(t *testing.T) {
	Convey("Given a player view", t, func() {
		players := catalogFixture()

		Convey("When filtering by position", func() {
			out, err := availability.Filter(players, availability.Query{Position: "rb"})
			So(err, ShouldBeNil)
			So(len(out), ShouldEqual, 2)
			out, err = availability.Filter(players, availability.Query{Position: "ALL"})
			So(err, ShouldBeNil)
			So(len(out), ShouldEqual, 5)
		})

		Convey("When searching by name or team", func() {
			out, _ := availability.Filter(players, availability.Query{Search: "kc"})
			So(len(out), ShouldEqual, 2)
			out, _ = availability.Filter(players, availability.Query{Search: "mahomes"})
			So(len(out), ShouldEqual, 1)
		})

		Convey("When sorting by ADP", func() {
			out, _ := availability.Filter(players, availability.Query{Sort: availability.SortADP})
			So(out[0].Name, ShouldEqual, "Christian McCaffrey")
			So(out[3].Name, ShouldEqual, "Kenneth Walker III")
			So(out[4].Name, ShouldEqual, "Patrick Mahomes")
		})

		Convey("When sorting by projection and limiting", func() {
			out, _ := availability.Filter(players, availability.Query{Sort: availability.SortProjected, Limit: 2})
			So(len(out), ShouldEqual, 2)
			So(out[0].Name, ShouldEqual, "Patrick Mahomes")
		})

		Convey("When sorting by name", func() {
			out, _ := availability.Filter(players, availability.Query{Sort: availability.SortName})
			So(out[0].Name, ShouldEqual, "Christian McCaffrey")
			So(out[4].Name, ShouldEqual, "Travis Kelce")
		})

		Convey("When the query is invalid", func() {
			_, err := availability.Filter(players, availability.Query{Position: "LB"})
			So(errors.Is(err, availability.ErrInvalidQuery), ShouldBeTrue)
			_, err = availability.Filter(players, availability.Query{Sort: "vibes"})
			So(errors.Is(err, availability.ErrInvalidQuery), ShouldBeTrue)
		})
	})
}
