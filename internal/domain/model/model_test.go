package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParsePosition(t *testing.T) {
	convey.Convey("Given source position spellings", t, func() {
		convey.So(model.ParsePosition("qb"), convey.ShouldEqual, model.QB)
		convey.So(model.ParsePosition(" WR "), convey.ShouldEqual, model.WR)
		convey.So(model.ParsePosition("DEF"), convey.ShouldEqual, model.D)
		convey.So(model.ParsePosition("DST"), convey.ShouldEqual, model.D)
		convey.So(model.ParsePosition("D/ST"), convey.ShouldEqual, model.D)
		convey.So(model.ParsePosition("D"), convey.ShouldEqual, model.D)
		convey.So(model.ParsePosition("FLEX"), convey.ShouldEqual, model.Unknown)
		convey.So(model.ParsePosition(""), convey.ShouldEqual, model.Unknown)
	})

	convey.Convey("Given depth-chart slot keys", t, func() {
		convey.So(model.PositionFromSlot("QB1"), convey.ShouldEqual, model.QB)
		convey.So(model.PositionFromSlot("WR3"), convey.ShouldEqual, model.WR)
		convey.So(model.PositionFromSlot("TE2"), convey.ShouldEqual, model.TE)
		convey.So(model.PositionFromSlot("K"), convey.ShouldEqual, model.K)
		convey.So(model.PositionFromSlot("DEF"), convey.ShouldEqual, model.D)
		convey.So(model.PositionFromSlot("Notes"), convey.ShouldEqual, model.Unknown)
	})
}

func TestLeadingNumbers(t *testing.T) {
	convey.Convey("Given lenient numeric parsing", t, func() {
		convey.Convey("When parsing integers", func() {
			i, ok := model.LeadingInt("12abc")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(i, convey.ShouldEqual, 12)

			i, ok = model.LeadingInt(3.9)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(i, convey.ShouldEqual, 3)

			i, ok = model.LeadingInt(json.Number("7"))
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(i, convey.ShouldEqual, 7)

			_, ok = model.LeadingInt("n/a")
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = model.LeadingInt(nil)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When parsing floats", func() {
			f, ok := model.LeadingFloat("2.07")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(f, convey.ShouldEqual, 2.07)

			f, ok = model.LeadingFloat("245.5 pts")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(f, convey.ShouldEqual, 245.5)

			_, ok = model.LeadingFloat("")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When rendering opaque values as text", func() {
			convey.So(model.Text("3.01"), convey.ShouldEqual, "3.01")
			convey.So(model.Text(12.5), convey.ShouldEqual, "12.5")
			convey.So(model.Text(nil), convey.ShouldEqual, "")
		})
	})
}

func TestDraftedPlayerDisplayName(t *testing.T) {
	convey.Convey("Given drafted player records", t, func() {
		convey.So(model.DraftedPlayer{Name: "x", FirstName: "Ja'Marr", LastName: "Chase"}.DisplayName(), convey.ShouldEqual, "Ja'Marr Chase")
		convey.So(model.DraftedPlayer{Name: "Tom Brady"}.DisplayName(), convey.ShouldEqual, "Tom Brady")
		convey.So(model.DraftedPlayer{Name: "Tom Brady", FirstName: "Tom"}.DisplayName(), convey.ShouldEqual, "Tom Brady")
	})
}

func TestDraftStateAttribution(t *testing.T) {
	convey.Convey("Given a draft state with one unattributed pick", t, func() {
		p1 := model.DraftedPlayer{Name: "A", TeamID: 1, PickNumber: 1}
		p2 := model.DraftedPlayer{Name: "B", TeamID: 9, PickNumber: 2}
		state := model.DraftState{
			Teams:          []model.Team{{ID: 1, Picks: []model.DraftedPlayer{p1}, IsUserTeam: true}, {ID: 2}},
			DraftedPlayers: []model.DraftedPlayer{p1, p2},
			Unattributed:   []model.DraftedPlayer{p2},
			UserTeamID:     1,
		}

		convey.Convey("Then the attribution check accounts for it", func() {
			convey.So(state.AttributedPicks(), convey.ShouldEqual, 1)
			convey.So(state.AttributionHolds(), convey.ShouldBeTrue)
		})

		convey.Convey("Then the user team resolves by slot", func() {
			team, ok := state.UserTeam()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(team.ID, convey.ShouldEqual, 1)
		})

		convey.Convey("When the unattributed list is dropped", func() {
			state.Unattributed = nil

			convey.Convey("Then the check fails", func() {
				convey.So(state.AttributionHolds(), convey.ShouldBeFalse)
			})
		})
	})
}
