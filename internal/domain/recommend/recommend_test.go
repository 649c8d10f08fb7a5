package recommend_test

import (
	"errors"
	"testing"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

func pick(name string, pos model.Position) model.DraftedPlayer {
	return model.DraftedPlayer{Name: name, Position: pos}
}

func catalogFixture() []model.Player {
	return []model.Player{
		{Name: "Bijan Robinson", Position: model.RB, Team: "ATL", Rank: 3, Tier: 1, Bye: 10, ProjectedPoints: 280},
		{Name: "Breece Hall", Position: model.RB, Team: "NYJ", Rank: 8, Tier: 1, Bye: 7, ProjectedPoints: 250},
		{Name: "Patrick Mahomes", Position: model.QB, Team: "KC", Rank: 30, Tier: 3, Bye: 6, ProjectedPoints: 370},
		{Name: "Rashee Rice", Position: model.WR, Team: "KC", Rank: 40, Tier: 4, Bye: 10, ADP: "3.05"},
		{Name: "Travis Kelce", Position: model.TE, Team: "KC", Rank: 45, Tier: 4, Bye: 6, ADP: "4.01"},
		{Name: "Brandon Aubrey", Position: model.K, Team: "DAL", Rank: 150, Tier: 11, Bye: 7},
		{Name: "Ravens", Position: model.D, Team: "BAL", Rank: 160, Tier: 11, Bye: 14},
		{Name: "Deep Sleeper", Position: model.WR, Team: "CAR", Rank: 260, Tier: 11},
		{Name: "Deeper Sleeper", Position: model.WR, Team: "CAR", Rank: 250, Tier: 11},
	}
}

func TestPositionNeeds(t *testing.T) {
	Convey("Given a roster with two running backs and no receivers", t, func() {
		counts := recommend.PositionCounts([]model.DraftedPlayer{pick("A", model.RB), pick("B", model.RB)})
		needs := recommend.PositionNeeds(counts)

		Convey("Then needs follow the ideal roster shape", func() {
			So(needs, ShouldResemble, map[model.Position]int{
				model.QB: 1, model.RB: 0, model.WR: 2, model.TE: 1, model.K: 1, model.D: 1,
			})
		})
	})
}

func TestScorePlayer(t *testing.T) {
	Convey("Given a roster with a KC quarterback and two backs", t, func() {
		catalog := catalogFixture()
		idx := recommend.NewIndex(catalog)
		roster := recommend.NewRoster([]model.DraftedPlayer{
			pick("Patrick Mahomes", model.QB),
			pick("Bijan Robinson", model.RB),
			pick("Breece Hall", model.RB),
		}, idx)
		rice := catalog[3]

		Convey("When scoring a KC receiver in round five", func() {
			s := recommend.ScorePlayer(rice, roster, 5)

			Convey("Then every term is applied", func() {
				So(s.Breakdown.PositionNeed, ShouldEqual, 60)
				So(s.Breakdown.Rank, ShouldEqual, 20)
				So(s.Breakdown.ADPValue, ShouldEqual, 10)
				So(s.Breakdown.Stack, ShouldEqual, 15)
				So(s.Breakdown.ByeWeek, ShouldEqual, 5)
				So(s.Breakdown.TeamBalance, ShouldEqual, 8)
				So(s.Total, ShouldEqual, 118)
			})

			Convey("Then the top three reasons are in score order", func() {
				So(len(s.Reasons), ShouldEqual, 3)
				So(s.Reasons[0], ShouldContainSubstring, "WR need")
				So(s.Reasons[1], ShouldContainSubstring, "#40")
				So(s.Reasons[2], ShouldContainSubstring, "Patrick Mahomes")
			})

			Convey("Then repeated calls are identical", func() {
				So(recommend.ScorePlayer(rice, roster, 5), ShouldResemble, s)
			})
		})

		Convey("When ADP rounds differ from the current round", func() {
			So(recommend.ScorePlayer(rice, roster, 4).Breakdown.ADPValue, ShouldEqual, 7)
			So(recommend.ScorePlayer(rice, roster, 3).Breakdown.ADPValue, ShouldEqual, 5)
			So(recommend.ScorePlayer(rice, roster, 2).Breakdown.ADPValue, ShouldEqual, 2)
			So(recommend.ScorePlayer(rice, roster, 1).Breakdown.ADPValue, ShouldEqual, 0)
		})

		Convey("When the candidate's bye collides with two rostered players", func() {
			twice := recommend.NewRoster([]model.DraftedPlayer{
				pick("Bijan Robinson", model.RB),
				pick("Rashee Rice", model.WR),
			}, idx)
			p := model.Player{Name: "X", Position: model.TE, Rank: 300, Bye: 10}
			s := recommend.ScorePlayer(p, twice, 5)
			So(s.Breakdown.ByeWeek, ShouldEqual, 0)
			So(s.Breakdown.Rank, ShouldEqual, 0)
			So(s.Breakdown.TeamBalance, ShouldEqual, 10)
		})

		Convey("When a receiver would even out a back-heavy roster", func() {
			heavy := recommend.NewRoster([]model.DraftedPlayer{
				pick("a", model.RB), pick("b", model.RB), pick("c", model.RB),
				pick("d", model.WR), pick("e", model.WR),
			}, idx)
			s := recommend.ScorePlayer(model.Player{Name: "W", Position: model.WR, Rank: 300}, heavy, 8)
			So(s.Breakdown.TeamBalance, ShouldEqual, 5)
		})
	})

	Convey("Given ADP strings", t, func() {
		r, ok := recommend.ADPRound("12.03")
		So(ok, ShouldBeTrue)
		So(r, ShouldEqual, 12)
		_, ok = recommend.ADPRound("12")
		So(ok, ShouldBeFalse)
		_, ok = recommend.ADPRound("")
		So(ok, ShouldBeFalse)
	})
}

func TestRank(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		catalog := catalogFixture()
		roster := recommend.NewRoster(nil, recommend.NewIndex(catalog))

		Convey("When ranking in round five", func() {
			recs := recommend.New(recommend.WithLimit(20)).Rank(catalog, roster, 5)

			Convey("Then kickers and defenses are excluded", func() {
				for _, r := range recs {
					So(r.Player.Position, ShouldNotEqual, model.K)
					So(r.Player.Position, ShouldNotEqual, model.D)
				}
				So(len(recs), ShouldEqual, 7)
			})

			Convey("Then totals descend and equal totals go to the lower rank", func() {
				for i := 1; i < len(recs); i++ {
					So(recs[i-1].Total, ShouldBeGreaterThanOrEqualTo, recs[i].Total)
				}
				So(recs[0].Player.Name, ShouldEqual, "Rashee Rice")
				So(recs[3].Total, ShouldEqual, recs[4].Total)
				So(recs[3].Player.Name, ShouldEqual, "Deeper Sleeper")
				So(recs[4].Player.Name, ShouldEqual, "Deep Sleeper")
			})
		})

		Convey("When ranking late in the draft", func() {
			recs := recommend.New(recommend.WithLimit(20)).Rank(catalog, roster, 13)
			So(len(recs), ShouldEqual, 8)
			recs = recommend.New(recommend.WithLimit(20)).Rank(catalog, roster, 14)
			So(len(recs), ShouldEqual, 9)
		})

		Convey("When using the default limit", func() {
			So(len(recommend.New().Rank(catalog, roster, 14)), ShouldEqual, 6)
		})
	})
}

func TestRecommend(t *testing.T) {
	Convey("Given a two team draft where the user holds slot 2", t, func() {
		catalog := catalogFixture()
		mine := []model.DraftedPlayer{pick("Patrick Mahomes", model.QB)}
		state := &model.DraftState{
			CurrentPick: 3,
			TotalTeams:  2,
			TotalRounds: 10,
			TotalPicks:  20,
			UserTeamID:  2,
			Teams: []model.Team{
				{ID: 1, Picks: []model.DraftedPlayer{pick("Bijan Robinson", model.RB)}},
				{ID: 2, Picks: mine, IsUserTeam: true},
			},
			DraftedPlayers: []model.DraftedPlayer{pick("Bijan Robinson", model.RB), mine[0]},
		}
		available := append([]model.Player{catalog[1]}, catalog[3:]...)

		report, err := recommend.New().Recommend(state, catalog, available)

		Convey("Then the report is built for the user's team", func() {
			So(err, ShouldBeNil)
			So(report.UserTeamID, ShouldEqual, 2)
			So(report.CurrentRound, ShouldEqual, 2)
			So(report.UserNextPick, ShouldEqual, 3)
			So(report.PositionNeeds[model.QB], ShouldEqual, 0)
			So(len(report.Recommendations), ShouldEqual, 5)
			So(report.Recommendations[0].Player.Name, ShouldEqual, "Rashee Rice")
		})

		Convey("Then stacks pair the QB with KC pass catchers by ADP", func() {
			So(len(report.Stacks), ShouldEqual, 1)
			So(report.Stacks[0].Team, ShouldEqual, "KC")
			So(report.Stacks[0].Targets[0].Name, ShouldEqual, "Rashee Rice")
			So(report.Stacks[0].Targets[1].Name, ShouldEqual, "Travis Kelce")
		})

		Convey("Then scarcity flags thin positions", func() {
			So(report.Scarcity[model.QB].Level, ShouldEqual, recommend.ScarcityCritical)
			So(report.ScarcityAlerts, ShouldContain, model.QB)
		})

		Convey("Then the projection stops at the user's turn", func() {
			So(report.Projection.NextPick, ShouldEqual, 3)
			So(report.Projection.PicksUntilTurn, ShouldEqual, 0)
		})
	})

	Convey("Given a draft with no user team", t, func() {
		_, err := recommend.New().Recommend(&model.DraftState{TotalTeams: 2}, nil, nil)
		So(errors.Is(err, recommend.ErrNoUserTeam), ShouldBeTrue)
		_, err = recommend.New().Recommend(nil, nil, nil)
		So(errors.Is(err, recommend.ErrNoUserTeam), ShouldBeTrue)
	})
}

func TestTierDrops(t *testing.T) {
	Convey("Given available players with tier cliffs", t, func() {
		available := []model.Player{
			{Position: model.QB, Tier: 1}, {Position: model.QB, Tier: 1}, {Position: model.QB, Tier: 3},
			{Position: model.RB, Tier: 1}, {Position: model.RB, Tier: 2},
			{Position: model.WR, Tier: 1}, {Position: model.WR, Tier: 1}, {Position: model.WR, Tier: 1},
			{Position: model.WR, Tier: 1}, {Position: model.WR, Tier: 4},
			{Position: model.TE, Tier: 2}, {Position: model.TE, Tier: 2}, {Position: model.TE, Tier: 2}, {Position: model.TE, Tier: 5},
		}

		drops := recommend.TierDrops(available)

		Convey("Then only near drops of two or more tiers alert", func() {
			So(drops, ShouldContainKey, model.QB)
			So(drops[model.QB], ShouldResemble, recommend.TierDrop{CurrentTier: 1, NextTier: 3, PlayersUntilDrop: 2, NextPickInRange: true})
			So(drops, ShouldNotContainKey, model.RB)
			So(drops, ShouldNotContainKey, model.WR)
			So(drops[model.TE].PlayersUntilDrop, ShouldEqual, 3)
			So(drops[model.TE].NextPickInRange, ShouldBeFalse)
		})
	})
}

func TestProjectionAndValues(t *testing.T) {
	Convey("Given a ten team draft at pick 4 with the user at slot 8", t, func() {
		state := &model.DraftState{CurrentPick: 4, TotalTeams: 10, TotalPicks: 150}
		available := []model.Player{
			{Name: "NoADP", Rank: 1},
			{Name: "Late", Rank: 2, ADP: "9.5"},
			{Name: "Early", Rank: 3, ADP: "2.5"},
			{Name: "Mid", Rank: 4, ADP: "5"},
			{Name: "Another", Rank: 5},
		}

		pr := recommend.Project(state, 8, available)

		Convey("Then players with ADP come first in ADP order", func() {
			So(pr.NextPick, ShouldEqual, 8)
			So(pr.PicksUntilTurn, ShouldEqual, 4)
			So(len(pr.Players), ShouldEqual, 4)
			So(pr.Players[0].Name, ShouldEqual, "Early")
			So(pr.Players[2].Name, ShouldEqual, "Late")
			So(pr.Players[3].Name, ShouldEqual, "NoADP")
		})

		Convey("Then value analysis orders by distance from rank", func() {
			values := recommend.Values(available)
			So(len(values), ShouldEqual, 3)
			So(values[0].Player.Name, ShouldEqual, "Late")
			So(values[0].IsValue, ShouldBeTrue)
			So(values[0].Value, ShouldEqual, 7.5)
		})
	})
}

func TestAnalyzeTeam(t *testing.T) {
	Convey("Given a back-heavy team", t, func() {
		catalog := []model.Player{
			{Name: "A", Position: model.RB, Tier: 1, Bye: 7, ProjectedPoints: 200},
			{Name: "B", Position: model.RB, Tier: 2, Bye: 7, ProjectedPoints: 150},
			{Name: "C", Position: model.RB, Tier: 8, Bye: 12},
			{Name: "D", Position: model.WR, Tier: 5, ProjectedPoints: 100},
		}
		state := &model.DraftState{
			UserTeamID: 1,
			Teams: []model.Team{{ID: 1, Name: "Mine", IsUserTeam: true, Picks: []model.DraftedPlayer{
				pick("A", model.RB), pick("B", model.RB), pick("C", model.RB), pick("D", model.WR), pick("Nobody", model.TE),
			}}},
		}

		a, err := recommend.AnalyzeTeam(state, catalog, 0)

		Convey("Then composition, tiers and byes are summarized", func() {
			So(err, ShouldBeNil)
			So(a.TotalPlayers, ShouldEqual, 5)
			So(a.TeamType, ShouldEqual, recommend.TeamRBHeavy)
			So(a.BalanceScore, ShouldEqual, 33)
			So(a.TopTiers, ShouldEqual, 2)
			So(a.MidTiers, ShouldEqual, 1)
			So(a.LateTiers, ShouldEqual, 1)
			So(a.ProjectedPoints[model.RB], ShouldEqual, 350)
			So(a.ByeWeeks, ShouldResemble, []int{7, 12})
			So(len(a.ByeConflicts), ShouldEqual, 1)
			So(a.ByeConflicts[0].Week, ShouldEqual, 7)
			So(len(a.ByeOverview), ShouldEqual, 10)
			So(a.ByeOverview[2].HasConflict, ShouldBeTrue)
		})

		Convey("Then unknown slots are rejected", func() {
			_, err := recommend.AnalyzeTeam(state, catalog, 9)
			So(errors.Is(err, recommend.ErrUnknownTeam), ShouldBeTrue)
		})
	})
}
