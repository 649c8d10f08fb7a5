package snake_test

import (
	"testing"

	"github.com/okian/draftassist/internal/domain/snake"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTeamForPick(t *testing.T) {
	Convey("Given a 10 team snake draft", t, func() {
		teams := 10

		Convey("Then round one runs forward and round two runs backward", func() {
			slot, ok := snake.TeamForPick(1, teams)
			So(ok, ShouldBeTrue)
			So(slot, ShouldEqual, 1)
			slot, _ = snake.TeamForPick(10, teams)
			So(slot, ShouldEqual, 10)
			slot, _ = snake.TeamForPick(11, teams)
			So(slot, ShouldEqual, 10)
			slot, _ = snake.TeamForPick(20, teams)
			So(slot, ShouldEqual, 1)
			slot, _ = snake.TeamForPick(21, teams)
			So(slot, ShouldEqual, 1)
		})
	})

	Convey("Given degenerate inputs", t, func() {
		_, ok := snake.TeamForPick(5, 0)
		So(ok, ShouldBeFalse)
		_, ok = snake.TeamForPick(0, 10)
		So(ok, ShouldBeFalse)
		_, ok = snake.PickNumberForTeamAndRound(0, 1, 0)
		So(ok, ShouldBeFalse)
		_, ok = snake.PickNumberForTeamAndRound(0, 0, 10)
		So(ok, ShouldBeFalse)
		_, ok = snake.Round(3, 0)
		So(ok, ShouldBeFalse)
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given every team count from 1 to 14", t, func() {
		for teams := 1; teams <= 14; teams++ {
			for pick := 1; pick <= teams*20; pick++ {
				slot, ok := snake.TeamForPick(pick, teams)
				So(ok, ShouldBeTrue)
				round, _ := snake.Round(pick, teams)
				back, ok := snake.PickNumberForTeamAndRound(slot-1, round, teams)
				So(ok, ShouldBeTrue)
				So(back, ShouldEqual, pick)
			}
		}
	})
}

func TestNextPickForTeam(t *testing.T) {
	Convey("Given a 12 team draft", t, func() {
		Convey("When the team is on the clock", func() {
			So(snake.NextPickForTeam(5, 5, 12), ShouldEqual, 5)
		})
		Convey("When the team picks on the turn", func() {
			So(snake.NextPickForTeam(13, 12, 12), ShouldEqual, 13)
			So(snake.NextPickForTeam(13, 1, 12), ShouldEqual, 24)
		})
		Convey("When the team slot does not exist", func() {
			So(snake.NextPickForTeam(13, 40, 12), ShouldEqual, 25)
		})
		Convey("When counting picks until a turn", func() {
			So(snake.PicksUntil(13, 24), ShouldEqual, 11)
			So(snake.PicksUntil(13, 13), ShouldEqual, 0)
		})
	})
}
