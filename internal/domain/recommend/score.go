package recommend

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
)

// Term weights.
const (
	needWeight     = 30
	rankCeiling    = 200
	rankWeight     = 0.125
	stackBonus     = 15
	byeClear       = 10
	byeOneConflict = 5
	balanceEmpty   = 10
	balanceDepth   = 8
	balanceMix     = 5
	reasonCount    = 3
)

var adpRoundPattern = regexp.MustCompile(`^(\d+)\.`)

// Breakdown holds the points of each scoring term.
type Breakdown struct {
	PositionNeed float64 `json:"positionNeed"`
	Rank         float64 `json:"rank"`
	ADPValue     float64 `json:"adpValue"`
	Stack        float64 `json:"stack"`
	ByeWeek      float64 `json:"byeWeek"`
	TeamBalance  float64 `json:"teamBalance"`
}

// Score is a scored candidate.
type Score struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
	// Reasons lists up to three contributing terms, highest first.
	Reasons []string `json:"reasons"`
}

type term struct {
	points float64
	reason string
}

// ScorePlayer scores a candidate for a roster in a given round. It reads
// nothing but its arguments.
func ScorePlayer(p model.Player, roster Roster, currentRound int) Score {
	var b Breakdown
	var terms []term

	need := roster.Needs[p.Position]
	b.PositionNeed = float64(need * needWeight)
	terms = append(terms, term{b.PositionNeed, fmt.Sprintf("Fills a %s need (%d open)", p.Position, need)})

	b.Rank = max(0, float64(rankCeiling-p.Rank)*rankWeight)
	terms = append(terms, term{b.Rank, fmt.Sprintf("Ranked #%d overall", p.Rank)})

	if adpRound, ok := ADPRound(p.ADPText()); ok {
		b.ADPValue = adpValue(currentRound - adpRound)
		terms = append(terms, term{b.ADPValue, fmt.Sprintf("Round %d ADP in round %d", adpRound, currentRound)})
	}

	if p.Position == model.WR || p.Position == model.TE {
		for _, qb := range roster.qbs() {
			if names.Equal(qb.team, p.Team) {
				b.Stack = stackBonus
				terms = append(terms, term{b.Stack, fmt.Sprintf("Stacks with %s (%s)", qb.name, qb.team)})
				break
			}
		}
	}

	conflicts := 0
	if p.Bye > 0 {
		conflicts = roster.ByeCounts[p.Bye]
	}
	switch conflicts {
	case 0:
		b.ByeWeek = byeClear
		terms = append(terms, term{b.ByeWeek, "No bye week conflict"})
	case 1:
		b.ByeWeek = byeOneConflict
		terms = append(terms, term{b.ByeWeek, fmt.Sprintf("One bye week %d conflict", p.Bye)})
	}

	b.TeamBalance, terms = balance(p.Position, roster.Counts, terms)

	s := Score{
		Total:     b.PositionNeed + b.Rank + b.ADPValue + b.Stack + b.ByeWeek + b.TeamBalance,
		Breakdown: b,
	}
	s.Reasons = topReasons(terms)
	return s
}

// ADPRound reads the leading round of an ADP like "3.07".
func ADPRound(adp string) (int, bool) {
	m := adpRoundPattern.FindStringSubmatch(adp)
	if m == nil {
		return 0, false
	}
	r, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return r, true
}

func adpValue(roundDiff int) float64 {
	switch {
	case roundDiff >= 2:
		return 10
	case roundDiff == 1:
		return 7
	case roundDiff == 0:
		return 5
	case roundDiff == -1:
		return 2
	default:
		return 0
	}
}

func balance(pos model.Position, counts map[model.Position]int, terms []term) (float64, []term) {
	rb, wr := counts[model.RB], counts[model.WR]
	switch {
	case (pos == model.QB || pos == model.TE || pos == model.K || pos == model.D) && counts[pos] == 0:
		return balanceEmpty, append(terms, term{balanceEmpty, fmt.Sprintf("No %s on the roster yet", pos)})
	case (pos == model.RB || pos == model.WR) && counts[pos] < 2:
		return balanceDepth, append(terms, term{balanceDepth, fmt.Sprintf("Builds %s depth", pos)})
	case pos == model.WR && rb > wr, pos == model.RB && wr > rb:
		return balanceMix, append(terms, term{balanceMix, "Evens out the RB/WR mix"})
	default:
		return 0, terms
	}
}

func topReasons(terms []term) []string {
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].points > terms[j].points })
	out := make([]string, 0, reasonCount)
	for _, t := range terms {
		if t.points <= 0 || len(out) == reasonCount {
			break
		}
		out = append(out, t.reason)
	}
	return out
}
