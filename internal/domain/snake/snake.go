// Package snake implements snake-draft arithmetic. Rounds, picks and team
// slots are all 1-based; every function reports false instead of dividing by
// a zero team count.
package snake

// Round returns the round a pick falls in.
func Round(pick, teams int) (int, bool) {
	if teams < 1 || pick < 1 {
		return 0, false
	}
	return (pick + teams - 1) / teams, true
}

// TeamForPick returns the 1-based team slot that owns a pick. Odd rounds run
// 1..N and even rounds run N..1.
func TeamForPick(pick, teams int) (int, bool) {
	round, ok := Round(pick, teams)
	if !ok {
		return 0, false
	}
	inRound := (pick-1)%teams + 1
	if round%2 == 1 {
		return inRound, true
	}
	return teams - inRound + 1, true
}

// PickNumberForTeamAndRound is the inverse of TeamForPick for a zero-based
// team slot.
func PickNumberForTeamAndRound(slot, round, teams int) (int, bool) {
	if teams < 1 || round < 1 || slot < 0 || slot >= teams {
		return 0, false
	}
	inRound := slot + 1
	if round%2 == 0 {
		inRound = teams - slot
	}
	return (round-1)*teams + inRound, true
}

// NextPickForTeam returns the first pick at or after current owned by team,
// scanning two rounds ahead. When the scan finds nothing it returns
// current+teams.
func NextPickForTeam(current, team, teams int) int {
	if teams < 1 {
		return current
	}
	for pick := current; pick <= current+2*teams; pick++ {
		if owner, ok := TeamForPick(pick, teams); ok && owner == team {
			return pick
		}
	}
	return current + teams
}

// PicksUntil counts the picks made by other teams before target.
func PicksUntil(current, target int) int {
	if target <= current {
		return 0
	}
	return target - current
}
