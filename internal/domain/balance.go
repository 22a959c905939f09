package domain

// MoveReason explains why the planner scheduled a reassignment.
type MoveReason string

const (
	ReasonGoalieCoverage MoveReason = "goalie_coverage"
	ReasonAnchorCoverage MoveReason = "anchor_coverage"
	ReasonTeamMinimum    MoveReason = "team_minimum"
	ReasonTeamBalance    MoveReason = "team_balance"
)

// BalanceMove is a single planned reassignment. Moves are ephemeral: the
// planner produces them, the match controller's executor applies them once
// in order, then they are discarded.
type BalanceMove struct {
	PlayerID string
	From     Slot
	To       Slot
	Reason   MoveReason
}

// coveragePriority is the order in which movable players are considered for
// goaltender and anchor coverage: wings first, then defense. Centers and
// goaltenders are never pulled to cover another mandatory slot.
var coveragePriority = []Position{
	PositionLeftWing,
	PositionRightWing,
	PositionLeftDefense,
	PositionRightDefense,
}

// PlanBalance inspects the locked roster and produces the ordered list of
// moves needed to satisfy roster constraints: a goaltender and a center on
// each team, each team at or above minPerTeam, and team sizes within one of
// each other. It is a pure computation over a snapshot view; each phase
// evaluates the roster as it would look after the prior planned moves, and
// no player is ever moved twice within one pass.
func PlanBalance(r *Roster, minPerTeam int) []BalanceMove {
	view := r.Snapshot()
	moved := make(map[string]bool)
	var moves []BalanceMove

	plan := func(playerID string, from, to Slot, reason MoveReason) {
		delete(view, from)
		view[to] = playerID
		moved[playerID] = true
		moves = append(moves, BalanceMove{PlayerID: playerID, From: from, To: to, Reason: reason})
	}

	// Phase 1: goaltender coverage.
	planCoverage(view, moved, PositionGoalie, ReasonGoalieCoverage, plan)

	// Phase 2: anchor (center) coverage, skipping players phase 1 committed.
	planCoverage(view, moved, PositionCenter, ReasonAnchorCoverage, plan)

	// Phase 3: team sizes. Top up below-minimum teams first, then trim any
	// team more than one above the ideal floor(total/2) split.
	for _, team := range Teams {
		other := team.Opponent()
		for teamSize(view, team) < minPerTeam && teamSize(view, other) > teamSize(view, team) {
			from, id, ok := sizeCandidate(view, moved, other)
			if !ok {
				break
			}
			to, ok := destinationSlot(view, team, from.Position)
			if !ok {
				break
			}
			plan(id, from, to, ReasonTeamMinimum)
		}
	}
	for {
		bigger, smaller := TeamRed, TeamBlue
		if teamSize(view, TeamBlue) > teamSize(view, TeamRed) {
			bigger, smaller = TeamBlue, TeamRed
		}
		if teamSize(view, bigger)-teamSize(view, smaller) <= 1 {
			break
		}
		from, id, ok := sizeCandidate(view, moved, bigger)
		if !ok {
			break
		}
		to, ok := destinationSlot(view, smaller, from.Position)
		if !ok {
			break
		}
		plan(id, from, to, ReasonTeamBalance)
	}

	return moves
}

// planCoverage fills the given mandatory position on any team missing it.
// A candidate from the lacking team itself is preferred so coverage fixes do
// not disturb team sizes; only when that team has no movable player is one
// pulled across from the other team.
func planCoverage(view map[Slot]string, moved map[string]bool, position Position, reason MoveReason, plan func(string, Slot, Slot, MoveReason)) {
	for _, team := range Teams {
		if _, ok := view[Slot{Team: team, Position: position}]; ok {
			continue
		}
		for _, source := range []Team{team, team.Opponent()} {
			if from, id, ok := coverageCandidate(view, moved, source); ok {
				plan(id, from, Slot{Team: team, Position: position}, reason)
				break
			}
		}
	}
}

// coverageCandidate finds the first movable player on the given team in
// coverage priority order.
func coverageCandidate(view map[Slot]string, moved map[string]bool, team Team) (Slot, string, bool) {
	for _, pos := range coveragePriority {
		slot := Slot{Team: team, Position: pos}
		if id, ok := view[slot]; ok && !moved[id] {
			return slot, id, true
		}
	}
	return Slot{}, "", false
}

// sizeCandidate finds a player eligible to change teams for size balancing.
// Goaltenders and centers stay put: moving them would undo coverage.
func sizeCandidate(view map[Slot]string, moved map[string]bool, team Team) (Slot, string, bool) {
	return coverageCandidate(view, moved, team)
}

// destinationSlot picks the open slot a moved player lands in: their same
// position if open, then any open slot of the same class, then any open slot.
func destinationSlot(view map[Slot]string, team Team, position Position) (Slot, bool) {
	same := Slot{Team: team, Position: position}
	if _, taken := view[same]; !taken {
		return same, true
	}
	for _, pos := range Positions {
		if pos.Class() != position.Class() {
			continue
		}
		slot := Slot{Team: team, Position: pos}
		if _, taken := view[slot]; !taken {
			return slot, true
		}
	}
	for _, pos := range Positions {
		slot := Slot{Team: team, Position: pos}
		if _, taken := view[slot]; !taken {
			return slot, true
		}
	}
	return Slot{}, false
}

func teamSize(view map[Slot]string, team Team) int {
	n := 0
	for slot := range view {
		if slot.Team == team {
			n++
		}
	}
	return n
}
