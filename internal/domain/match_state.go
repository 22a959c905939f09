package domain

import "time"

// TimerSnapshot captures a paused period timer: how much time was left and
// when the pause happened. Resume uses Remaining verbatim; the wall-clock
// pause duration is deliberately not added back.
type TimerSnapshot struct {
	Remaining time.Duration
	PausedAt  time.Time
}

// MatchState captures the orchestration state for a single match instance.
// It is mutated only by the match controller.
type MatchState struct {
	Phase  Phase
	Mode   GameMode // locked mode; empty until a mode is chosen
	Period int      // 1-based, 0 before the first period starts
	Score  map[Team]int

	// Interruption is non-nil only while a goal or offside stoppage is
	// in progress.
	Interruption *Interruption
}

// NewMatchState returns a match state at the lobby phase with zeroed scores.
func NewMatchState() *MatchState {
	return &MatchState{
		Phase: PhaseLobby,
		Score: map[Team]int{TeamRed: 0, TeamBlue: 0},
	}
}

// Reset returns the state to its initial values, used when the server
// empties or a finished game hands back to mode selection.
func (ms *MatchState) Reset() {
	ms.Phase = PhaseLobby
	ms.Mode = ""
	ms.Period = 0
	ms.Score = map[Team]int{TeamRed: 0, TeamBlue: 0}
	ms.Interruption = nil
}

// Outcome is the result of a resolved game.
type Outcome string

const (
	OutcomeRedWin  Outcome = "red_win"
	OutcomeBlueWin Outcome = "blue_win"
	OutcomeTie     Outcome = "tie"
)

// Resolve compares the two team scores. A tie is a distinct outcome, not an
// error.
func (ms *MatchState) Resolve() Outcome {
	red, blue := ms.Score[TeamRed], ms.Score[TeamBlue]
	switch {
	case red > blue:
		return OutcomeRedWin
	case blue > red:
		return OutcomeBlueWin
	default:
		return OutcomeTie
	}
}
