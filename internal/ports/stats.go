package ports

import (
	"context"

	"hockeyzone/internal/domain"
)

// GoalRecord captures one scored goal for durable statistics.
type GoalRecord struct {
	Team     domain.Team
	ScorerID string
	OwnGoal  bool
	Period   int
}

// OutcomeRecord captures the resolved result of a game.
type OutcomeRecord struct {
	Mode      domain.GameMode
	Outcome   domain.Outcome
	RedScore  int
	BlueScore int
	// WinnerPlayerID is set for shootout results, which are decided per
	// player rather than per team.
	WinnerPlayerID string
	Forfeit        bool
}

// StatsPort is the durable statistics collaborator. Every call is
// fire-and-forget from the state machine's point of view: failures are
// logged by the caller and never block game-state progression.
type StatsPort interface {
	// InitMatch starts a fresh statistics session for the given players.
	InitMatch(ctx context.Context, mode domain.GameMode, playerIDs []string) error

	// RecordGoal records a scored goal.
	RecordGoal(ctx context.Context, rec GoalRecord) error

	// RecordAssist credits the primary assist on the preceding goal.
	RecordAssist(ctx context.Context, playerID string) error

	// RecordSave credits a goaltender save.
	RecordSave(ctx context.Context, playerID string) error

	// RecordOutcome records the final result of the game.
	RecordOutcome(ctx context.Context, rec OutcomeRecord) error

	// SaveAll flushes the session to durable storage. This is the natural
	// retry point for anything an earlier call failed to persist.
	SaveAll(ctx context.Context) error
}
