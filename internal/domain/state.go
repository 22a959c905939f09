package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby indicates the server is idle with no mode chosen yet.
	PhaseLobby Phase = "lobby"
	// PhaseModeSelection indicates players are choosing a game mode.
	PhaseModeSelection Phase = "mode_selection"
	// PhaseTeamSelection indicates players are picking team positions.
	PhaseTeamSelection Phase = "team_selection"
	// PhaseShootoutReady indicates the shootout registration is open.
	PhaseShootoutReady Phase = "shootout_ready"
	// PhaseWaitingForPlayers indicates the roster is below the start threshold.
	PhaseWaitingForPlayers Phase = "waiting_for_players"
	// PhaseCountdownToStart indicates the pre-match countdown is running.
	PhaseCountdownToStart Phase = "countdown_to_start"
	// PhaseMatchStart indicates the start sequence (reset + 3-2-1) is running.
	PhaseMatchStart Phase = "match_start"
	// PhaseInPeriod indicates a period timer is running and play is live.
	PhaseInPeriod Phase = "in_period"
	// PhaseGoalScored is the transient goal interruption state.
	PhaseGoalScored Phase = "goal_scored"
	// PhaseOffsideCalled is the transient offside interruption state.
	PhaseOffsideCalled Phase = "offside_called"
	// PhasePeriodEnd is the transient intermission state between periods.
	PhasePeriodEnd Phase = "period_end"
	// PhaseGameOver indicates the match has been resolved.
	PhaseGameOver Phase = "game_over"
)

// GameMode identifies the selected play mode. Empty means no mode is locked.
type GameMode string

const (
	ModeRegulation GameMode = "regulation"
	ModeShootout   GameMode = "shootout"
)

// Team identifies one of the two rosters.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Teams lists both teams in a fixed, deterministic order.
var Teams = []Team{TeamRed, TeamBlue}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Position identifies one of the six roster slots on a team.
type Position string

const (
	PositionGoalie       Position = "goalie"
	PositionCenter       Position = "center"
	PositionLeftWing     Position = "left_wing"
	PositionRightWing    Position = "right_wing"
	PositionLeftDefense  Position = "left_defense"
	PositionRightDefense Position = "right_defense"
)

// Positions lists every slot position in a fixed, deterministic order.
var Positions = []Position{
	PositionGoalie,
	PositionCenter,
	PositionLeftWing,
	PositionRightWing,
	PositionLeftDefense,
	PositionRightDefense,
}

// PositionClass groups positions for balance-move destination matching.
type PositionClass string

const (
	ClassGoalie  PositionClass = "goalie"
	ClassForward PositionClass = "forward"
	ClassDefense PositionClass = "defense"
)

// Class returns the position's class. Center counts as a forward.
func (p Position) Class() PositionClass {
	switch p {
	case PositionGoalie:
		return ClassGoalie
	case PositionLeftDefense, PositionRightDefense:
		return ClassDefense
	default:
		return ClassForward
	}
}

// Slot is a single roster slot identified by team and position.
type Slot struct {
	Team     Team
	Position Position
}

// FaceoffSpot is a rink location where play restarts after an offside call.
type FaceoffSpot struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// InterruptionKind distinguishes the two play-stopping events.
type InterruptionKind string

const (
	InterruptionGoal    InterruptionKind = "goal"
	InterruptionOffside InterruptionKind = "offside"
)

// Interruption is the single active play stoppage. Holding the timer
// snapshot here keeps goal and offside interruptions mutually exclusive:
// a second report while one is active fails the guard.
type Interruption struct {
	Kind     InterruptionKind
	Snapshot TimerSnapshot
	Faceoff  FaceoffSpot // offside only
}

// ShootoutRound records one shot of the shootout sequence. Entries are
// append-only; at most one entry is incomplete at a time.
type ShootoutRound struct {
	RoundNumber     int
	ShotNumber      int // 1 or 2
	ShooterTeam     Team
	ShooterPlayerID string
	GoalieTeam      Team
	GoaliePlayerID  string
	Scored          bool
	Completed       bool
}
