package app

import "hockeyzone/internal/domain"

// EventKind identifies emitted match events for Nakama dispatch.
type EventKind string

const (
	EventModeAvailability EventKind = "mode_availability"
	EventModeLocked       EventKind = "mode_locked"

	EventTeamSelectionStarted EventKind = "team_selection_started"
	EventShootoutRegistration EventKind = "shootout_registration"
	EventWaitingForPlayers    EventKind = "waiting_for_players"

	EventRosterUpdate      EventKind = "roster_update"
	EventSelectionRejected EventKind = "selection_rejected"
	EventPositionAssigned  EventKind = "position_assigned"

	EventCountdownTick    EventKind = "countdown_tick"
	EventCountdownGo      EventKind = "countdown_go"
	EventCountdownAborted EventKind = "countdown_aborted"

	EventMatchStarted   EventKind = "match_started"
	EventScoreUpdate    EventKind = "score_update"
	EventGoalOverlay    EventKind = "goal_overlay"
	EventOffsideOverlay EventKind = "offside_overlay"
	EventTimerPaused    EventKind = "timer_paused"
	EventTimerResumed   EventKind = "timer_resumed"
	EventPeriodUpdate   EventKind = "period_update"
	EventPeriodEnded    EventKind = "period_ended"
	EventGameOver       EventKind = "game_over"

	// Spawn/reset collaborator directives, consumed by the entity layer.
	EventRosterReset  EventKind = "roster_reset"
	EventPuckDetached EventKind = "puck_detached"
	EventDespawnAll   EventKind = "despawn_all"

	EventShootoutScoreboard EventKind = "shootout_scoreboard"
	EventShootoutRound      EventKind = "shootout_round"
	EventShootoutShot       EventKind = "shootout_shot"
	EventShootoutResult     EventKind = "shootout_result"
)

// Event is an outbound match event with optional targeted recipients.
// Empty Recipients means broadcast to everyone connected.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string
}

type ModeAvailabilityPayload struct {
	Modes      []domain.GameMode `json:"modes"`
	LockedMode domain.GameMode   `json:"locked_mode,omitempty"`
}

type ModeLockedPayload struct {
	Mode domain.GameMode `json:"mode"`
}

type WaitingForPlayersPayload struct {
	LockedIn int `json:"locked_in"`
	Needed   int `json:"needed"`
}

// RosterAssignment is one player's slot in a roster snapshot.
type RosterAssignment struct {
	PlayerID string          `json:"player_id"`
	Team     domain.Team     `json:"team"`
	Position domain.Position `json:"position"`
	Locked   bool            `json:"locked"`
}

type RosterUpdatePayload struct {
	Assignments []RosterAssignment `json:"assignments"`
}

type SelectionRejectedPayload struct {
	Team     domain.Team     `json:"team"`
	Position domain.Position `json:"position"`
	Reason   string          `json:"reason"`
}

type PositionAssignedPayload struct {
	Team     domain.Team       `json:"team"`
	Position domain.Position   `json:"position"`
	Reason   domain.MoveReason `json:"reason"`
}

type CountdownTickPayload struct {
	SecondsLeft int `json:"seconds_left"`
}

type CountdownAbortedPayload struct {
	Reason string `json:"reason"`
}

type MatchStartedPayload struct {
	Period           int   `json:"period"`
	PeriodDurationMs int64 `json:"period_duration_ms"`
}

type ScoreUpdatePayload struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

type GoalOverlayPayload struct {
	Team     domain.Team `json:"team"`
	ScorerID string      `json:"scorer_id,omitempty"`
	AssistID string      `json:"assist_id,omitempty"`
	OwnGoal  bool        `json:"own_goal"`
}

type OffsideOverlayPayload struct {
	Team    domain.Team        `json:"team"`
	Faceoff domain.FaceoffSpot `json:"faceoff"`
}

type TimerPausedPayload struct {
	RemainingMs int64 `json:"remaining_ms"`
}

type TimerResumedPayload struct {
	RemainingMs int64 `json:"remaining_ms"`
}

type PeriodUpdatePayload struct {
	Period int `json:"period"`
}

type GameOverPayload struct {
	Outcome domain.Outcome `json:"outcome"`
	Red     int            `json:"red"`
	Blue    int            `json:"blue"`
}

// RosterResetPayload directs the spawn collaborator to reposition everyone.
// Formation is "spawn" for full positional resets and "faceoff" for offside
// restarts at a specific spot.
type RosterResetPayload struct {
	Formation string              `json:"formation"`
	Faceoff   *domain.FaceoffSpot `json:"faceoff,omitempty"`
}

type ShootoutScoreboardPayload struct {
	Goals map[string]int `json:"goals"`
	Round int            `json:"round"`
	Shot  int            `json:"shot"`
}

type ShootoutRoundPayload struct {
	Round       int         `json:"round"`
	Shot        int         `json:"shot"`
	ShooterID   string      `json:"shooter_id"`
	GoalieID    string      `json:"goalie_id"`
	ShooterTeam domain.Team `json:"shooter_team"`
	WindowMs    int64       `json:"window_ms"`
}

type ShootoutShotPayload struct {
	Round     int    `json:"round"`
	Shot      int    `json:"shot"`
	ShooterID string `json:"shooter_id"`
	Scored    bool   `json:"scored"`
}

type ShootoutResultPayload struct {
	WinnerID string         `json:"winner_id,omitempty"`
	Tie      bool           `json:"tie"`
	Forfeit  bool           `json:"forfeit"`
	Goals    map[string]int `json:"goals"`
}
