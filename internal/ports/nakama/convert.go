package nakama

import (
	"encoding/json"
	"fmt"

	"hockeyzone/internal/app"
	"hockeyzone/internal/domain"
)

// eventOpCodes maps app event kinds to the wire op codes clients subscribe to.
var eventOpCodes = map[app.EventKind]int64{
	app.EventModeAvailability:     OpModeAvailability,
	app.EventModeLocked:           OpModeLocked,
	app.EventTeamSelectionStarted: OpTeamSelectionStarted,
	app.EventShootoutRegistration: OpShootoutRegistration,
	app.EventWaitingForPlayers:    OpWaitingForPlayers,
	app.EventRosterUpdate:         OpRosterUpdate,
	app.EventSelectionRejected:    OpSelectionRejected,
	app.EventPositionAssigned:     OpPositionAssigned,
	app.EventCountdownTick:        OpCountdownTick,
	app.EventCountdownGo:          OpCountdownGo,
	app.EventCountdownAborted:     OpCountdownAborted,
	app.EventMatchStarted:         OpMatchStarted,
	app.EventScoreUpdate:          OpScoreUpdate,
	app.EventGoalOverlay:          OpGoalOverlay,
	app.EventOffsideOverlay:       OpOffsideOverlay,
	app.EventTimerPaused:          OpTimerPaused,
	app.EventTimerResumed:         OpTimerResumed,
	app.EventPeriodUpdate:         OpPeriodUpdate,
	app.EventPeriodEnded:          OpPeriodEnded,
	app.EventGameOver:             OpGameOver,
	app.EventRosterReset:          OpRosterReset,
	app.EventPuckDetached:         OpPuckDetached,
	app.EventDespawnAll:           OpDespawnAll,
	app.EventShootoutScoreboard:   OpShootoutScoreboard,
	app.EventShootoutRound:        OpShootoutRound,
	app.EventShootoutShot:         OpShootoutShot,
	app.EventShootoutResult:       OpShootoutResult,
}

// marshalEvent converts an app event into its wire op code and JSON payload.
func marshalEvent(ev app.Event) (int64, []byte, error) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		return 0, nil, fmt.Errorf("no op code for event kind %q", ev.Kind)
	}
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal %s payload: %w", ev.Kind, err)
	}
	return opCode, data, nil
}

// Client request payloads. All inbound messages are JSON.

type selectModeRequest struct {
	Mode string `json:"mode"`
}

type positionRequest struct {
	Team     string `json:"team"`
	Position string `json:"position"`
}

type goalRequest struct {
	Team     string `json:"team"`
	ScorerID string `json:"scorer_id"`
	AssistID string `json:"assist_id"`
	OwnGoal  bool   `json:"own_goal"`
}

type offsideRequest struct {
	Team string  `json:"team"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
}

func parseTeam(s string) (domain.Team, bool) {
	switch domain.Team(s) {
	case domain.TeamRed, domain.TeamBlue:
		return domain.Team(s), true
	default:
		return "", false
	}
}

func parsePosition(s string) (domain.Position, bool) {
	for _, p := range domain.Positions {
		if domain.Position(s) == p {
			return p, true
		}
	}
	return "", false
}
