package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"hockeyzone/internal/app"
	"hockeyzone/internal/config"
	"hockeyzone/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
// All orchestration lives in the app service; this layer only carries
// presences and translates between Nakama messages and service calls.
type MatchState struct {
	Presences map[string]runtime.Presence // UserId -> Presence for targeted messaging
	Service   *app.MatchService
	LastPhase domain.Phase // phase reflected in the current match label
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// matchLabel is the JSON document indexed by Nakama for match listing.
type matchLabel struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
	Mode  string `json:"mode,omitempty"`
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	// Per-match copy so environment overrides never leak between matches.
	cfg := *config.GetGameConfig()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		applyEnvOverrides(&cfg, env, logger)
	}

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		Service:   app.NewMatchService(&cfg, logger, NewNakamaStatsAdapter(nk)),
		LastPhase: domain.PhaseLobby,
	}

	labelBytes, err := json.Marshal(matchLabel{Open: true, Game: "hockeyzone", Phase: string(domain.PhaseLobby)})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 10 // sub-second resolution for shot windows and move notifications
	return state, tickRate, string(labelBytes)
}

// applyEnvOverrides lets deployments retune headline values without shipping
// a config file into the container.
func applyEnvOverrides(cfg *config.GameConfig, env map[string]string, logger runtime.Logger) {
	intVar := func(key string, dst *int) {
		if val, ok := env[key]; ok {
			if i, err := strconv.Atoi(val); err == nil && i > 0 {
				*dst = i
			} else {
				logger.Warn("MatchInit: Ignoring invalid %s=%q", key, val)
			}
		}
	}
	int64Var := func(key string, dst *int64) {
		if val, ok := env[key]; ok {
			if i, err := strconv.ParseInt(val, 10, 64); err == nil && i > 0 {
				*dst = i
			} else {
				logger.Warn("MatchInit: Ignoring invalid %s=%q", key, val)
			}
		}
	}

	intVar("hockey_min_players", &cfg.MinPlayers)
	intVar("hockey_min_per_team", &cfg.MinPerTeam)
	intVar("hockey_periods", &cfg.Periods)
	intVar("hockey_countdown_seconds", &cfg.CountdownToStartSeconds)
	intVar("hockey_shootout_rounds", &cfg.ShootoutRounds)
	int64Var("hockey_period_duration_ms", &cfg.PeriodDurationMs)
	int64Var("hockey_shot_window_ms", &cfg.ShotWindowMs)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if len(matchState.Presences) >= MaxPresences {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	now := time.Now()
	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		events := matchState.Service.HandleJoin(ctx, p.GetUserId(), p.GetUsername(), now)
		mh.dispatchEvents(matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	now := time.Now()
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		events := matchState.Service.HandleLeave(ctx, p.GetUserId(), now)
		mh.dispatchEvents(matchState, dispatcher, logger, events)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating empty match.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	now := time.Now()
	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg, now)
	}

	events := matchState.Service.Tick(ctx, now)
	mh.dispatchEvents(matchState, dispatcher, logger, events)

	if matchState.Service.State().Phase != matchState.LastPhase {
		mh.updateLabel(matchState, dispatcher, logger)
	}
	return matchState
}

func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, now time.Time) {
	senderID := msg.GetUserId()
	svc := state.Service

	var events []app.Event
	switch msg.GetOpCode() {
	case OpSelectMode:
		var req selectModeRequest
		if err := json.Unmarshal(msg.GetData(), &req); err != nil {
			logger.Warn("MatchLoop: Invalid select mode payload from %s: %v", senderID, err)
			return
		}
		events = svc.SelectMode(ctx, senderID, domain.GameMode(req.Mode), now)

	case OpProposePosition:
		var req positionRequest
		if err := json.Unmarshal(msg.GetData(), &req); err != nil {
			logger.Warn("MatchLoop: Invalid position payload from %s: %v", senderID, err)
			return
		}
		team, okT := parseTeam(req.Team)
		position, okP := parsePosition(req.Position)
		if !okT || !okP {
			logger.Warn("MatchLoop: Unknown team/position %q/%q from %s", req.Team, req.Position, senderID)
			return
		}
		events = svc.ProposePosition(senderID, team, position, now)

	case OpLockPosition:
		events = svc.LockInPosition(ctx, senderID, now)

	case OpUnlockPosition:
		events = svc.UnlockPosition(senderID, now)

	case OpRegisterShootout:
		events = svc.RegisterShootout(ctx, senderID, now)

	case OpReportGoal:
		var req goalRequest
		if err := json.Unmarshal(msg.GetData(), &req); err != nil {
			logger.Warn("MatchLoop: Invalid goal payload from %s: %v", senderID, err)
			return
		}
		team, ok := parseTeam(req.Team)
		if !ok {
			logger.Warn("MatchLoop: Unknown team %q in goal report from %s", req.Team, senderID)
			return
		}
		events = svc.ReportGoal(ctx, app.GoalReport{
			Team:     team,
			OwnGoal:  req.OwnGoal,
			ScorerID: req.ScorerID,
			AssistID: req.AssistID,
		}, now)

	case OpReportOffside:
		var req offsideRequest
		if err := json.Unmarshal(msg.GetData(), &req); err != nil {
			logger.Warn("MatchLoop: Invalid offside payload from %s: %v", senderID, err)
			return
		}
		team, ok := parseTeam(req.Team)
		if !ok {
			logger.Warn("MatchLoop: Unknown team %q in offside report from %s", req.Team, senderID)
			return
		}
		events = svc.ReportOffside(ctx, app.OffsideReport{
			Team:    team,
			Faceoff: domain.FaceoffSpot{X: req.X, Z: req.Z},
		}, now)

	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
}

// dispatchEvents sends a batch of app events to clients. Targeted events go
// out one recipient at a time so a single send failure cannot drop the
// message for everyone else.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, data, err := marshalEvent(ev)
		if err != nil {
			logger.Error("dispatchEvents: %v", err)
			continue
		}

		if len(ev.Recipients) == 0 {
			if err := dispatcher.BroadcastMessage(opCode, data, nil, nil, true); err != nil {
				logger.Error("dispatchEvents: Failed to broadcast %s: %v", ev.Kind, err)
			}
			continue
		}

		for _, uid := range ev.Recipients {
			p, ok := state.Presences[uid]
			if !ok {
				// Recipient disconnected between emit and dispatch.
				continue
			}
			if err := dispatcher.BroadcastMessage(opCode, data, []runtime.Presence{p}, nil, true); err != nil {
				logger.Error("dispatchEvents: Failed to send %s to %s: %v", ev.Kind, uid, err)
			}
		}
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	ms := state.Service.State()
	label := matchLabel{
		Open:  len(state.Presences) < MaxPresences,
		Game:  "hockeyzone",
		Phase: string(ms.Phase),
		Mode:  string(ms.Mode),
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
		return
	}
	state.LastPhase = ms.Phase
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
