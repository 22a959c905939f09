package app

import (
	"context"
	"sort"
	"time"

	"hockeyzone/internal/config"
	"hockeyzone/internal/domain"
	"hockeyzone/internal/ports"
	"hockeyzone/internal/timer"
)

// Timer purposes owned by the match controller. Scheduling a purpose
// replaces any pending handle with the same purpose, so no stale timer can
// fire into a later state.
const (
	timerPeriod         = "period"
	timerCountdown      = "countdown_to_start"
	timerStartSequence  = "start_sequence"
	timerInterruption   = "interruption_window"
	timerResumeSequence = "resume_sequence"
	timerIntermission   = "intermission"
	timerGameOverReset  = "game_over_reset"

	moveNotifyPrefix = "move_notify:"
)

// GoalReport is an inbound goal event from the external detector.
type GoalReport struct {
	Team     domain.Team
	OwnGoal  bool
	ScorerID string
	AssistID string
}

// OffsideReport is an inbound offside event from the external detector.
type OffsideReport struct {
	Team    domain.Team
	Faceoff domain.FaceoffSpot
}

// MatchService is the match controller: it owns the match state, the roster
// registry and the period timer, orchestrates countdown sub-sequences, and
// emits outbound events for the presentation and spawn collaborators.
//
// All methods run on the match loop's single logical thread. Every public
// method returns the batch of events produced by that call; timer-driven
// transitions surface their events through Tick.
type MatchService struct {
	cfg    *config.GameConfig
	log    ports.Logger
	stats  ports.StatsPort
	roster *domain.Roster
	state  *domain.MatchState
	sched  *timer.Scheduler

	shootout *ShootoutService

	connected map[string]string // playerID -> display name
	pending   []Event

	// ctx and now are refreshed at every public entry point so timer
	// callbacks observe the current tick's values.
	ctx context.Context
	now time.Time

	countdownLeft int
	graceUsed     bool
	lastOffside   time.Time
}

// NewMatchService constructs a match controller with its collaborators
// injected. One instance serves one match; there is no process-wide state.
func NewMatchService(cfg *config.GameConfig, log ports.Logger, stats ports.StatsPort) *MatchService {
	m := &MatchService{
		cfg:       cfg,
		log:       log,
		stats:     stats,
		roster:    domain.NewRoster(),
		state:     domain.NewMatchState(),
		sched:     timer.NewScheduler(),
		connected: make(map[string]string),
		ctx:       context.Background(),
	}
	m.shootout = newShootoutService(m)
	return m
}

// State exposes the match state for labels and tests. Callers must not
// mutate it.
func (m *MatchService) State() *domain.MatchState { return m.state }

// Roster exposes the roster registry for labels and tests.
func (m *MatchService) Roster() *domain.Roster { return m.roster }

// Shootout exposes the shootout controller.
func (m *MatchService) Shootout() *ShootoutService { return m.shootout }

// Tick advances the cooperative timers to now and returns any events their
// callbacks produced.
func (m *MatchService) Tick(ctx context.Context, now time.Time) []Event {
	m.enter(ctx, now)
	m.sched.Advance(now)
	return m.drain()
}

// HandleJoin records a connected player and, on the first arrival, opens
// mode selection. Late joiners receive the current mode lock and, during a
// shootout, the current scoreboard.
func (m *MatchService) HandleJoin(ctx context.Context, playerID, displayName string, now time.Time) []Event {
	m.enter(ctx, now)
	m.connected[playerID] = displayName

	if m.state.Phase == domain.PhaseLobby {
		m.state.Phase = domain.PhaseModeSelection
		m.emit(Event{Kind: EventModeAvailability, Payload: m.modeAvailability()})
	} else {
		// Catch the newcomer up without re-broadcasting to everyone.
		m.emit(Event{Kind: EventModeAvailability, Payload: m.modeAvailability(), Recipients: []string{playerID}})
		if len(m.rosterAssignments()) > 0 {
			m.emit(Event{Kind: EventRosterUpdate, Payload: RosterUpdatePayload{Assignments: m.rosterAssignments()}, Recipients: []string{playerID}})
		}
		if m.shootout.active() {
			m.emit(Event{Kind: EventShootoutScoreboard, Payload: m.shootout.scoreboard(), Recipients: []string{playerID}})
		}
	}
	return m.drain()
}

// HandleLeave purges a departing player. An emptied roster triggers a full
// reset; otherwise the planner corrects the remaining composition.
func (m *MatchService) HandleLeave(ctx context.Context, playerID string, now time.Time) []Event {
	m.enter(ctx, now)
	delete(m.connected, playerID)

	if m.state.Mode == domain.ModeShootout {
		m.shootout.handleLeave(playerID)
	}

	wasLocked := m.roster.IsLocked(playerID)
	m.roster.Remove(playerID)

	if m.state.Mode != "" && m.roster.Empty() {
		// Empty-server reset: nobody is seated anywhere, so tear the whole
		// match down instead of rebalancing team counts.
		m.resetMatch()
		return m.drain()
	}

	if wasLocked {
		m.emit(Event{Kind: EventRosterUpdate, Payload: RosterUpdatePayload{Assignments: m.rosterAssignments()}})
	}

	switch m.state.Phase {
	case domain.PhaseTeamSelection, domain.PhaseWaitingForPlayers, domain.PhaseCountdownToStart:
		m.evaluateStartThreshold()
	case domain.PhaseMatchStart, domain.PhaseInPeriod, domain.PhaseGoalScored, domain.PhaseOffsideCalled, domain.PhasePeriodEnd:
		if wasLocked && m.state.Mode == domain.ModeRegulation {
			m.executeMoves(domain.PlanBalance(m.roster, m.cfg.MinPerTeam))
		}
	}
	return m.drain()
}

// SelectMode locks the game mode for the whole server. Once a mode is
// locked the alternate stays hidden until the match resets.
func (m *MatchService) SelectMode(ctx context.Context, playerID string, mode domain.GameMode, now time.Time) []Event {
	m.enter(ctx, now)
	if m.state.Phase != domain.PhaseModeSelection || m.state.Mode != "" {
		return m.drain()
	}
	if mode != domain.ModeRegulation && mode != domain.ModeShootout {
		m.log.Warn("SelectMode: unknown mode %q from %s", mode, playerID)
		return m.drain()
	}

	m.state.Mode = mode
	m.emit(Event{Kind: EventModeLocked, Payload: ModeLockedPayload{Mode: mode}})
	m.emit(Event{Kind: EventModeAvailability, Payload: m.modeAvailability()})

	switch mode {
	case domain.ModeRegulation:
		m.startTeamSelection()
	case domain.ModeShootout:
		m.state.Phase = domain.PhaseShootoutReady
		m.shootout.openRegistration()
	}
	return m.drain()
}

// StartTeamSelection opens position selection. Calling it again once the
// match has reached or passed team selection is a no-op.
func (m *MatchService) StartTeamSelection(now time.Time) []Event {
	m.enter(m.ctx, now)
	m.startTeamSelection()
	return m.drain()
}

func (m *MatchService) startTeamSelection() {
	if m.state.Phase != domain.PhaseModeSelection {
		return
	}
	m.state.Phase = domain.PhaseTeamSelection
	m.emit(Event{Kind: EventTeamSelectionStarted, Payload: struct{}{}})
}

// ProposePosition writes a tentative selection. A slot locked by somebody
// else produces a targeted rejection for the requester only.
func (m *MatchService) ProposePosition(playerID string, team domain.Team, position domain.Position, now time.Time) []Event {
	m.enter(m.ctx, now)
	if !m.selectionOpen() {
		return m.drain()
	}
	if !m.roster.Propose(playerID, team, position) {
		m.rejectSelection(playerID, team, position)
		return m.drain()
	}
	m.emit(Event{Kind: EventRosterUpdate, Payload: RosterUpdatePayload{Assignments: m.rosterAssignments()}})
	return m.drain()
}

// LockInPosition confirms the player's tentative selection and re-evaluates
// whether the match can begin counting down.
func (m *MatchService) LockInPosition(ctx context.Context, playerID string, now time.Time) []Event {
	m.enter(ctx, now)
	if !m.selectionOpen() {
		return m.drain()
	}
	if !m.roster.LockIn(playerID) {
		slot, ok := m.roster.TentativeSlot(playerID)
		if !ok {
			// Nothing selected yet; nothing to report.
			return m.drain()
		}
		m.rejectSelection(playerID, slot.Team, slot.Position)
		return m.drain()
	}
	m.emit(Event{Kind: EventRosterUpdate, Payload: RosterUpdatePayload{Assignments: m.rosterAssignments()}})
	m.evaluateStartThreshold()
	return m.drain()
}

// UnlockPosition releases a locked slot during pre-match states, keeping
// the tentative selection for quick reselection.
func (m *MatchService) UnlockPosition(playerID string, now time.Time) []Event {
	m.enter(m.ctx, now)
	if !m.selectionOpen() {
		return m.drain()
	}
	if !m.roster.Unlock(playerID) {
		return m.drain()
	}
	m.emit(Event{Kind: EventRosterUpdate, Payload: RosterUpdatePayload{Assignments: m.rosterAssignments()}})
	m.evaluateStartThreshold()
	return m.drain()
}

// ReportGoal handles a detector goal report. Duplicate reports are absorbed
// by the phase guard: the first report leaves the in-period phase, so the
// second finds nothing to apply to.
func (m *MatchService) ReportGoal(ctx context.Context, rep GoalReport, now time.Time) []Event {
	m.enter(ctx, now)
	if m.state.Mode == domain.ModeShootout {
		m.shootout.reportGoal(rep)
		return m.drain()
	}
	if m.state.Phase != domain.PhaseInPeriod || m.state.Interruption != nil {
		return m.drain()
	}

	m.state.Score[rep.Team]++
	snapshot := m.pausePeriodTimer()
	m.state.Phase = domain.PhaseGoalScored
	m.state.Interruption = &domain.Interruption{Kind: domain.InterruptionGoal, Snapshot: snapshot}

	if err := m.stats.RecordGoal(m.ctx, ports.GoalRecord{Team: rep.Team, ScorerID: rep.ScorerID, OwnGoal: rep.OwnGoal, Period: m.state.Period}); err != nil {
		m.log.Error("ReportGoal: failed to record goal: %v", err)
	}
	if rep.AssistID != "" {
		if err := m.stats.RecordAssist(m.ctx, rep.AssistID); err != nil {
			m.log.Error("ReportGoal: failed to record assist: %v", err)
		}
	}

	m.emit(Event{Kind: EventScoreUpdate, Payload: m.score()})
	m.emit(Event{Kind: EventGoalOverlay, Payload: GoalOverlayPayload{Team: rep.Team, ScorerID: rep.ScorerID, AssistID: rep.AssistID, OwnGoal: rep.OwnGoal}})
	m.emit(Event{Kind: EventTimerPaused, Payload: TimerPausedPayload{RemainingMs: snapshot.Remaining.Milliseconds()}})

	m.sched.Schedule(timerInterruption, m.cfg.GoalCelebration(), now, m.onInterruptionWindowElapsed)
	return m.drain()
}

// ReportOffside handles a detector offside report. Reports arriving within
// the cooldown of the previous one are dropped to suppress duplicate
// detector triggers.
func (m *MatchService) ReportOffside(ctx context.Context, rep OffsideReport, now time.Time) []Event {
	m.enter(ctx, now)
	if m.state.Phase != domain.PhaseInPeriod || m.state.Interruption != nil {
		return m.drain()
	}
	if !m.lastOffside.IsZero() && now.Sub(m.lastOffside) < m.cfg.OffsideCooldown() {
		return m.drain()
	}
	m.lastOffside = now

	snapshot := m.pausePeriodTimer()
	m.state.Phase = domain.PhaseOffsideCalled
	m.state.Interruption = &domain.Interruption{Kind: domain.InterruptionOffside, Snapshot: snapshot, Faceoff: rep.Faceoff}

	m.emit(Event{Kind: EventOffsideOverlay, Payload: OffsideOverlayPayload{Team: rep.Team, Faceoff: rep.Faceoff}})
	m.emit(Event{Kind: EventTimerPaused, Payload: TimerPausedPayload{RemainingMs: snapshot.Remaining.Milliseconds()}})

	m.sched.Schedule(timerInterruption, m.cfg.OffsideBroadcast(), now, m.onInterruptionWindowElapsed)
	return m.drain()
}

// RegisterShootout seats a player into the shootout, or as a spectator once
// both active slots are filled.
func (m *MatchService) RegisterShootout(ctx context.Context, playerID string, now time.Time) []Event {
	m.enter(ctx, now)
	m.shootout.register(playerID)
	return m.drain()
}

/* ---- internal transitions ---- */

func (m *MatchService) enter(ctx context.Context, now time.Time) {
	if ctx != nil {
		m.ctx = ctx
	}
	m.now = now
}

func (m *MatchService) emit(ev Event) {
	m.pending = append(m.pending, ev)
}

func (m *MatchService) drain() []Event {
	evs := m.pending
	m.pending = nil
	return evs
}

func (m *MatchService) selectionOpen() bool {
	switch m.state.Phase {
	case domain.PhaseTeamSelection, domain.PhaseWaitingForPlayers, domain.PhaseCountdownToStart:
		return true
	default:
		return false
	}
}

func (m *MatchService) rejectSelection(playerID string, team domain.Team, position domain.Position) {
	m.emit(Event{
		Kind:       EventSelectionRejected,
		Payload:    SelectionRejectedPayload{Team: team, Position: position, Reason: "position_taken"},
		Recipients: []string{playerID},
	})
}

func (m *MatchService) modeAvailability() ModeAvailabilityPayload {
	if m.state.Mode != "" {
		return ModeAvailabilityPayload{Modes: []domain.GameMode{m.state.Mode}, LockedMode: m.state.Mode}
	}
	return ModeAvailabilityPayload{Modes: []domain.GameMode{domain.ModeRegulation, domain.ModeShootout}}
}

func (m *MatchService) score() ScoreUpdatePayload {
	return ScoreUpdatePayload{Red: m.state.Score[domain.TeamRed], Blue: m.state.Score[domain.TeamBlue]}
}

func (m *MatchService) rosterAssignments() []RosterAssignment {
	ids := map[string]bool{}
	for _, id := range m.roster.LockedPlayers() {
		ids[id] = true
	}
	var out []RosterAssignment
	for _, id := range m.roster.LockedPlayers() {
		slot, _ := m.roster.LockedSlot(id)
		out = append(out, RosterAssignment{PlayerID: id, Team: slot.Team, Position: slot.Position, Locked: true})
	}
	var tentativeOnly []string
	for id := range m.connected {
		if _, ok := m.roster.TentativeSlot(id); ok && !ids[id] {
			tentativeOnly = append(tentativeOnly, id)
		}
	}
	sort.Strings(tentativeOnly)
	for _, id := range tentativeOnly {
		slot, _ := m.roster.TentativeSlot(id)
		out = append(out, RosterAssignment{PlayerID: id, Team: slot.Team, Position: slot.Position})
	}
	return out
}

// evaluateStartThreshold moves between waiting and countdown based on the
// locked-in count.
func (m *MatchService) evaluateStartThreshold() {
	locked := m.roster.LockedCount()
	switch m.state.Phase {
	case domain.PhaseTeamSelection, domain.PhaseWaitingForPlayers:
		if locked >= m.cfg.MinPlayers {
			m.beginCountdown()
			return
		}
		if m.state.Phase == domain.PhaseTeamSelection && locked > 0 {
			m.state.Phase = domain.PhaseWaitingForPlayers
		}
		if m.state.Phase == domain.PhaseWaitingForPlayers {
			m.emit(Event{Kind: EventWaitingForPlayers, Payload: WaitingForPlayersPayload{LockedIn: locked, Needed: m.cfg.MinPlayers}})
		}
	case domain.PhaseCountdownToStart:
		if locked < m.cfg.MinPlayers {
			m.abortCountdown("below_minimum")
		}
	}
}

func (m *MatchService) beginCountdown() {
	if m.state.Phase == domain.PhaseCountdownToStart {
		return
	}
	m.state.Phase = domain.PhaseCountdownToStart
	m.countdownLeft = m.cfg.CountdownToStartSeconds
	m.graceUsed = false
	m.emit(Event{Kind: EventCountdownTick, Payload: CountdownTickPayload{SecondsLeft: m.countdownLeft}})
	m.sched.ScheduleRepeating(timerCountdown, time.Second, m.now, m.onCountdownTick)
}

func (m *MatchService) onCountdownTick() {
	m.countdownLeft--

	if m.countdownLeft == balanceCheckpointSeconds {
		m.executeMoves(domain.PlanBalance(m.roster, m.cfg.MinPerTeam))
		if !m.rosterReady() {
			if !m.graceUsed {
				m.graceUsed = true
				m.countdownLeft += m.cfg.GraceSeconds
				m.log.Info("countdown: roster not ready, extending by %ds grace", m.cfg.GraceSeconds)
				m.emit(Event{Kind: EventCountdownTick, Payload: CountdownTickPayload{SecondsLeft: m.countdownLeft}})
				return
			}
			m.abortCountdown("requirements_not_met")
			return
		}
	}

	if m.countdownLeft <= 0 {
		m.sched.Cancel(timerCountdown)
		if !m.rosterReady() {
			m.abortCountdown("requirements_not_met")
			return
		}
		m.beginMatchStart()
		return
	}
	m.emit(Event{Kind: EventCountdownTick, Payload: CountdownTickPayload{SecondsLeft: m.countdownLeft}})
}

func (m *MatchService) rosterReady() bool {
	if m.roster.LockedCount() < m.cfg.MinPlayers {
		return false
	}
	for _, team := range domain.Teams {
		if _, ok := m.roster.Occupant(team, domain.PositionGoalie); !ok {
			return false
		}
		if _, ok := m.roster.Occupant(team, domain.PositionCenter); !ok {
			return false
		}
		if m.roster.TeamSize(team) < m.cfg.MinPerTeam {
			return false
		}
	}
	return true
}

func (m *MatchService) abortCountdown(reason string) {
	if m.state.Phase != domain.PhaseCountdownToStart {
		return
	}
	m.sched.Cancel(timerCountdown)
	m.state.Phase = domain.PhaseWaitingForPlayers
	m.emit(Event{Kind: EventCountdownAborted, Payload: CountdownAbortedPayload{Reason: reason}})
	m.emit(Event{Kind: EventWaitingForPlayers, Payload: WaitingForPlayersPayload{LockedIn: m.roster.LockedCount(), Needed: m.cfg.MinPlayers}})
}

// beginMatchStart runs the full start sequence: positional reset, puck
// detach, stats session, 3-2-1 countdown, then the first period.
func (m *MatchService) beginMatchStart() {
	if m.state.Phase != domain.PhaseCountdownToStart && m.state.Phase != domain.PhaseWaitingForPlayers {
		return
	}
	m.state.Phase = domain.PhaseMatchStart
	m.emitReset(FormationSpawn, nil)

	if err := m.stats.InitMatch(m.ctx, m.state.Mode, m.roster.LockedPlayers()); err != nil {
		m.log.Error("beginMatchStart: failed to init stats session: %v", err)
	}

	m.runSequence(timerStartSequence, func() { m.beginPeriod(1) })
}

// runSequence emits a short 3-2-1 countdown then a go signal, invoking done
// after the go.
func (m *MatchService) runSequence(purpose string, done func()) {
	left := m.cfg.StartSequenceSeconds
	m.emit(Event{Kind: EventCountdownTick, Payload: CountdownTickPayload{SecondsLeft: left}})
	m.sched.ScheduleRepeating(purpose, time.Second, m.now, func() {
		left--
		if left <= 0 {
			m.sched.Cancel(purpose)
			m.emit(Event{Kind: EventCountdownGo, Payload: struct{}{}})
			done()
			return
		}
		m.emit(Event{Kind: EventCountdownTick, Payload: CountdownTickPayload{SecondsLeft: left}})
	})
}

func (m *MatchService) beginPeriod(n int) {
	m.state.Period = n
	m.state.Phase = domain.PhaseInPeriod
	if n == 1 {
		m.emit(Event{Kind: EventMatchStarted, Payload: MatchStartedPayload{Period: n, PeriodDurationMs: m.cfg.PeriodDurationMs}})
	} else {
		m.emit(Event{Kind: EventPeriodUpdate, Payload: PeriodUpdatePayload{Period: n}})
	}
	m.sched.Schedule(timerPeriod, m.cfg.PeriodDuration(), m.now, m.onPeriodExpired)
}

// pausePeriodTimer captures the running period timer into a snapshot and
// cancels the underlying schedule.
func (m *MatchService) pausePeriodTimer() domain.TimerSnapshot {
	snap, ok := m.sched.Pause(timerPeriod, m.now)
	if !ok {
		m.log.Warn("pausePeriodTimer: no period timer armed in phase %s", m.state.Phase)
		return domain.TimerSnapshot{PausedAt: m.now}
	}
	return domain.TimerSnapshot{Remaining: snap.Remaining, PausedAt: snap.PausedAt}
}

// onInterruptionWindowElapsed runs after the celebration or offside
// broadcast window: reposition everyone, then count back into play.
func (m *MatchService) onInterruptionWindowElapsed() {
	itr := m.state.Interruption
	if itr == nil {
		m.log.Warn("interruption window elapsed with no active interruption")
		return
	}
	switch itr.Kind {
	case domain.InterruptionGoal:
		m.emitReset(FormationSpawn, nil)
	case domain.InterruptionOffside:
		faceoff := itr.Faceoff
		m.emitReset(FormationFaceoff, &faceoff)
	}
	m.runSequence(timerResumeSequence, m.resumePlay)
}

// resumePlay restarts the period timer with the originally captured
// remaining time. The pause window is deliberately excluded: viewers were
// told the clock stopped at that value, so that is where it restarts.
func (m *MatchService) resumePlay() {
	itr := m.state.Interruption
	if itr == nil {
		m.log.Warn("resumePlay: no active interruption")
		return
	}
	m.state.Interruption = nil
	m.state.Phase = domain.PhaseInPeriod

	remaining := itr.Snapshot.Remaining
	m.emit(Event{Kind: EventTimerResumed, Payload: TimerResumedPayload{RemainingMs: remaining.Milliseconds()}})
	if remaining <= 0 {
		m.onPeriodExpired()
		return
	}
	m.sched.Schedule(timerPeriod, remaining, m.now, m.onPeriodExpired)
}

func (m *MatchService) onPeriodExpired() {
	if m.state.Phase != domain.PhaseInPeriod {
		return
	}
	m.state.Phase = domain.PhasePeriodEnd
	m.emit(Event{Kind: EventPeriodEnded, Payload: PeriodUpdatePayload{Period: m.state.Period}})

	if m.state.Period >= m.cfg.Periods {
		m.resolveGame()
		return
	}
	m.sched.Schedule(timerIntermission, m.cfg.Intermission(), m.now, m.onIntermissionDone)
}

func (m *MatchService) onIntermissionDone() {
	m.emitReset(FormationSpawn, nil)
	next := m.state.Period + 1
	m.runSequence(timerStartSequence, func() { m.beginPeriod(next) })
}

// resolveGame reports the outcome, persists stats best-effort, and
// schedules the delayed return to mode selection.
func (m *MatchService) resolveGame() {
	if m.state.Phase == domain.PhaseGameOver {
		return
	}
	m.state.Phase = domain.PhaseGameOver
	outcome := m.state.Resolve()

	rec := ports.OutcomeRecord{
		Mode:      m.state.Mode,
		Outcome:   outcome,
		RedScore:  m.state.Score[domain.TeamRed],
		BlueScore: m.state.Score[domain.TeamBlue],
	}
	if err := m.stats.RecordOutcome(m.ctx, rec); err != nil {
		m.log.Error("resolveGame: failed to record outcome: %v", err)
	}
	if err := m.stats.SaveAll(m.ctx); err != nil {
		m.log.Error("resolveGame: failed to save stats: %v", err)
	}

	m.emit(Event{Kind: EventGameOver, Payload: GameOverPayload{Outcome: outcome, Red: rec.RedScore, Blue: rec.BlueScore}})
	m.sched.Schedule(timerGameOverReset, m.cfg.GameOverDelay(), m.now, m.afterGameOver)
}

// afterGameOver despawns everyone and hands the server back to mode
// selection for the next game.
func (m *MatchService) afterGameOver() {
	m.emit(Event{Kind: EventDespawnAll, Payload: struct{}{}})
	m.resetMatch()
}

// resetMatch returns the server to its initial state. With players still
// connected, mode selection reopens immediately.
func (m *MatchService) resetMatch() {
	m.sched.CancelAll()
	m.roster = domain.NewRoster()
	m.state.Reset()
	m.shootout.reset()
	m.graceUsed = false
	m.lastOffside = time.Time{}

	if len(m.connected) > 0 {
		m.state.Phase = domain.PhaseModeSelection
		m.emit(Event{Kind: EventModeAvailability, Payload: m.modeAvailability()})
	}
}

// executeMoves applies planner output in order. A move whose player is no
// longer where the plan expects is skipped with a warning rather than
// crashing a live match. The moved player's own notification is delayed so
// their entity repositions before their UI updates.
func (m *MatchService) executeMoves(moves []domain.BalanceMove) {
	applied := 0
	for _, mv := range moves {
		mv := mv
		if !m.roster.Apply(mv) {
			m.log.Warn("executeMoves: skipping stale move for %s (%v -> %v)", mv.PlayerID, mv.From, mv.To)
			continue
		}
		applied++
		m.sched.Schedule(moveNotifyPrefix+mv.PlayerID, m.cfg.MoveNotifyDelay(), m.now, func() {
			m.emit(Event{
				Kind:       EventPositionAssigned,
				Payload:    PositionAssignedPayload{Team: mv.To.Team, Position: mv.To.Position, Reason: mv.Reason},
				Recipients: []string{mv.PlayerID},
			})
		})
	}
	if applied > 0 {
		m.emit(Event{Kind: EventRosterUpdate, Payload: RosterUpdatePayload{Assignments: m.rosterAssignments()}})
	}
}

// emitReset sends the spawn collaborator directives for a positional reset.
// The puck is always detached first so no control reference survives the
// reposition.
func (m *MatchService) emitReset(formation string, faceoff *domain.FaceoffSpot) {
	m.emit(Event{Kind: EventPuckDetached, Payload: struct{}{}})
	m.emit(Event{Kind: EventRosterReset, Payload: RosterResetPayload{Formation: formation, Faceoff: faceoff}})
}
