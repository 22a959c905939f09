package app

import (
	"hockeyzone/internal/domain"
	"hockeyzone/internal/ports"
)

// Shootout timer purposes. These live in the same scheduler as the match
// timers, so a full reset cancels them together.
const (
	timerShotWindow       = "shot_window"
	timerInterShot        = "inter_shot"
	timerShootoutSequence = "shootout_sequence"
)

type shootoutPhase int

const (
	shootoutIdle shootoutPhase = iota
	shootoutRegistration
	shootoutCountdown
	shootoutShot
	shootoutPause
	shootoutDone
)

// ShootoutService runs the 1v1 shootout mode: two registered participants
// alternate shooter and goaltender across a fixed number of rounds, two
// shots per round. It shares the match controller's scheduler, state and
// event pipeline, and only ever runs from the match loop thread.
type ShootoutService struct {
	match *MatchService

	phase shootoutPhase
	// participants[0] is the red player and shoots first each round;
	// participants[1] is blue and shoots second.
	participants []string
	rounds       []domain.ShootoutRound
	goals        map[string]int
}

func newShootoutService(m *MatchService) *ShootoutService {
	return &ShootoutService{match: m, goals: make(map[string]int)}
}

// Rounds exposes the shot history for labels and tests.
func (s *ShootoutService) Rounds() []domain.ShootoutRound { return s.rounds }

func (s *ShootoutService) active() bool {
	return s.phase == shootoutCountdown || s.phase == shootoutShot || s.phase == shootoutPause || s.phase == shootoutDone
}

func (s *ShootoutService) openRegistration() {
	s.phase = shootoutRegistration
	s.match.emit(Event{Kind: EventShootoutRegistration, Payload: struct{}{}})
}

// register seats a player as a participant. Beyond the second registrant
// everyone is a spectator and only receives the scoreboard.
func (s *ShootoutService) register(playerID string) {
	m := s.match
	if m.state.Phase != domain.PhaseShootoutReady || s.phase != shootoutRegistration {
		if s.active() {
			m.emit(Event{Kind: EventShootoutScoreboard, Payload: s.scoreboard(), Recipients: []string{playerID}})
		}
		return
	}
	for _, p := range s.participants {
		if p == playerID {
			return
		}
	}
	if len(s.participants) >= 2 {
		m.emit(Event{Kind: EventShootoutScoreboard, Payload: s.scoreboard(), Recipients: []string{playerID}})
		return
	}

	team := domain.Teams[len(s.participants)]
	s.participants = append(s.participants, playerID)
	s.goals[playerID] = 0
	m.roster.Overwrite(team, domain.PositionCenter, playerID)
	m.emit(Event{Kind: EventRosterUpdate, Payload: RosterUpdatePayload{Assignments: m.rosterAssignments()}})

	if len(s.participants) == 2 {
		s.begin()
	}
}

func (s *ShootoutService) begin() {
	m := s.match
	s.phase = shootoutCountdown
	m.state.Phase = domain.PhaseMatchStart
	m.emitReset(FormationSpawn, nil)

	if err := m.stats.InitMatch(m.ctx, domain.ModeShootout, append([]string(nil), s.participants...)); err != nil {
		m.log.Error("shootout: failed to init stats session: %v", err)
	}

	m.runSequence(timerShootoutSequence, func() { s.startShot(1, 1) })
}

// startShot opens one shot window. Roles reset every round: the red
// participant always takes shot 1 and defends shot 2.
func (s *ShootoutService) startShot(round, shot int) {
	m := s.match

	shooterIdx := 0
	if shot == 2 {
		shooterIdx = 1
	}
	shooter := s.participants[shooterIdx]
	goalie := s.participants[1-shooterIdx]
	shooterTeam := domain.Teams[shooterIdx]
	goalieTeam := shooterTeam.Opponent()

	s.rounds = append(s.rounds, domain.ShootoutRound{
		RoundNumber:     round,
		ShotNumber:      shot,
		ShooterTeam:     shooterTeam,
		ShooterPlayerID: shooter,
		GoalieTeam:      goalieTeam,
		GoaliePlayerID:  goalie,
	})
	s.phase = shootoutShot
	m.state.Phase = domain.PhaseInPeriod
	m.state.Period = round

	// Reseat both players for this shot's roles before the entity reset.
	m.roster.Overwrite(shooterTeam, domain.PositionCenter, shooter)
	m.roster.Overwrite(goalieTeam, domain.PositionGoalie, goalie)
	m.emitReset(FormationSpawn, nil)
	m.emit(Event{Kind: EventShootoutRound, Payload: ShootoutRoundPayload{
		Round:       round,
		Shot:        shot,
		ShooterID:   shooter,
		GoalieID:    goalie,
		ShooterTeam: shooterTeam,
		WindowMs:    m.cfg.ShotWindowMs,
	}})

	m.sched.Schedule(timerShotWindow, m.cfg.ShotWindow(), m.now, func() { s.resolveShot(false) })
}

// reportGoal scores the open shot. A report landing after the window
// resolved is dropped: the save already stands.
func (s *ShootoutService) reportGoal(rep GoalReport) {
	if s.phase != shootoutShot || len(s.rounds) == 0 {
		return
	}
	current := &s.rounds[len(s.rounds)-1]
	if current.Completed {
		return
	}
	if rep.Team != current.ShooterTeam {
		s.match.log.Warn("shootout: goal reported for %s during %s's shot, ignoring", rep.Team, current.ShooterTeam)
		return
	}
	s.resolveShot(true)
}

func (s *ShootoutService) resolveShot(scored bool) {
	m := s.match
	if s.phase != shootoutShot || len(s.rounds) == 0 {
		return
	}
	current := &s.rounds[len(s.rounds)-1]
	if current.Completed {
		return
	}
	current.Completed = true
	current.Scored = scored
	m.sched.Cancel(timerShotWindow)
	s.phase = shootoutPause

	if scored {
		s.goals[current.ShooterPlayerID]++
		if err := m.stats.RecordGoal(m.ctx, ports.GoalRecord{
			Team:     current.ShooterTeam,
			ScorerID: current.ShooterPlayerID,
			Period:   current.RoundNumber,
		}); err != nil {
			m.log.Error("shootout: failed to record goal: %v", err)
		}
	} else {
		if err := m.stats.RecordSave(m.ctx, current.GoaliePlayerID); err != nil {
			m.log.Error("shootout: failed to record save: %v", err)
		}
	}

	m.emit(Event{Kind: EventShootoutShot, Payload: ShootoutShotPayload{
		Round:     current.RoundNumber,
		Shot:      current.ShotNumber,
		ShooterID: current.ShooterPlayerID,
		Scored:    scored,
	}})
	m.emit(Event{Kind: EventShootoutScoreboard, Payload: s.scoreboard()})

	if current.RoundNumber >= m.cfg.ShootoutRounds && current.ShotNumber >= ShotsPerRound {
		s.finish("", false)
		return
	}
	round, shot := current.RoundNumber, current.ShotNumber
	m.sched.Schedule(timerInterShot, m.cfg.InterShotPause(), m.now, func() {
		if shot < ShotsPerRound {
			s.startShot(round, shot+1)
			return
		}
		s.startShot(round+1, 1)
	})
}

// handleLeave forfeits the shootout when a participant disconnects mid-run.
// Spectator departures change nothing.
func (s *ShootoutService) handleLeave(playerID string) {
	if s.phase == shootoutIdle || s.phase == shootoutDone {
		return
	}
	idx := -1
	for i, p := range s.participants {
		if p == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	if s.phase == shootoutRegistration {
		s.participants = append(s.participants[:idx], s.participants[idx+1:]...)
		delete(s.goals, playerID)
		return
	}
	s.match.sched.Cancel(timerShotWindow)
	s.match.sched.Cancel(timerInterShot)
	s.match.sched.Cancel(timerShootoutSequence)
	s.finish(s.participants[1-idx], true)
}

// finish resolves the shootout. winnerID is set for forfeits; otherwise the
// winner falls out of the individual goal tallies, with ties explicit.
func (s *ShootoutService) finish(winnerID string, forfeit bool) {
	m := s.match
	if s.phase == shootoutDone {
		return
	}
	s.phase = shootoutDone

	red, blue := s.participants[0], s.participants[1]
	tie := false
	if winnerID == "" {
		switch {
		case s.goals[red] > s.goals[blue]:
			winnerID = red
		case s.goals[blue] > s.goals[red]:
			winnerID = blue
		default:
			tie = true
		}
	}

	m.state.Score[domain.TeamRed] = s.goals[red]
	m.state.Score[domain.TeamBlue] = s.goals[blue]
	m.state.Phase = domain.PhaseGameOver

	outcome := domain.OutcomeTie
	switch winnerID {
	case red:
		outcome = domain.OutcomeRedWin
	case blue:
		outcome = domain.OutcomeBlueWin
	}

	if err := m.stats.RecordOutcome(m.ctx, ports.OutcomeRecord{
		Mode:           domain.ModeShootout,
		Outcome:        outcome,
		RedScore:       s.goals[red],
		BlueScore:      s.goals[blue],
		WinnerPlayerID: winnerID,
		Forfeit:        forfeit,
	}); err != nil {
		m.log.Error("shootout: failed to record outcome: %v", err)
	}
	if err := m.stats.SaveAll(m.ctx); err != nil {
		m.log.Error("shootout: failed to save stats: %v", err)
	}

	m.emit(Event{Kind: EventShootoutResult, Payload: ShootoutResultPayload{
		WinnerID: winnerID,
		Tie:      tie,
		Forfeit:  forfeit,
		Goals:    s.goalsCopy(),
	}})
	m.sched.Schedule(timerGameOverReset, m.cfg.GameOverDelay(), m.now, m.afterGameOver)
}

func (s *ShootoutService) scoreboard() ShootoutScoreboardPayload {
	round, shot := 0, 0
	if len(s.rounds) > 0 {
		last := s.rounds[len(s.rounds)-1]
		round, shot = last.RoundNumber, last.ShotNumber
	}
	return ShootoutScoreboardPayload{Goals: s.goalsCopy(), Round: round, Shot: shot}
}

func (s *ShootoutService) goalsCopy() map[string]int {
	out := make(map[string]int, len(s.goals))
	for k, v := range s.goals {
		out[k] = v
	}
	return out
}

func (s *ShootoutService) reset() {
	s.phase = shootoutIdle
	s.participants = nil
	s.rounds = nil
	s.goals = make(map[string]int)
}
