package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// GameConfig holds every tunable of the match orchestration. Durations are
// stored as milliseconds in JSON so the config file matches what is
// broadcast to clients.
type GameConfig struct {
	Periods          int   `json:"periods"`
	PeriodDurationMs int64 `json:"period_duration_ms"`

	// Pre-match countdown.
	CountdownToStartSeconds int `json:"countdown_to_start_seconds"`
	// GraceSeconds extends the countdown once when the roster still fails
	// requirements at the balance checkpoint.
	GraceSeconds         int `json:"grace_seconds"`
	StartSequenceSeconds int `json:"start_sequence_seconds"`

	// Interruption windows.
	GoalCelebrationMs  int64 `json:"goal_celebration_ms"`
	OffsideBroadcastMs int64 `json:"offside_broadcast_ms"`
	OffsideCooldownMs  int64 `json:"offside_cooldown_ms"`

	IntermissionMs  int64 `json:"intermission_ms"`
	GameOverDelayMs int64 `json:"game_over_delay_ms"`
	// MoveNotifyDelayMs delays the moved player's own UI update until after
	// their entity has been repositioned.
	MoveNotifyDelayMs int64 `json:"move_notify_delay_ms"`

	MinPlayers int `json:"min_players"`
	MinPerTeam int `json:"min_per_team"`

	ShootoutRounds   int   `json:"shootout_rounds"`
	ShotWindowMs     int64 `json:"shot_window_ms"`
	InterShotPauseMs int64 `json:"inter_shot_pause_ms"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// DefaultGameConfig returns the built-in tuning used when no config file is
// present.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Periods:                 3,
		PeriodDurationMs:        120_000,
		CountdownToStartSeconds: 30,
		GraceSeconds:            15,
		StartSequenceSeconds:    3,
		GoalCelebrationMs:       5_000,
		OffsideBroadcastMs:      2_000,
		OffsideCooldownMs:       4_000,
		IntermissionMs:          10_000,
		GameOverDelayMs:         15_000,
		MoveNotifyDelayMs:       500,
		MinPlayers:              4,
		MinPerTeam:              2,
		ShootoutRounds:          5,
		ShotWindowMs:            9_800,
		InterShotPauseMs:        3_000,
	}
}

// Normalize fills any zero field with its default so a sparse config file
// only needs to override what it cares about.
func (c *GameConfig) Normalize() {
	d := DefaultGameConfig()
	if c.Periods == 0 {
		c.Periods = d.Periods
	}
	if c.PeriodDurationMs == 0 {
		c.PeriodDurationMs = d.PeriodDurationMs
	}
	if c.CountdownToStartSeconds == 0 {
		c.CountdownToStartSeconds = d.CountdownToStartSeconds
	}
	if c.GraceSeconds == 0 {
		c.GraceSeconds = d.GraceSeconds
	}
	if c.StartSequenceSeconds == 0 {
		c.StartSequenceSeconds = d.StartSequenceSeconds
	}
	if c.GoalCelebrationMs == 0 {
		c.GoalCelebrationMs = d.GoalCelebrationMs
	}
	if c.OffsideBroadcastMs == 0 {
		c.OffsideBroadcastMs = d.OffsideBroadcastMs
	}
	if c.OffsideCooldownMs == 0 {
		c.OffsideCooldownMs = d.OffsideCooldownMs
	}
	if c.IntermissionMs == 0 {
		c.IntermissionMs = d.IntermissionMs
	}
	if c.GameOverDelayMs == 0 {
		c.GameOverDelayMs = d.GameOverDelayMs
	}
	if c.MoveNotifyDelayMs == 0 {
		c.MoveNotifyDelayMs = d.MoveNotifyDelayMs
	}
	if c.MinPlayers == 0 {
		c.MinPlayers = d.MinPlayers
	}
	if c.MinPerTeam == 0 {
		c.MinPerTeam = d.MinPerTeam
	}
	if c.ShootoutRounds == 0 {
		c.ShootoutRounds = d.ShootoutRounds
	}
	if c.ShotWindowMs == 0 {
		c.ShotWindowMs = d.ShotWindowMs
	}
	if c.InterShotPauseMs == 0 {
		c.InterShotPauseMs = d.InterShotPauseMs
	}
}

// Duration helpers keep millisecond arithmetic out of the services.

func (c *GameConfig) PeriodDuration() time.Duration   { return msToDuration(c.PeriodDurationMs) }
func (c *GameConfig) GoalCelebration() time.Duration  { return msToDuration(c.GoalCelebrationMs) }
func (c *GameConfig) OffsideBroadcast() time.Duration { return msToDuration(c.OffsideBroadcastMs) }
func (c *GameConfig) OffsideCooldown() time.Duration  { return msToDuration(c.OffsideCooldownMs) }
func (c *GameConfig) Intermission() time.Duration     { return msToDuration(c.IntermissionMs) }
func (c *GameConfig) GameOverDelay() time.Duration    { return msToDuration(c.GameOverDelayMs) }
func (c *GameConfig) MoveNotifyDelay() time.Duration  { return msToDuration(c.MoveNotifyDelayMs) }
func (c *GameConfig) ShotWindow() time.Duration       { return msToDuration(c.ShotWindowMs) }
func (c *GameConfig) InterShotPause() time.Duration   { return msToDuration(c.InterShotPauseMs) }

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		c.Normalize()
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults when no
// file was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return cfg
}
