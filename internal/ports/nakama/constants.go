package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a joinable arena.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call to obtain a signed voice chat token.
	RpcVoiceToken = "voice_token"

	// MatchNameHockey is the authoritative match handler name registered with Nakama.
	MatchNameHockey = "hockeyzone_match"

	// MaxPresences caps connections per arena: twelve skaters plus spectators.
	MaxPresences = 16
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpSelectMode       int64 = 1
	OpProposePosition  int64 = 2
	OpLockPosition     int64 = 3
	OpUnlockPosition   int64 = 4
	OpRegisterShootout int64 = 5
	OpReportGoal       int64 = 6
	OpReportOffside    int64 = 7

	// Server -> Client events
	OpModeAvailability     int64 = 101
	OpModeLocked           int64 = 102
	OpTeamSelectionStarted int64 = 103
	OpShootoutRegistration int64 = 104
	OpWaitingForPlayers    int64 = 105
	OpRosterUpdate         int64 = 106
	OpSelectionRejected    int64 = 107 // send privately
	OpPositionAssigned     int64 = 108 // send privately
	OpCountdownTick        int64 = 109
	OpCountdownGo          int64 = 110
	OpCountdownAborted     int64 = 111
	OpMatchStarted         int64 = 112
	OpScoreUpdate          int64 = 113
	OpGoalOverlay          int64 = 114
	OpOffsideOverlay       int64 = 115
	OpTimerPaused          int64 = 116
	OpTimerResumed         int64 = 117
	OpPeriodUpdate         int64 = 118
	OpPeriodEnded          int64 = 119
	OpGameOver             int64 = 120
	OpRosterReset          int64 = 121
	OpPuckDetached         int64 = 122
	OpDespawnAll           int64 = 123
	OpShootoutScoreboard   int64 = 124
	OpShootoutRound        int64 = 125
	OpShootoutShot         int64 = 126
	OpShootoutResult       int64 = 127
)
