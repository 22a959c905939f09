package app

// Formation names understood by the spawn collaborator.
const (
	FormationSpawn   = "spawn"
	FormationFaceoff = "faceoff"
)

// ShotsPerRound is fixed by the shootout format: each round has one shot
// per participant.
const ShotsPerRound = 2

// balanceCheckpointSeconds is the countdown mark at which the balance
// planner runs once before players are committed to the match.
const balanceCheckpointSeconds = 5
