package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hockeyzone/internal/domain"
	"hockeyzone/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	careerStatsCollection  = "stats"
	careerStatsKey         = "career_v1"
	matchHistoryCollection = "match_history"
)

// careerRecord is the durable per-player stats document. Counters only ever
// increase; SaveAll merges the session's tallies into whatever is stored.
type careerRecord struct {
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	Saves       int    `json:"saves"`
	GamesPlayed int    `json:"games_played"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type matchHistoryRecord struct {
	MatchID    string `json:"match_id"`
	Mode       string `json:"mode"`
	Outcome    string `json:"outcome"`
	RedScore   int    `json:"red_score"`
	BlueScore  int    `json:"blue_score"`
	WinnerID   string `json:"winner_id,omitempty"`
	Forfeit    bool   `json:"forfeit"`
	FinishedAt string `json:"finished_at"`
}

// NakamaStatsAdapter implements ports.StatsPort on Nakama storage. Tallies
// accumulate in memory during the match; SaveAll is the single flush point
// so a crashed match loses at most one game of stats.
type NakamaStatsAdapter struct {
	nk runtime.NakamaModule

	mode    domain.GameMode
	players []string
	tallies map[string]*careerRecord
	outcome *ports.OutcomeRecord
}

// NewNakamaStatsAdapter creates a stats adapter with an empty session.
func NewNakamaStatsAdapter(nk runtime.NakamaModule) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk, tallies: make(map[string]*careerRecord)}
}

// InitMatch starts a fresh statistics session for the given players.
func (a *NakamaStatsAdapter) InitMatch(ctx context.Context, mode domain.GameMode, playerIDs []string) error {
	a.mode = mode
	a.players = append([]string(nil), playerIDs...)
	a.tallies = make(map[string]*careerRecord, len(playerIDs))
	a.outcome = nil
	for _, id := range playerIDs {
		a.tallies[id] = &careerRecord{GamesPlayed: 1}
	}
	return nil
}

// RecordGoal credits the scorer. Own goals count on the scoreboard but never
// toward the causing player's career goals.
func (a *NakamaStatsAdapter) RecordGoal(ctx context.Context, rec ports.GoalRecord) error {
	if rec.OwnGoal || rec.ScorerID == "" {
		return nil
	}
	a.tally(rec.ScorerID).Goals++
	return nil
}

func (a *NakamaStatsAdapter) RecordAssist(ctx context.Context, playerID string) error {
	if playerID == "" {
		return nil
	}
	a.tally(playerID).Assists++
	return nil
}

func (a *NakamaStatsAdapter) RecordSave(ctx context.Context, playerID string) error {
	if playerID == "" {
		return nil
	}
	a.tally(playerID).Saves++
	return nil
}

func (a *NakamaStatsAdapter) RecordOutcome(ctx context.Context, rec ports.OutcomeRecord) error {
	a.outcome = &rec
	return nil
}

// SaveAll merges session tallies into each player's career record and
// appends a system-owned match history entry.
func (a *NakamaStatsAdapter) SaveAll(ctx context.Context) error {
	if len(a.players) == 0 {
		return nil
	}

	reads := make([]*runtime.StorageRead, 0, len(a.players))
	for _, id := range a.players {
		reads = append(reads, &runtime.StorageRead{
			Collection: careerStatsCollection,
			Key:        careerStatsKey,
			UserID:     id,
		})
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return fmt.Errorf("failed to read career records: %w", err)
	}

	existing := make(map[string]careerRecord, len(objects))
	versions := make(map[string]string, len(objects))
	for _, obj := range objects {
		var rec careerRecord
		if err := json.Unmarshal([]byte(obj.GetValue()), &rec); err != nil {
			return fmt.Errorf("corrupt career record for %s: %w", obj.GetUserId(), err)
		}
		existing[obj.GetUserId()] = rec
		versions[obj.GetUserId()] = obj.GetVersion()
	}

	writes := make([]*runtime.StorageWrite, 0, len(a.players)+1)
	for _, id := range a.players {
		merged := existing[id]
		session := a.tally(id)
		merged.Goals += session.Goals
		merged.Assists += session.Assists
		merged.Saves += session.Saves
		merged.GamesPlayed += session.GamesPlayed

		value, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("failed to marshal career record for %s: %w", id, err)
		}
		writes = append(writes, &runtime.StorageWrite{
			Collection:      careerStatsCollection,
			Key:             careerStatsKey,
			UserID:          id,
			Value:           string(value),
			Version:         versions[id],
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		})
	}

	if a.outcome != nil {
		history := matchHistoryRecord{
			MatchID:    uuid.NewString(),
			Mode:       string(a.outcome.Mode),
			Outcome:    string(a.outcome.Outcome),
			RedScore:   a.outcome.RedScore,
			BlueScore:  a.outcome.BlueScore,
			WinnerID:   a.outcome.WinnerPlayerID,
			Forfeit:    a.outcome.Forfeit,
			FinishedAt: time.Now().UTC().Format(time.RFC3339),
		}
		value, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("failed to marshal match history: %w", err)
		}
		writes = append(writes, &runtime.StorageWrite{
			Collection:      matchHistoryCollection,
			Key:             history.MatchID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		})
	}

	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	return nil
}

func (a *NakamaStatsAdapter) tally(playerID string) *careerRecord {
	rec, ok := a.tallies[playerID]
	if !ok {
		rec = &careerRecord{}
		a.tallies[playerID] = rec
	}
	return rec
}

var _ ports.StatsPort = (*NakamaStatsAdapter)(nil)
