package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hockeyzone/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaCareerAdapter creates the initial career record using a conditional
// storage write. The conditional version makes the grant idempotent: the
// second attempt is rejected by storage, not by application logic.
type NakamaCareerAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaCareerAdapter creates a new career adapter.
func NewNakamaCareerAdapter(nk runtime.NakamaModule) *NakamaCareerAdapter {
	return &NakamaCareerAdapter{nk: nk}
}

// EnsureCareerRecord writes the empty career record for a new account.
// Returns created=false when the record already exists.
func (a *NakamaCareerAdapter) EnsureCareerRecord(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}

	record := careerRecord{CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	value, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("failed to marshal career record: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      careerStatsCollection,
			Key:             careerStatsKey,
			UserID:          userID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create career record: %w", err)
	}
	return true, nil
}

var _ ports.CareerPort = (*NakamaCareerAdapter)(nil)
