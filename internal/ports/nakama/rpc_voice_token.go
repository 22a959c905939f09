package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"hockeyzone/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceServiceFromEnv builds the token signer from the runtime environment.
// Returns nil when any credential is absent; the RPC then rejects every call.
func voiceServiceFromEnv(ctx context.Context) *app.VoiceService {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["voice_secret"]
	issuer := env["voice_issuer"]
	voiceDomain := env["voice_domain"]
	if secret == "" || issuer == "" || voiceDomain == "" {
		return nil
	}
	return app.NewVoiceService(secret, issuer, voiceDomain)
}

// newVoiceTokenRpc returns the voice token RPC bound to one signer. Join
// channels are derived server-side from the match id and team, so a client
// cannot request a token for an arbitrary channel.
// Payload: {"action": "login" | "join", "match_id": "...", "team": "red" | "blue"}
func newVoiceTokenRpc(voice *app.VoiceService) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req struct {
			Action  string `json:"action"`
			MatchID string `json:"match_id"`
			Team    string `json:"team"`
		}
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
		}

		userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if userID == "" {
			return "", runtime.NewError("User not authenticated", 16) // UNAUTHENTICATED
		}

		if voice == nil {
			logger.Error("Voice credentials missing from runtime environment.")
			return "", runtime.NewError("Voice chat not configured", 13) // INTERNAL
		}

		var channel string
		if req.Action == app.VoiceTokenActionJoin {
			team, ok := parseTeam(req.Team)
			if !ok || req.MatchID == "" {
				return "", runtime.NewError("Invalid payload", 3)
			}
			channel = app.MatchChannel(req.MatchID, team)
		}

		token, err := voice.GenerateToken(userID, req.Action, channel)
		if err != nil {
			logger.Error("Failed to generate voice token: %v", err)
			return "", runtime.NewError("Invalid token request", 3)
		}

		res := map[string]string{"token": token}
		resBytes, _ := json.Marshal(res)
		return string(resBytes), nil
	}
}
