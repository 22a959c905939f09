package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and match handlers for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	voice := voiceServiceFromEnv(ctx)
	if voice == nil {
		logger.Warn("Voice credentials missing; voice token RPC will reject calls.")
	}
	if err := initializer.RegisterRpc(RpcVoiceToken, newVoiceTokenRpc(voice)); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}
	if err := initializer.RegisterMatch(MatchNameHockey, NewMatch); err != nil {
		return err
	}

	logger.Info("HockeyZone Go module loaded.")
	return nil
}
