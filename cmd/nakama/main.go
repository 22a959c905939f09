package main

import (
	"context"
	"database/sql"

	"hockeyzone/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is never invoked; Nakama loads the module through InitModule. It
// exists so the package also compiles outside -buildmode=plugin.
func main() {}
