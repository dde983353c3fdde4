// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/store/oauthstate"
	"github.com/tacar/listhub/internal/app/system/workers"
)

// stateCleanup reaps expired OAuth state documents. Held at package
// level so Shutdown can stop it.
var stateCleanup *workers.StateCleanup

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	states := oauthstate.New(deps.MongoDatabase)
	stateCleanup = workers.NewStateCleanup(states, logger, 15*time.Minute)
	stateCleanup.Start()
	return nil
}
