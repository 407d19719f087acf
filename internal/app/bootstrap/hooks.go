// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// StoreHooks wires the collection API (cmd/luctstore) into WAFFLE's
// lifecycle.
var StoreHooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "luctstore",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateStoreConfig,
	ConnectDB:      ConnectStoreDB,
	EnsureSchema:   EnsureStoreSchema,
	Startup:        StoreStartup,
	BuildHandler:   BuildStoreHandler,
	Shutdown:       Shutdown,
}

// PortalHooks wires the reporting portal (cmd/luctportal) into WAFFLE's
// lifecycle.
var PortalHooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "luctportal",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidatePortalConfig,
	ConnectDB:      ConnectPortalDB,
	EnsureSchema:   EnsurePortalSchema,
	Startup:        PortalStartup,
	BuildHandler:   BuildPortalHandler,
	Shutdown:       Shutdown,
}
