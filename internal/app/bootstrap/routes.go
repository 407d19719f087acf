// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	collectionsfeature "github.com/dalemusser/luctportal/internal/app/features/collections"
	dashboardfeature "github.com/dalemusser/luctportal/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/luctportal/internal/app/features/errors"
	healthfeature "github.com/dalemusser/luctportal/internal/app/features/health"
	homefeature "github.com/dalemusser/luctportal/internal/app/features/home"
	loginfeature "github.com/dalemusser/luctportal/internal/app/features/login"
	logoutfeature "github.com/dalemusser/luctportal/internal/app/features/logout"
	recordstore "github.com/dalemusser/luctportal/internal/app/store/records"
	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/app/system/ratelimit"
)

// BuildStoreHandler constructs the collection API router for luctstore:
// the health check plus the generic record endpoints and the credential
// check.
func BuildStoreHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	records := recordstore.New(deps.MongoDatabase, logger)

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler("database", healthfeature.MongoCheck(deps.MongoClient), logger)
	healthHandler.Counts = records
	r.Mount("/health", healthfeature.Routes(healthHandler))

	limiter := ratelimit.NewLoginLimiter(appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	collectionsHandler := collectionsfeature.NewHandler(records, limiter, logger)
	r.Mount("/", collectionsfeature.Routes(collectionsHandler))

	return r, nil
}

// BuildPortalHandler constructs the portal router for luctportal.
//
// Session middleware runs on every request so handlers can read the
// signed-in user through auth.CurrentUser. Role dashboards live under
// /dashboard/{role}; the collection store is only ever reached through
// deps.Store.
func BuildPortalHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler("store", deps.Store.Ping, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	loginHandler := loginfeature.NewHandler(deps.Store, deps.Workflow, sessionMgr, errLog, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler, sessionMgr))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	settings := dashboardfeature.Settings{
		StudentPageSize: appCfg.StudentPageSize,
		PLPageSize:      appCfg.PLPageSize,
		PRLPageSize:     appCfg.PRLPageSize,
		StudentBanner:   appCfg.BannerStudent,
		LecturerBanner:  appCfg.BannerLecturer,
		PLBanner:        appCfg.BannerPL,
		PRLBanner:       appCfg.BannerPRL,
	}
	dashboardHandler := dashboardfeature.NewHandler(deps.Store, deps.Workflow, sessionMgr, errLog, settings, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	return r, nil
}
