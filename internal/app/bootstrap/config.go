// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for LUCT.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, store_base_url, etc.
//   - Environment variables: LUCT_MONGO_URI, LUCT_STORE_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --store_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "luct_reports", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "store_base_url", Default: "http://localhost:8081", Desc: "Base URL of the collection API (luctstore)"},
	{Name: "store_timeout", Default: "30s", Desc: "Transport timeout for any single store request"},

	{Name: "redis_addr", Default: "", Desc: "Redis address for intents and the resume queue (blank: in-memory)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "luct-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session lifetime"},

	{Name: "student_page_size", Default: 10, Desc: "Ratings per page on the student dashboard"},
	{Name: "pl_page_size", Default: 6, Desc: "Items per page on the program leader dashboard"},
	{Name: "prl_page_size", Default: 4, Desc: "Items per page on the principal lecturer dashboard"},
	{Name: "banner_student", Default: "3s", Desc: "Banner auto-dismiss on the student dashboard"},
	{Name: "banner_lecturer", Default: "5s", Desc: "Banner auto-dismiss on the lecturer dashboard"},
	{Name: "banner_pl", Default: "4s", Desc: "Banner auto-dismiss on the program leader dashboard"},
	{Name: "banner_prl", Default: "5s", Desc: "Banner auto-dismiss on the principal lecturer dashboard"},

	{Name: "reconcile_max_retry", Default: 10, Desc: "Queue retries for a partial submission before giving up"},
	{Name: "reconcile_delay", Default: "30s", Desc: "Delay before the first background resume"},
	{Name: "reconcile_interval", Default: "1m", Desc: "Sweep interval when no queue is configured"},
	{Name: "reconcile_concurrency", Default: 2, Desc: "Resume worker concurrency"},

	{Name: "login_rate_limit", Default: 10, Desc: "Credential checks per client IP per window (luctstore /auth/login)"},
	{Name: "login_rate_window", Default: "1m", Desc: "Login rate limit window"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, LUCT_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LUCT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		StoreBaseURL: appValues.String("store_base_url"),
		StoreTimeout: appValues.Duration("store_timeout", 30*time.Second),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		StudentPageSize: appValues.Int("student_page_size"),
		PLPageSize:      appValues.Int("pl_page_size"),
		PRLPageSize:     appValues.Int("prl_page_size"),
		BannerStudent:   appValues.Duration("banner_student", 3*time.Second),
		BannerLecturer:  appValues.Duration("banner_lecturer", 5*time.Second),
		BannerPL:        appValues.Duration("banner_pl", 4*time.Second),
		BannerPRL:       appValues.Duration("banner_prl", 5*time.Second),

		ReconcileMaxRetry:    appValues.Int("reconcile_max_retry"),
		ReconcileDelay:       appValues.Duration("reconcile_delay", 30*time.Second),
		ReconcileInterval:    appValues.Duration("reconcile_interval", time.Minute),
		ReconcileConcurrency: appValues.Int("reconcile_concurrency"),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateStoreConfig checks what luctstore needs before it connects.
func ValidateStoreConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database is required")
	}
	return validateLoginLimit(appCfg)
}

// ValidatePortalConfig checks what luctportal needs before it connects.
// The development session key is refused in production.
func ValidatePortalConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.StoreBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid store_base_url %q", appCfg.StoreBaseURL)
	}
	if coreCfg.Env == "prod" && appCfg.SessionKey == devSessionKey {
		return fmt.Errorf("session_key must be set in production")
	}
	for name, n := range map[string]int{
		"student_page_size": appCfg.StudentPageSize,
		"pl_page_size":      appCfg.PLPageSize,
		"prl_page_size":     appCfg.PRLPageSize,
	} {
		if n <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, n)
		}
	}
	if appCfg.ReconcileMaxRetry < 0 {
		return fmt.Errorf("reconcile_max_retry must not be negative")
	}
	return validateLoginLimit(appCfg)
}

func validateLoginLimit(appCfg AppConfig) error {
	if appCfg.LoginRateLimit <= 0 || appCfg.LoginRateWindow <= 0 {
		return fmt.Errorf("login_rate_limit and login_rate_window must be positive")
	}
	return nil
}
