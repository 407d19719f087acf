// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for both LUCT binaries.
//
// These values come from environment variables (LUCT_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers the framework-level settings (ports, TLS, logging, CORS).
//
// luctstore reads the Mongo settings; luctportal reads everything else.
// Both read the same keys so one config file can serve a deployment.
type AppConfig struct {
	// MongoDB connection configuration (luctstore)
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Collection API the portal talks to
	StoreBaseURL string        // e.g., http://localhost:8081
	StoreTimeout time.Duration // transport-level cap on any single store call

	// Redis backs submission intents and the resume queue. Blank RedisAddr
	// keeps intents in memory and retries them with a periodic sweep.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: luct-session)
	SessionDomain string // Cookie domain (blank means current host)
	SessionMaxAge time.Duration

	// Dashboards
	StudentPageSize int
	PLPageSize      int
	PRLPageSize     int
	BannerStudent   time.Duration
	BannerLecturer  time.Duration
	BannerPL        time.Duration
	BannerPRL       time.Duration

	// Partial-submission recovery
	ReconcileMaxRetry    int
	ReconcileDelay       time.Duration
	ReconcileInterval    time.Duration
	ReconcileConcurrency int

	// Login throttling (both the portal login and the store's /auth/login)
	LoginRateLimit  int
	LoginRateWindow time.Duration
}
