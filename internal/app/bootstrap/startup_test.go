package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabase:     "luct_test",
		StoreBaseURL:      "http://localhost:8081",
		StoreTimeout:      5 * time.Second,
		SessionKey:        strings.Repeat("k", 40),
		SessionName:       "luct-session",
		SessionMaxAge:     time.Hour,
		StudentPageSize:   10,
		PLPageSize:        6,
		PRLPageSize:       4,
		BannerStudent:     3 * time.Second,
		BannerLecturer:    5 * time.Second,
		BannerPL:          4 * time.Second,
		BannerPRL:         5 * time.Second,
		ReconcileMaxRetry: 3,
		ReconcileDelay:    time.Minute,
		ReconcileInterval: time.Minute,
		LoginRateLimit:    10,
		LoginRateWindow:   time.Minute,
	}
}

func TestValidatePortalConfig(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		env     string
		wantErr string
	}{
		{name: "valid"},
		{name: "relative store url", mutate: func(c *AppConfig) { c.StoreBaseURL = "localhost:8081" }, wantErr: "store_base_url"},
		{name: "zero page size", mutate: func(c *AppConfig) { c.PLPageSize = 0 }, wantErr: "pl_page_size"},
		{name: "negative retries", mutate: func(c *AppConfig) { c.ReconcileMaxRetry = -1 }, wantErr: "reconcile_max_retry"},
		{name: "no login window", mutate: func(c *AppConfig) { c.LoginRateWindow = 0 }, wantErr: "login_rate"},
		{name: "dev key in prod", mutate: func(c *AppConfig) { c.SessionKey = devSessionKey }, env: "prod", wantErr: "session_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			c := core
			if tt.env != "" {
				c = &config.CoreConfig{Env: tt.env}
			}
			err := ValidatePortalConfig(c, cfg, testLogger())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateStoreConfig(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}

	assert.NoError(t, ValidateStoreConfig(core, validAppConfig(), testLogger()))

	noDB := validAppConfig()
	noDB.MongoDatabase = ""
	assert.Error(t, ValidateStoreConfig(core, noDB, testLogger()))
}

// portal boots the portal against a fake collection API without Redis.
func portal(t *testing.T) (http.Handler, DBDeps, *testutil.FakeStore) {
	t.Helper()
	fs := testutil.NewFakeStore(t)
	testutil.SeedCampus(t, fs)

	cfg := validAppConfig()
	cfg.StoreBaseURL = fs.URL()
	core := &config.CoreConfig{Env: "dev"}

	deps, err := ConnectPortalDB(context.Background(), core, cfg, testLogger())
	require.NoError(t, err)
	require.Nil(t, deps.Redis)
	require.Nil(t, deps.Queue)
	require.NotNil(t, deps.Workflow)
	assert.Nil(t, deps.Workflow.Queue, "no queue must mean a nil interface")

	h, err := BuildPortalHandler(core, cfg, deps, testLogger())
	require.NoError(t, err)
	return h, deps, fs
}

func TestPortal_LoginThenDashboard(t *testing.T) {
	h, _, _ := portal(t)

	body, _ := json.Marshal(map[string]string{"email": "lerato@luct.ac.ls", "password": "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/student", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/dashboard/student", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lerato Mokoena")
}

func TestPortal_PublicRoutes(t *testing.T) {
	h, _, _ := portal(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Limkokwing")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/student", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPortal_StartupAndShutdownWithoutRedis(t *testing.T) {
	_, deps, _ := portal(t)
	core := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig()

	require.NoError(t, PortalStartup(context.Background(), core, cfg, deps, testLogger()))
	require.NotNil(t, deps.background.sweep)
	assert.Nil(t, deps.background.resume)

	assert.NoError(t, Shutdown(context.Background(), core, cfg, deps, testLogger()))
}

func TestStoreHandler_Mongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig()
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db, background: &background{}}

	require.NoError(t, EnsureStoreSchema(ctx, core, cfg, deps, testLogger()))

	h, err := BuildStoreHandler(core, cfg, deps, testLogger())
	require.NoError(t, err)

	body := `{"userId":1,"courseId":10,"enrolledAt":"2025-03-01T08:00:00Z"}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/enrollments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "attempt %d: %s", i+1, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "enrollments")
}
