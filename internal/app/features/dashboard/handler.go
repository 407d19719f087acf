// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/app/system/paging"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
)

// Settings are the per-dashboard page sizes and banner durations.
type Settings struct {
	StudentPageSize int
	PLPageSize      int
	PRLPageSize     int

	StudentBanner  time.Duration
	LecturerBanner time.Duration
	PLBanner       time.Duration
	PRLBanner      time.Duration
}

// DefaultSettings matches the shipped configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		StudentPageSize: 10,
		PLPageSize:      paging.ProgramLeaderPageSize,
		PRLPageSize:     paging.PrincipalPageSize,
		StudentBanner:   3 * time.Second,
		LecturerBanner:  5 * time.Second,
		PLBanner:        4 * time.Second,
		PRLBanner:       5 * time.Second,
	}
}

type Handler struct {
	Store      *storeclient.Client
	Workflow   *submission.Workflow
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Settings   Settings
	Log        *zap.Logger

	now func() time.Time
}

func NewHandler(store *storeclient.Client, wf *submission.Workflow, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, settings Settings, logger *zap.Logger) *Handler {
	return &Handler{
		Store:      store,
		Workflow:   wf,
		SessionMgr: sm,
		ErrLog:     errLog,
		Settings:   settings,
		Log:        logger,
		now:        time.Now,
	}
}

// ServeDashboard sends a signed-in user to their role's dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok || !u.Role.Valid() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, auth.DashboardPath(u.Role), http.StatusSeeOther)
}
