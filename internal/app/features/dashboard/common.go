// internal/app/features/dashboard/common.go
package dashboard

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/export"
)

// baseDashboardData contains fields common to all dashboard views.
type baseDashboardData struct {
	Title   string            `json:"title"`
	User    *auth.SessionUser `json:"user"`
	Banners []banner.Banner   `json:"banners"`
}

func base(title string, u *auth.SessionUser, set *banner.Set) baseDashboardData {
	return baseDashboardData{Title: title, User: u, Banners: set.Items()}
}

func render(w http.ResponseWriter, data any) {
	uierrors.WriteJSON(w, http.StatusOK, data)
}

// personalFile names an export after the user, e.g. "Dr._Palesa_Ramone_dashboard".
func personalFile(name, suffix string) string {
	return strings.Join(strings.Fields(name), "_") + "_" + suffix
}

func (h *Handler) filename(context string) string {
	return export.Filename(context, h.now())
}
