// internal/app/features/shared/shared.go
package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/export"
	"github.com/dalemusser/luctportal/internal/app/system/limits"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// BannerHeader carries the success message alongside a file download.
const BannerHeader = "X-Banner-Message"

// CollectionLabel is how a collection is named in "Error fetching ..." banners.
func CollectionLabel(name string) string {
	switch name {
	case models.CollRatings:
		return "ratings"
	case models.CollAttendance:
		return "attendance"
	}
	return name
}

// FetchBanners adds one error banner per collection that failed to load and
// logs each failure once. It returns true when anything failed.
func FetchBanners(set *banner.Set, snap *storeclient.Snapshot, log *zap.Logger, order ...string) bool {
	failed := snap.Failed(order...)
	for _, name := range failed {
		err := snap.Err(name)
		log.Warn("collection fetch failed", zap.String("collection", name), zap.Error(err))
		set.FetchError(CollectionLabel(name), err)
	}
	return len(failed) > 0
}

// User returns the signed-in user. Routes are mounted behind RequireRole,
// so a missing user means the handler was wired without it.
func User(r *http.Request) *auth.SessionUser {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return &auth.SessionUser{}
	}
	return u
}

// DecodeJSON reads a size-limited JSON body into v. On failure it writes a
// 400 (or 413) and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxFormSize))
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			uierrors.Message(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		uierrors.Message(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Notice is the body of a successful write.
type Notice struct {
	Message string          `json:"message"`
	Banners []banner.Banner `json:"banners"`
	Data    any             `json:"data,omitempty"`
}

// Success writes a 200 with one success banner.
func Success(w http.ResponseWriter, dismiss time.Duration, msg string, data any) {
	set := banner.NewSet(dismiss)
	set.Success(msg)
	uierrors.WriteJSON(w, http.StatusOK, Notice{Message: msg, Banners: set.Items(), Data: data})
}

// ServeExport sends an export result: the workbook with its success message
// in BannerHeader, or a JSON notice when there was nothing to export.
func ServeExport(w http.ResponseWriter, r *http.Request, res export.Result, dismiss time.Duration, errLog *uierrors.ErrorLogger) {
	if res.Empty() {
		set := banner.NewSet(dismiss)
		set.Error(res.Message)
		uierrors.WriteJSON(w, http.StatusOK, Notice{Message: res.Message, Banners: set.Items()})
		return
	}
	w.Header().Set(BannerHeader, res.Message)
	if err := export.Serve(w, res.Download); err != nil {
		errLog.Log(r, "export write failed", err)
	}
}
