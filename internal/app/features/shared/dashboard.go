// internal/app/features/shared/dashboard.go
package shared

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/paging"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
)

// LoadSnapshot fetches the named collections for a dashboard and adds a
// fetch banner for each one that failed. Sections whose collection failed
// simply render empty.
func LoadSnapshot(r *http.Request, store *storeclient.Client, set *banner.Set, log *zap.Logger, names ...string) *storeclient.Snapshot {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), log, "dashboard load")
	defer cancel()
	snap := store.Load(ctx, names...)
	FetchBanners(set, snap, log, names...)
	return snap
}

// RestorePager loads the dashboard's pager from the session, resets it when
// the view changed, applies ?list=&move= and saves it back. It must run
// before the response is written.
func RestorePager(w http.ResponseWriter, r *http.Request, sm *auth.SessionManager, log *zap.Logger, dashboard string, size int, view string) *paging.Pager {
	p, saved := sm.Pager(r, dashboard, size)
	if view != saved {
		p.SwitchView()
	}
	if list := r.URL.Query().Get("list"); list != "" {
		p.Apply(list, paging.ParseMove(r))
	}
	if err := sm.SavePager(w, r, dashboard, view, p); err != nil {
		log.Warn("save pager", zap.String("dashboard", dashboard), zap.Error(err))
	}
	return p
}

// PageOf is one page of a list plus its window.
type PageOf[T any] struct {
	Items  []T           `json:"items"`
	Window paging.Window `json:"window"`
}

// PageList filters items on field by q, then returns the pager's current
// page of list.
func PageList[T any](p *paging.Pager, list string, items []T, q string, field func(T) string) PageOf[T] {
	if field == nil {
		field = func(T) string { return "" }
	}
	page, win := paging.FilterPage(items, q, field, p.Current(list), p.Size)
	return PageOf[T]{Items: page, Window: win}
}
