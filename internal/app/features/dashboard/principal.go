// internal/app/features/dashboard/principal.go
package dashboard

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/features/shared"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/export"
	"github.com/dalemusser/luctportal/internal/app/system/joins"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Principal lecturer tabs, in display order. Reports is the default.
var prlTabs = []string{"reports", "courses", "classes", "ratings"}

type prlData struct {
	baseDashboardData
	Tab     string                           `json:"tab"`
	Tabs    []string                         `json:"tabs"`
	Reports *shared.PageOf[joins.ReportView] `json:"reports,omitempty"`
	Courses *shared.PageOf[models.Course]    `json:"courses,omitempty"`
	Classes *shared.PageOf[joins.ClassView]  `json:"classes,omitempty"`
	Ratings *shared.PageOf[joins.RatingView] `json:"ratings,omitempty"`
}

func prlTab(r *http.Request) string {
	t := strings.ToLower(query.Get(r, "tab"))
	for _, known := range prlTabs {
		if t == known {
			return t
		}
	}
	return prlTabs[0]
}

// tabCollections lists what each tab has to fetch.
func tabCollections(tab string) []string {
	switch tab {
	case "courses":
		return []string{models.CollCourses}
	case "classes":
		return []string{models.CollClasses, models.CollCourses}
	case "ratings":
		return []string{models.CollRatings, models.CollUsers, models.CollCourses, models.CollEnrollments}
	}
	return []string{models.CollReports, models.CollCourses, models.CollUsers}
}

// ServePrincipal handles GET /dashboard/prl?tab=&move=. Switching tabs
// resets paging; move applies to the active tab.
func (h *Handler) ServePrincipal(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)
	set := banner.NewSet(h.Settings.PRLBanner)
	tab := prlTab(r)

	if r.URL.Query().Get("list") == "" && query.Get(r, "move") != "" {
		q := r.URL.Query()
		q.Set("list", tab)
		r.URL.RawQuery = q.Encode()
	}
	p := shared.RestorePager(w, r, h.SessionMgr, h.Log, "prl", h.Settings.PRLPageSize, tab)
	snap := shared.LoadSnapshot(r, h.Store, set, h.Log, tabCollections(tab)...)

	data := prlData{Tab: tab, Tabs: prlTabs}
	switch tab {
	case "courses":
		pg := shared.PageList(p, tab, snap.Courses, "", nil)
		data.Courses = &pg
	case "classes":
		pg := shared.PageList(p, tab, joins.ClassViews(snap.Classes, snap.Courses), "", nil)
		data.Classes = &pg
	case "ratings":
		pg := shared.PageList(p, tab, joins.RatingViews(snap.Ratings, snap.Users, snap.Courses, snap.Enrollments), "", nil)
		data.Ratings = &pg
	default:
		pg := shared.PageList(p, tab, joins.ReportViews(snap.Reports, snap.Courses, snap.Users), "", nil)
		data.Reports = &pg
	}
	data.baseDashboardData = base("Principal Lecturer Dashboard", u, set)
	render(w, data)
}

// HandleFeedback handles POST /dashboard/prl/reports/{id}/feedback.
func (h *Handler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Feedback string `json:"feedback"`
	}
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	form := submission.FeedbackForm{ReportID: models.ParseID(chi.URLParam(r, "id")), Feedback: in.Feedback}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "report feedback")
	defer cancel()

	report, err := h.Workflow.SubmitFeedback(ctx, form)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "report feedback", err, h.Settings.PRLBanner)
		return
	}
	h.Log.Info("feedback saved", zap.String("report_id", report.ID.String()))
	shared.Success(w, h.Settings.PRLBanner, submission.MsgFeedbackSaved, report)
}

// ExportPrincipal handles GET /dashboard/prl/export/{kind}.xlsx for the
// four tabs. Each file is named "<kind>_<date>.xlsx".
func (h *Handler) ExportPrincipal(w http.ResponseWriter, r *http.Request) {
	kind := strings.TrimSuffix(chi.URLParam(r, "kind"), ".xlsx")
	var sheet string
	for _, t := range prlTabs {
		if kind == t {
			sheet = strings.ToUpper(t[:1]) + t[1:]
		}
	}
	if sheet == "" {
		uierrors.Message(w, http.StatusNotFound, "Unknown export")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "principal export")
	defer cancel()

	names := tabCollections(kind)
	snap := h.Store.Load(ctx, names...)
	if _, err := snap.FirstErr(names...); err != nil {
		h.ErrLog.WriteFor(w, r, "principal export", err, h.Settings.PRLBanner)
		return
	}

	var rows []export.Row
	switch kind {
	case "courses":
		rows = joins.CourseRows(snap.Courses)
	case "classes":
		rows = joins.ClassRows(snap.Classes, snap.Courses)
	case "ratings":
		rows = joins.ReviewRatingRows(snap.Ratings, snap.Users)
	default:
		rows = joins.ReviewReportRows(snap.Reports, snap.Courses, snap.Users)
	}
	res, err := export.ExportRows(rows, h.filename(kind), sheet)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "principal export", err, h.Settings.PRLBanner)
		return
	}
	shared.ServeExport(w, r, res, h.Settings.PRLBanner, h.ErrLog)
}
