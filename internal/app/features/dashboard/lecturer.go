// internal/app/features/dashboard/lecturer.go
package dashboard

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/features/shared"
	"github.com/dalemusser/luctportal/internal/app/store/intents"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/export"
	"github.com/dalemusser/luctportal/internal/app/system/joins"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

const (
	MsgResumed         = "Attendance recorded for every student"
	MsgIntentNotFound  = "Submission not found"
	pendingSubmissions = "pending submissions"
)

// lecturerCourse is a course with its current roster, for the attendance
// checklist.
type lecturerCourse struct {
	models.Course
	Students []joins.RosterEntry `json:"students"`
}

type lecturerData struct {
	baseDashboardData
	Courses []lecturerCourse   `json:"courses"`
	Reports []joins.ReportView `json:"reports"`
	Ratings []joins.RatingView `json:"ratings"`
	Pending []intents.Intent   `json:"pending"`
}

var lecturerCollections = []string{
	models.CollCourses, models.CollEnrollments, models.CollUsers, models.CollReports, models.CollRatings,
}

// ServeLecturer handles GET /dashboard/lecturer.
func (h *Handler) ServeLecturer(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)
	set := banner.NewSet(h.Settings.LecturerBanner)
	snap := shared.LoadSnapshot(r, h.Store, set, h.Log, lecturerCollections...)

	roster := joins.RosterByCourse(snap.Enrollments, snap.Users)
	courses := make([]lecturerCourse, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		students := roster[c.ID]
		if students == nil {
			students = []joins.RosterEntry{}
		}
		courses = append(courses, lecturerCourse{Course: c, Students: students})
	}

	data := lecturerData{
		baseDashboardData: base("Lecturer Dashboard", u, set),
		Courses:           courses,
		Reports:           joins.ReportViews(joins.ReportsByLecturer(snap.Reports, u.ID), snap.Courses, snap.Users),
		Ratings:           joins.RatingViews(joins.RatingsByLecturer(snap.Ratings, u.ID), snap.Users, snap.Courses, snap.Enrollments),
		Pending:           h.pendingFor(r, u.ID, set),
	}
	data.Banners = set.Items()
	render(w, data)
}

func (h *Handler) pendingFor(r *http.Request, lecturer models.ID, set *banner.Set) []intents.Intent {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "list pending submissions")
	defer cancel()

	out := []intents.Intent{}
	all, err := h.Workflow.Pending(ctx)
	if err != nil {
		h.Log.Warn("list pending submissions", zap.Error(err))
		set.FetchError(pendingSubmissions, err)
		return out
	}
	for _, in := range all {
		if in.LecturerID == lecturer {
			out = append(out, in)
		}
	}
	return out
}

// HandleSubmitReport handles POST /dashboard/lecturer/reports. The form is
// checked before anything is fetched; the roster size becomes the report's
// total.
func (h *Handler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var form submission.ReportForm
	if !shared.DecodeJSON(w, r, &form) {
		return
	}
	if err := form.Validate(); err != nil {
		h.ErrLog.WriteFor(w, r, "submit report", err, h.Settings.LecturerBanner)
		return
	}
	u := shared.User(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Workflow(), h.Log, "submit report")
	defer cancel()

	enrollments, err := h.Store.Enrollments(ctx)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "submit report: roster", err, h.Settings.LecturerBanner)
		return
	}
	rosterSize := joins.RosterByCourse(enrollments, nil).Size(form.CourseID)

	report, err := h.Workflow.Submit(ctx, u.ID, form, rosterSize, func(p submission.Progress) {
		h.Log.Debug("report submission",
			zap.String("state", p.State.String()),
			zap.Int("index", p.Index),
			zap.Int("total", p.Total))
	})
	if err != nil {
		h.ErrLog.WriteFor(w, r, "submit report", err, h.Settings.LecturerBanner)
		return
	}
	shared.Success(w, h.Settings.LecturerBanner, submission.MsgReportSubmitted, report)
}

// HandleResume handles POST /dashboard/lecturer/intents/{id}/resume. A
// lecturer can only resume their own submissions.
func (h *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Workflow(), h.Log, "resume submission")
	defer cancel()

	in, err := h.Workflow.Intents.Get(ctx, id)
	if errors.Is(err, intents.ErrNotFound) || (err == nil && in.LecturerID != u.ID) {
		uierrors.Message(w, http.StatusNotFound, MsgIntentNotFound)
		return
	}
	if err != nil {
		h.ErrLog.WriteFor(w, r, "resume submission", err, h.Settings.LecturerBanner)
		return
	}

	report, err := h.Workflow.Resume(ctx, id)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "resume submission", err, h.Settings.LecturerBanner)
		return
	}
	shared.Success(w, h.Settings.LecturerBanner, MsgResumed, report)
}

// ExportLecturer handles GET /dashboard/lecturer/export.xlsx: "Reports"
// and "Ratings" sheets for the signed-in lecturer.
func (h *Handler) ExportLecturer(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "lecturer export")
	defer cancel()

	snap := h.Store.Load(ctx, lecturerCollections...)
	if _, err := snap.FirstErr(lecturerCollections...); err != nil {
		h.ErrLog.WriteFor(w, r, "lecturer export", err, h.Settings.LecturerBanner)
		return
	}
	ratings := joins.RatingViews(joins.RatingsByLecturer(snap.Ratings, u.ID), snap.Users, snap.Courses, snap.Enrollments)
	res, err := export.ExportSheets(h.filename(personalFile(u.Name, "dashboard")),
		export.Sheet{Name: "Reports", Rows: joins.LecturerReportRows(joins.ReportsByLecturer(snap.Reports, u.ID), snap.Courses)},
		export.Sheet{Name: "Ratings", Rows: joins.LecturerRatingRows(ratings)},
	)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "lecturer export", err, h.Settings.LecturerBanner)
		return
	}
	shared.ServeExport(w, r, res, h.Settings.LecturerBanner, h.ErrLog)
}
