// internal/app/features/dashboard/programleader.go
package dashboard

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/features/shared"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/export"
	"github.com/dalemusser/luctportal/internal/app/system/joins"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

const (
	MsgNoReportsToExport = "No reports available for export."
	MsgReportsExported   = "Reports exported successfully!"
)

// Program leader views. The overview shows every list.
const (
	plOverview = "overview"
	plCourses  = "courses"
	plClasses  = "classes"
	plReports  = "reports"
)

type plData struct {
	baseDashboardData
	View      string                           `json:"view"`
	Courses   *shared.PageOf[models.Course]    `json:"courses,omitempty"`
	Classes   *shared.PageOf[joins.ClassView]  `json:"classes,omitempty"`
	Reports   *shared.PageOf[joins.ReportView] `json:"reports,omitempty"`
	Lecturers []models.User                    `json:"lecturers"`
}

func plView(r *http.Request) string {
	switch v := strings.ToLower(query.Get(r, "view")); v {
	case plCourses, plClasses, plReports:
		return v
	}
	return plOverview
}

// ServeProgramLeader handles GET /dashboard/pl?view=&list=&move=.
func (h *Handler) ServeProgramLeader(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)
	set := banner.NewSet(h.Settings.PLBanner)
	view := plView(r)
	p := shared.RestorePager(w, r, h.SessionMgr, h.Log, "pl", h.Settings.PLPageSize, view)

	snap := shared.LoadSnapshot(r, h.Store, set, h.Log,
		models.CollCourses, models.CollClasses, models.CollReports, models.CollUsers)

	data := plData{
		baseDashboardData: base("Program Leader Dashboard", u, set),
		View:              view,
		Lecturers:         publicUsers(joins.Lecturers(snap.Users)),
	}
	show := func(list string) bool { return view == plOverview || view == list }
	if show(plCourses) {
		pg := shared.PageList(p, plCourses, snap.Courses, "", nil)
		data.Courses = &pg
	}
	if show(plClasses) {
		pg := shared.PageList(p, plClasses, joins.ClassViews(snap.Classes, snap.Courses), "", nil)
		data.Classes = &pg
	}
	if show(plReports) {
		pg := shared.PageList(p, plReports, joins.ReportViews(snap.Reports, snap.Courses, snap.Users), "", nil)
		data.Reports = &pg
	}
	render(w, data)
}

func publicUsers(users []models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// HandleCreateCourse handles POST /dashboard/pl/courses.
func (h *Handler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var form submission.CourseForm
	if !shared.DecodeJSON(w, r, &form) {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create course")
	defer cancel()

	c, err := h.Workflow.CreateCourse(ctx, form)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "create course", err, h.Settings.PLBanner)
		return
	}
	h.Log.Info("course created", zap.String("course_id", c.ID.String()), zap.String("code", c.Code))
	shared.Success(w, h.Settings.PLBanner, submission.MsgCourseAdded, c)
}

// HandleCreateClass handles POST /dashboard/pl/classes.
func (h *Handler) HandleCreateClass(w http.ResponseWriter, r *http.Request) {
	var form submission.ClassForm
	if !shared.DecodeJSON(w, r, &form) {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create class")
	defer cancel()

	c, err := h.Workflow.CreateClass(ctx, form)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "create class", err, h.Settings.PLBanner)
		return
	}
	h.Log.Info("class created", zap.String("class_id", c.ID.String()))
	shared.Success(w, h.Settings.PLBanner, submission.MsgClassAdded, c)
}

// assignForm reads {"lecturerId": ...} and takes the target from the URL.
func assignForm(w http.ResponseWriter, r *http.Request) (submission.AssignForm, bool) {
	var in struct {
		LecturerID models.ID `json:"lecturerId"`
	}
	if !shared.DecodeJSON(w, r, &in) {
		return submission.AssignForm{}, false
	}
	return submission.AssignForm{TargetID: models.ParseID(chi.URLParam(r, "id")), LecturerID: in.LecturerID}, true
}

// HandleAssignCourse handles POST /dashboard/pl/courses/{id}/lecturer.
func (h *Handler) HandleAssignCourse(w http.ResponseWriter, r *http.Request) {
	form, ok := assignForm(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "assign course lecturer")
	defer cancel()

	c, err := h.Workflow.AssignCourseLecturer(ctx, form)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "assign course lecturer", err, h.Settings.PLBanner)
		return
	}
	shared.Success(w, h.Settings.PLBanner, submission.AssignedMessage(c.LecturerName, false), c)
}

// HandleAssignClass handles POST /dashboard/pl/classes/{id}/lecturer.
func (h *Handler) HandleAssignClass(w http.ResponseWriter, r *http.Request) {
	form, ok := assignForm(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "assign class lecturer")
	defer cancel()

	c, err := h.Workflow.AssignClassLecturer(ctx, form)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "assign class lecturer", err, h.Settings.PLBanner)
		return
	}
	shared.Success(w, h.Settings.PLBanner, submission.AssignedMessage(c.LecturerName, true), c)
}

// ExportProgramReports handles GET /dashboard/pl/export/reports.xlsx. It
// always fetches fresh rather than exporting the page on screen.
func (h *Handler) ExportProgramReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "program reports export")
	defer cancel()

	snap := h.Store.Load(ctx, models.CollReports, models.CollUsers)
	if _, err := snap.FirstErr(models.CollReports, models.CollUsers); err != nil {
		h.ErrLog.WriteFor(w, r, "program reports export", err, h.Settings.PLBanner)
		return
	}
	res, err := export.ExportRows(joins.ProgramReportRows(snap.Reports, snap.Users), h.filename("LUCT_Reports"), "Reports")
	if err != nil {
		h.ErrLog.WriteFor(w, r, "program reports export", err, h.Settings.PLBanner)
		return
	}
	if res.Empty() {
		res.Message = MsgNoReportsToExport
	} else {
		res.Message = MsgReportsExported
	}
	shared.ServeExport(w, r, res, h.Settings.PLBanner, h.ErrLog)
}
