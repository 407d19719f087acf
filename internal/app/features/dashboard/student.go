// internal/app/features/dashboard/student.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/features/shared"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/export"
	"github.com/dalemusser/luctportal/internal/app/system/joins"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

type studentData struct {
	baseDashboardData
	Courses     []models.Course                 `json:"courses"`
	Enrollments []joins.EnrolledCourse          `json:"enrollments"`
	Lecturers   []joins.StudentLecturer         `json:"lecturers"`
	Ratings     shared.PageOf[joins.RatingView] `json:"ratings"`
	Search      string                          `json:"search"`
}

var studentCollections = []string{
	models.CollCourses, models.CollEnrollments, models.CollUsers, models.CollRatings,
}

// ServeStudent handles GET /dashboard/student. ?search= filters the
// student's own ratings by comment; a new search starts from page 0.
func (h *Handler) ServeStudent(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)
	set := banner.NewSet(h.Settings.StudentBanner)
	search := query.Get(r, "search")
	p := shared.RestorePager(w, r, h.SessionMgr, h.Log, "student", h.Settings.StudentPageSize, "search:"+search)

	snap := shared.LoadSnapshot(r, h.Store, set, h.Log, studentCollections...)
	mine := joins.RatingsByStudent(snap.Ratings, u.ID)
	views := joins.RatingViews(mine, snap.Users, snap.Courses, snap.Enrollments)

	data := studentData{
		baseDashboardData: base("Student Dashboard", u, set),
		Courses:           snap.Courses,
		Enrollments:       joins.EnrollmentsForStudent(snap.Enrollments, snap.Courses, u.ID),
		Lecturers:         joins.LecturersForStudent(snap.Enrollments, snap.Courses, snap.Users, u.ID),
		Ratings:           shared.PageList(p, "ratings", views, search, func(v joins.RatingView) string { return v.Comment }),
		Search:            search,
	}
	if data.Courses == nil {
		data.Courses = []models.Course{}
	}

	h.Log.Debug("student dashboard served", zap.String("user_id", u.ID.String()))
	render(w, data)
}

// HandleEnroll handles POST /dashboard/student/enrollments.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	var form submission.EnrollForm
	if !shared.DecodeJSON(w, r, &form) {
		return
	}
	u := shared.User(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "enroll")
	defer cancel()

	e, err := h.Workflow.Enroll(ctx, u.ID, form)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "enroll", err, h.Settings.StudentBanner)
		return
	}
	h.Log.Info("student enrolled", zap.String("user_id", u.ID.String()), zap.String("course_id", e.CourseID.String()))
	shared.Success(w, h.Settings.StudentBanner, submission.MsgEnrolled, e)
}

// HandleRate handles POST /dashboard/student/ratings.
func (h *Handler) HandleRate(w http.ResponseWriter, r *http.Request) {
	var form submission.RatingForm
	if !shared.DecodeJSON(w, r, &form) {
		return
	}
	u := shared.User(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "rate lecturer")
	defer cancel()

	rating, err := h.Workflow.SubmitRating(ctx, u.ID, form)
	if err != nil {
		h.ErrLog.WriteFor(w, r, "rate lecturer", err, h.Settings.StudentBanner)
		return
	}
	shared.Success(w, h.Settings.StudentBanner, submission.MsgRatingSubmitted, rating)
}

// ExportStudent handles GET /dashboard/student/export.xlsx: the student's
// ratings on one "Ratings" sheet.
func (h *Handler) ExportStudent(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "student export")
	defer cancel()

	snap := h.Store.Load(ctx, studentCollections...)
	if _, err := snap.FirstErr(studentCollections...); err != nil {
		h.ErrLog.WriteFor(w, r, "student export", err, h.Settings.StudentBanner)
		return
	}
	rows := joins.StudentRatingRows(
		joins.RatingsByStudent(snap.Ratings, u.ID),
		joins.LecturersForStudent(snap.Enrollments, snap.Courses, snap.Users, u.ID),
	)
	res, err := export.ExportRows(rows, h.filename(personalFile(u.Name, "reports")), "Ratings")
	if err != nil {
		h.ErrLog.WriteFor(w, r, "student export", err, h.Settings.StudentBanner)
		return
	}
	shared.ServeExport(w, r, res, h.Settings.StudentBanner, h.ErrLog)
}
