// internal/app/system/joins/views.go
package joins

import (
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// DateLayout is how dates are shown and exported.
const DateLayout = "2006-01-02"

// FormatDate renders a stored date or timestamp, or "No date" when it is
// missing or unparseable.
func FormatDate(s string) string {
	t, ok := models.ParseTimestamp(s)
	if !ok {
		return NoDate
	}
	return t.Format(DateLayout)
}

// CreatedDate renders a report's createdAt, or "N/A".
func CreatedDate(r models.Report) string {
	t, ok := r.Created()
	if !ok {
		return NA
	}
	return t.Format(DateLayout)
}

// FeedbackText is the reviewer feedback, or "No feedback".
func FeedbackText(r models.Report) string {
	if !r.HasFeedback() {
		return NoFeedback
	}
	return *r.Feedback
}

// ReportView is a report with its foreign keys resolved for display.
type ReportView struct {
	models.Report
	CourseLabel  string `json:"courseLabel"`
	LecturerName string `json:"lecturerName"`
	Created      string `json:"created"`
	DateLabel    string `json:"dateLabel"`
	FeedbackText string `json:"feedbackText"`
}

// ReportViews resolves course and lecturer names for each report. A
// report whose author cannot be found shows "Unknown Lecturer".
func ReportViews(reports []models.Report, courses []models.Course, users []models.User) []ReportView {
	ix := IndexUsers(users)
	out := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		lecturer := UnknownLecturer
		if u, ok := ix[r.LecturerID]; ok && !r.LecturerID.IsZero() {
			lecturer = orDefault(u.Name, UnnamedLecturer)
		}
		out = append(out, ReportView{
			Report:       r,
			CourseLabel:  reportCourse(courses, r),
			LecturerName: lecturer,
			Created:      CreatedDate(r),
			DateLabel:    FormatDate(r.Date),
			FeedbackText: FeedbackText(r),
		})
	}
	return out
}

func reportCourse(courses []models.Course, r models.Report) string {
	if !r.CourseID.IsZero() {
		if c, ok := CourseByID(courses, r.CourseID); ok {
			return orDefault(c.Name, UnnamedCourse)
		}
	}
	if r.CourseName != "" {
		return CourseName(courses, r.CourseName)
	}
	return NA
}

// ClassView is a class with its course and lecturer labels resolved.
type ClassView struct {
	models.Class
	CourseLabel   string `json:"courseLabel"`
	LecturerLabel string `json:"lecturerLabel"`
}

// ClassViews resolves class course names; a class with no cached
// lecturer name shows "Unassigned".
func ClassViews(classes []models.Class, courses []models.Course) []ClassView {
	out := make([]ClassView, 0, len(classes))
	for _, c := range classes {
		out = append(out, ClassView{
			Class:         c,
			CourseLabel:   CourseName(courses, c.CourseID.String()),
			LecturerLabel: orDefault(c.LecturerName, Unassigned),
		})
	}
	return out
}

// RatingView is a rating with both parties named.
type RatingView struct {
	models.Rating
	LecturerName string `json:"lecturerName"`
	RaterName    string `json:"raterName"`
	CourseName   string `json:"courseName"`
	DateLabel    string `json:"dateLabel"`
}

// RatingViews names the lecturer and rater of each rating. CourseName is
// the first course the lecturer teaches that the rater is enrolled in, if
// any.
func RatingViews(ratings []models.Rating, users []models.User, courses []models.Course, enrollments []models.Enrollment) []RatingView {
	ix := IndexUsers(users)
	out := make([]RatingView, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, RatingView{
			Rating:       r,
			LecturerName: ix.LecturerName(r.LecturerID),
			RaterName:    ix.Name(r.UserID),
			CourseName:   sharedCourse(courses, enrollments, r.LecturerID, r.UserID),
			DateLabel:    FormatDate(r.Date),
		})
	}
	return out
}

func sharedCourse(courses []models.Course, enrollments []models.Enrollment, lecturer, student models.ID) string {
	for _, c := range CoursesTaughtBy(courses, lecturer) {
		if IsEnrolled(enrollments, student, c.ID) {
			return c.Name
		}
	}
	return ""
}
