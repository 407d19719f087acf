// internal/app/system/submission/forms.go
package submission

import (
	"strings"

	"github.com/dalemusser/luctportal/internal/app/system/htmlsanitize"
	"github.com/dalemusser/luctportal/internal/app/system/validation"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// User-facing messages.
const (
	MsgReportRequired   = "Please fill all required fields (Course, Topic, Date)"
	MsgReportSubmitted  = "Report and attendance submitted successfully!"
	MsgStarsRequired    = "Please select a star rating"
	MsgRatingSubmitted  = "Rating submitted"
	MsgFeedbackRequired = "Please provide feedback before submitting"
	MsgFeedbackSaved    = "Feedback submitted successfully"
	MsgCourseRequired   = "Please select a course to enroll"
	MsgAlreadyEnrolled  = "Already enrolled in this course"
	MsgEnrolled         = "Enrolled successfully"
	MsgCourseFields     = "Course name and code are required."
	MsgCourseAdded      = "Course added successfully!"
	MsgClassFields      = "All class fields are required."
	MsgClassAdded       = "Class added successfully!"
	MsgLecturerRequired = "Please select a lecturer"
	MsgNotALecturer     = "Selected user is not a lecturer"
	MsgRegisterFields   = "Unable to register"
)

// ReportForm is a lecturer's weekly report with the students marked
// present. Only course, topic and date are required.
type ReportForm struct {
	CourseID        models.ID   `json:"courseId" label:"Course" validate:"required"`
	CourseName      string      `json:"courseName"`
	Week            string      `json:"week"`
	Date            string      `json:"date" label:"Date" validate:"required,notblank"`
	Topic           string      `json:"topic" label:"Topic" validate:"required,notblank"`
	Venue           string      `json:"venue"`
	Time            string      `json:"time"`
	Outcomes        string      `json:"outcomes"`
	Recommendations string      `json:"recommendations"`
	Present         []models.ID `json:"presentStudents"`
}

// Validate checks the required fields.
func (f ReportForm) Validate() error {
	return validation.Default().Check(f, MsgReportRequired)
}

func (f *ReportForm) clean() {
	htmlsanitize.Fields(&f.Week, &f.Date, &f.Topic, &f.Venue, &f.Time, &f.Outcomes, &f.Recommendations)
	// a student ticked twice still produces one attendance row
	seen := make(map[models.ID]bool, len(f.Present))
	out := f.Present[:0:0]
	for _, id := range f.Present {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	f.Present = out
}

// RatingForm is a student's rating of one lecturer.
type RatingForm struct {
	LecturerID models.ID    `json:"lecturerId" label:"Lecturer" validate:"required"`
	Rating     models.Stars `json:"rating" label:"Rating" validate:"stars"`
	Comment    string       `json:"comment"`
}

// Validate rejects a missing lecturer or a rating outside 1-5 (0 means no
// star was selected).
func (f RatingForm) Validate() error {
	return validation.Default().Check(f, MsgStarsRequired)
}

// FeedbackForm is a reviewer's note on a report.
type FeedbackForm struct {
	ReportID models.ID `json:"reportId" label:"Report" validate:"required"`
	Feedback string    `json:"feedback" label:"Feedback" validate:"required,notblank"`
}

func (f FeedbackForm) Validate() error {
	return validation.Default().Check(f, MsgFeedbackRequired)
}

// EnrollForm enrolls the current student in a course.
type EnrollForm struct {
	CourseID models.ID `json:"courseId" label:"Course" validate:"required"`
}

func (f EnrollForm) Validate() error {
	return validation.Default().Check(f, MsgCourseRequired)
}

// CourseForm creates a course. Faculty is optional.
type CourseForm struct {
	Name        string `json:"name" label:"Course name" validate:"required,notblank"`
	Code        string `json:"code" label:"Course code" validate:"required,notblank"`
	FacultyName string `json:"faculty_name"`
}

func (f CourseForm) Validate() error {
	return validation.Default().Check(f, MsgCourseFields)
}

// ClassForm creates a class; every field is required.
type ClassForm struct {
	Name     string    `json:"name" label:"Class name" validate:"required,notblank"`
	Venue    string    `json:"venue" label:"Venue" validate:"required,notblank"`
	Time     string    `json:"time" label:"Time" validate:"required,notblank"`
	CourseID models.ID `json:"courseId" label:"Course" validate:"required"`
}

func (f ClassForm) Validate() error {
	return validation.Default().Check(f, MsgClassFields)
}

// AssignForm assigns a lecturer to a course or class.
type AssignForm struct {
	TargetID   models.ID `json:"id" label:"Target" validate:"required"`
	LecturerID models.ID `json:"lecturerId" label:"Lecturer" validate:"required"`
}

func (f AssignForm) Validate() error {
	return validation.Default().Check(f, MsgLecturerRequired)
}

// RegisterForm creates a user account.
type RegisterForm struct {
	Name     string      `json:"name" label:"Full name" validate:"required,notblank"`
	Email    string      `json:"email" label:"Email" validate:"required,email"`
	Password string      `json:"password" label:"Password" validate:"required,min=6"`
	Role     models.Role `json:"role" label:"Role" validate:"required,oneof=student lecturer pl prl"`
}

func (f RegisterForm) Validate() error {
	return validation.Default().Check(f, MsgRegisterFields)
}

func trimmed(s string) string { return strings.TrimSpace(s) }
