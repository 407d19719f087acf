// internal/app/system/submission/actions.go
package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/luctportal/internal/app/system/htmlsanitize"
	"github.com/dalemusser/luctportal/internal/app/system/joins"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/app/system/validation"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// SubmitRating records a student's rating. A rating of 0 (no star
// selected) is refused before anything is sent.
func (w *Workflow) SubmitRating(ctx context.Context, student models.ID, f RatingForm) (models.Rating, error) {
	if err := f.Validate(); err != nil {
		return models.Rating{}, err
	}
	return w.Store.CreateRating(ctx, models.Rating{
		LecturerID: f.LecturerID,
		UserID:     student,
		Rating:     f.Rating,
		Comment:    htmlsanitize.PlainText(f.Comment),
		Date:       w.now().UTC().Format(time.RFC3339Nano),
	})
}

// SubmitFeedback writes a reviewer's feedback onto a report. Any earlier
// feedback is overwritten.
func (w *Workflow) SubmitFeedback(ctx context.Context, f FeedbackForm) (models.Report, error) {
	f.Feedback = htmlsanitize.PlainText(f.Feedback)
	if err := f.Validate(); err != nil {
		return models.Report{}, err
	}
	return w.Store.PatchReport(ctx, f.ReportID, map[string]any{"feedback": f.Feedback})
}

// Enroll enrolls student in a course after checking the current
// enrollments. Two concurrent enrolls can both pass that check; the store's
// unique index rejects the second and it is reported the same way.
func (w *Workflow) Enroll(ctx context.Context, student models.ID, f EnrollForm) (models.Enrollment, error) {
	if err := f.Validate(); err != nil {
		return models.Enrollment{}, err
	}
	existing, err := w.Store.Enrollments(ctx)
	if err != nil {
		return models.Enrollment{}, err
	}
	if joins.IsEnrolled(existing, student, f.CourseID) {
		return models.Enrollment{}, alreadyEnrolled()
	}
	e, err := w.Store.CreateEnrollment(ctx, models.Enrollment{UserID: student, CourseID: f.CourseID})
	if storeclient.IsConflict(err) {
		return models.Enrollment{}, alreadyEnrolled()
	}
	return e, err
}

func alreadyEnrolled() error {
	return validation.New(MsgAlreadyEnrolled, validation.FieldError{Field: "courseId", Message: MsgAlreadyEnrolled})
}

// CreateCourse adds a course with no lecturer assigned.
func (w *Workflow) CreateCourse(ctx context.Context, f CourseForm) (models.Course, error) {
	htmlsanitize.Fields(&f.Name, &f.Code, &f.FacultyName)
	if err := f.Validate(); err != nil {
		return models.Course{}, err
	}
	return w.Store.CreateCourse(ctx, models.Course{Name: f.Name, Code: f.Code, FacultyName: f.FacultyName})
}

// CreateClass adds a class under a course with no lecturer assigned.
func (w *Workflow) CreateClass(ctx context.Context, f ClassForm) (models.Class, error) {
	htmlsanitize.Fields(&f.Name, &f.Venue, &f.Time)
	if err := f.Validate(); err != nil {
		return models.Class{}, err
	}
	return w.Store.CreateClass(ctx, models.Class{Name: f.Name, Venue: f.Venue, Time: f.Time, CourseID: f.CourseID})
}

// lecturerFor looks the lecturer up fresh so the cached name written next
// to lecturerId is current, and refuses users without the lecturer role.
func (w *Workflow) lecturerFor(ctx context.Context, f AssignForm) (models.User, error) {
	if err := f.Validate(); err != nil {
		return models.User{}, err
	}
	users, err := w.Store.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	l, ok := joins.IndexUsers(users).Lecturer(f.LecturerID)
	if !ok {
		return models.User{}, validation.New(MsgNotALecturer, validation.FieldError{Field: "lecturerId", Message: MsgNotALecturer})
	}
	return l, nil
}

// AssignCourseLecturer sets a course's lecturer. Concurrent assignments
// are last-write-wins.
func (w *Workflow) AssignCourseLecturer(ctx context.Context, f AssignForm) (models.Course, error) {
	l, err := w.lecturerFor(ctx, f)
	if err != nil {
		return models.Course{}, err
	}
	return w.Store.PatchCourse(ctx, f.TargetID, map[string]any{"lecturerId": l.ID, "lecturerName": l.Name})
}

// AssignClassLecturer sets a class's lecturer.
func (w *Workflow) AssignClassLecturer(ctx context.Context, f AssignForm) (models.Class, error) {
	l, err := w.lecturerFor(ctx, f)
	if err != nil {
		return models.Class{}, err
	}
	return w.Store.PatchClass(ctx, f.TargetID, map[string]any{"lecturerId": l.ID, "lecturerName": l.Name})
}

// AssignedMessage is the success banner after an assignment.
func AssignedMessage(lecturerName string, toClass bool) string {
	if toClass {
		return fmt.Sprintf("Lecturer %s assigned to class successfully!", lecturerName)
	}
	return fmt.Sprintf("Lecturer %s assigned successfully!", lecturerName)
}

// Register creates an account. The email is stored lower-cased.
func (w *Workflow) Register(ctx context.Context, f RegisterForm) (models.User, error) {
	f.Name = htmlsanitize.PlainText(f.Name)
	f.Email = strings.ToLower(trimmed(f.Email))
	if err := f.Validate(); err != nil {
		return models.User{}, err
	}
	return w.Store.CreateUser(ctx, models.User{Name: f.Name, Email: f.Email, Password: f.Password, Role: f.Role})
}
