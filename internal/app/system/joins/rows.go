// internal/app/system/joins/rows.go
package joins

import (
	"github.com/dalemusser/luctportal/internal/app/system/export"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Export row builders. Each returns rows with one fixed key set so the
// first row's header fits every row.

// LecturerReportRows shapes a lecturer's own reports.
func LecturerReportRows(reports []models.Report, courses []models.Course) []export.Row {
	rows := make([]export.Row, 0, len(reports))
	for _, r := range reports {
		course := ""
		if c, ok := CourseByID(courses, r.CourseID); ok {
			course = c.Name
		}
		rows = append(rows, export.NewRow(
			"Course", course,
			"Week", r.Week,
			"Date", r.Date,
			"Topic", r.Topic,
			"Venue", r.Venue,
			"Time", r.Time,
			"Outcomes", r.Outcomes,
			"Recommendations", r.Recommendations,
			"Present", r.Present,
			"Total", r.Total,
		))
	}
	return rows
}

// LecturerRatingRows shapes the ratings a lecturer received.
func LecturerRatingRows(views []RatingView) []export.Row {
	rows := make([]export.Row, 0, len(views))
	for _, v := range views {
		rows = append(rows, export.NewRow(
			"Student", v.RaterName,
			"Course", v.CourseName,
			"Rating", int(v.Rating.Rating),
			"Comment", v.Comment,
		))
	}
	return rows
}

// StudentRatingRows shapes a student's own ratings. Lecturer and course
// come from the student's rateable lecturers; unknown ones are blank.
func StudentRatingRows(ratings []models.Rating, lecturers []StudentLecturer) []export.Row {
	rows := make([]export.Row, 0, len(ratings))
	for _, r := range ratings {
		var name, course string
		for _, l := range lecturers {
			if l.Lecturer.ID == r.LecturerID {
				name, course = l.Lecturer.Name, l.CourseName
				break
			}
		}
		rows = append(rows, export.NewRow(
			"Lecturer", name,
			"Course", course,
			"Rating", int(r.Rating),
			"Comment", r.Comment,
			"Date", r.Date,
		))
	}
	return rows
}

// ReviewReportRows shapes reports for a principal lecturer's review export.
func ReviewReportRows(reports []models.Report, courses []models.Course, users []models.User) []export.Row {
	ix := IndexUsers(users)
	rows := make([]export.Row, 0, len(reports))
	for _, r := range reports {
		courseRef := r.CourseName
		if courseRef == "" {
			courseRef = r.CourseID.String()
		}
		rows = append(rows, export.NewRow(
			"Course", CourseName(courses, courseRef),
			"Topic", orDefault(r.Topic, NA),
			"Date", FormatDate(r.Date),
			"SubmittedBy", ix.LecturerName(r.LecturerID),
			"Feedback", FeedbackText(r),
		))
	}
	return rows
}

// CourseRows shapes the course list.
func CourseRows(courses []models.Course) []export.Row {
	rows := make([]export.Row, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, export.NewRow(
			"Name", orDefault(c.Name, NA),
			"Code", orDefault(c.Code, NA),
			"Faculty", orDefault(c.FacultyName, NA),
		))
	}
	return rows
}

// ClassRows shapes the class list.
func ClassRows(classes []models.Class, courses []models.Course) []export.Row {
	rows := make([]export.Row, 0, len(classes))
	for _, v := range ClassViews(classes, courses) {
		rows = append(rows, export.NewRow(
			"Name", orDefault(v.Name, NA),
			"Lecturer", v.LecturerLabel,
			"Course", v.CourseLabel,
		))
	}
	return rows
}

// ReviewRatingRows shapes every rating for review.
func ReviewRatingRows(ratings []models.Rating, users []models.User) []export.Row {
	ix := IndexUsers(users)
	rows := make([]export.Row, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, export.NewRow(
			"Lecturer", ix.LecturerName(r.LecturerID),
			"Rated By", ix.Name(r.UserID),
			"Rating", int(r.Rating),
			"Comment", r.Comment,
		))
	}
	return rows
}

// ProgramReportRows is the program leader's full report dump: every
// stored field plus the author's name and the creation date.
func ProgramReportRows(reports []models.Report, users []models.User) []export.Row {
	ix := IndexUsers(users)
	rows := make([]export.Row, 0, len(reports))
	for _, r := range reports {
		lecturer := UnknownLecturer
		if u, ok := ix[r.LecturerID]; ok && !r.LecturerID.IsZero() {
			lecturer = u.Name
		}
		feedback := ""
		if r.Feedback != nil {
			feedback = *r.Feedback
		}
		rows = append(rows, export.NewRow(
			"id", r.ID.String(),
			"lecturerId", r.LecturerID.String(),
			"courseId", r.CourseID.String(),
			"courseName", r.CourseName,
			"week", r.Week,
			"date", r.Date,
			"topic", r.Topic,
			"venue", r.Venue,
			"time", r.Time,
			"outcomes", r.Outcomes,
			"recommendations", r.Recommendations,
			"present", r.Present,
			"total", r.Total,
			"feedback", feedback,
			"createdAt", r.CreatedAt,
			"lecturerName", lecturer,
			"Date", CreatedDate(r),
		))
	}
	return rows
}
