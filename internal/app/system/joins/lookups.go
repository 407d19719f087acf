// internal/app/system/joins/lookups.go
package joins

import (
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// RatingsByLecturer keeps ratings about lecturer, in source order.
func RatingsByLecturer(ratings []models.Rating, lecturer models.ID) []models.Rating {
	out := make([]models.Rating, 0)
	for _, r := range ratings {
		if r.LecturerID == lecturer {
			out = append(out, r)
		}
	}
	return out
}

// RatingsByStudent keeps ratings written by student, in source order.
func RatingsByStudent(ratings []models.Rating, student models.ID) []models.Rating {
	out := make([]models.Rating, 0)
	for _, r := range ratings {
		if r.UserID == student {
			out = append(out, r)
		}
	}
	return out
}

// ReportsByLecturer keeps reports authored by lecturer, in source order.
func ReportsByLecturer(reports []models.Report, lecturer models.ID) []models.Report {
	out := make([]models.Report, 0)
	for _, r := range reports {
		if r.LecturerID == lecturer {
			out = append(out, r)
		}
	}
	return out
}

// CourseByID returns the first course with id.
func CourseByID(courses []models.Course, id models.ID) (models.Course, bool) {
	if id.IsZero() {
		return models.Course{}, false
	}
	for _, c := range courses {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}

// CourseName resolves either a course id or a course name to the course's
// name. Reports store courseName alongside courseId, and older rows put
// the id in courseName, so both are accepted.
func CourseName(courses []models.Course, idOrName string) string {
	if idOrName == "" {
		return NA
	}
	id := models.ParseID(idOrName)
	for _, c := range courses {
		if c.ID == id || c.Name == idOrName {
			return orDefault(c.Name, UnnamedCourse)
		}
	}
	return NA
}

// ClassName resolves a class id to its name, or "N/A".
func ClassName(classes []models.Class, id models.ID) string {
	if id.IsZero() {
		return NA
	}
	for _, c := range classes {
		if c.ID == id {
			return orDefault(c.Name, UnnamedClass)
		}
	}
	return NA
}

// IsEnrolled reports whether an enrollment for (student, course) exists.
func IsEnrolled(enrollments []models.Enrollment, student, course models.ID) bool {
	for _, e := range enrollments {
		if e.UserID == student && e.CourseID == course {
			return true
		}
	}
	return false
}

// EnrolledCourse is one of a student's enrollments with its course resolved.
type EnrolledCourse struct {
	Enrollment models.Enrollment `json:"enrollment"`
	CourseName string            `json:"courseName"`
	CourseCode string            `json:"courseCode"`
}

// EnrollmentsForStudent lists student's enrollments in source order. An
// enrollment pointing at a missing course is kept with "N/A".
func EnrollmentsForStudent(enrollments []models.Enrollment, courses []models.Course, student models.ID) []EnrolledCourse {
	out := make([]EnrolledCourse, 0)
	for _, e := range enrollments {
		if e.UserID != student {
			continue
		}
		ec := EnrolledCourse{Enrollment: e, CourseName: NA}
		if c, ok := CourseByID(courses, e.CourseID); ok {
			ec.CourseName = orDefault(c.Name, UnnamedCourse)
			ec.CourseCode = c.Code
		}
		out = append(out, ec)
	}
	return out
}

// StudentLecturer is a lecturer the student can rate, with the course that
// connects them.
type StudentLecturer struct {
	Lecturer   models.User `json:"lecturer"`
	CourseID   models.ID   `json:"courseId"`
	CourseName string      `json:"courseName"`
	CourseCode string      `json:"courseCode"`
}

// LecturersForStudent walks courses in source order, keeps those the
// student is enrolled in, and pairs each with its assigned lecturer.
// Courses with no lecturer, or whose lecturer is missing or not a
// lecturer-role user, are dropped: there is nobody to rate.
func LecturersForStudent(enrollments []models.Enrollment, courses []models.Course, users []models.User, student models.ID) []StudentLecturer {
	enrolled := make(map[models.ID]bool)
	for _, e := range enrollments {
		if e.UserID == student {
			enrolled[e.CourseID] = true
		}
	}
	ix := IndexUsers(users)
	out := make([]StudentLecturer, 0)
	for _, c := range courses {
		if !enrolled[c.ID] || c.LecturerID.IsZero() {
			continue
		}
		l, ok := ix.Lecturer(c.LecturerID)
		if !ok {
			continue
		}
		out = append(out, StudentLecturer{
			Lecturer:   l.Public(),
			CourseID:   c.ID,
			CourseName: c.Name,
			CourseCode: c.Code,
		})
	}
	return out
}

// CoursesTaughtBy lists the courses assigned to lecturer, in source order.
func CoursesTaughtBy(courses []models.Course, lecturer models.ID) []models.Course {
	out := make([]models.Course, 0)
	for _, c := range courses {
		if !lecturer.IsZero() && c.LecturerID == lecturer {
			out = append(out, c)
		}
	}
	return out
}

// StudentHistory summarises one student's activity.
type StudentHistory struct {
	Student models.User      `json:"student"`
	Courses []EnrolledCourse `json:"courses"`
	Ratings []models.Rating  `json:"ratings"`
}

// StudentHistories builds a history for every student-role user, in user
// order.
func StudentHistories(users []models.User, enrollments []models.Enrollment, courses []models.Course, ratings []models.Rating) []StudentHistory {
	out := make([]StudentHistory, 0)
	for _, u := range users {
		if u.Role != models.RoleStudent {
			continue
		}
		out = append(out, StudentHistory{
			Student: u.Public(),
			Courses: EnrollmentsForStudent(enrollments, courses, u.ID),
			Ratings: RatingsByStudent(ratings, u.ID),
		})
	}
	return out
}
