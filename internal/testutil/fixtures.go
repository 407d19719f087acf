package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Campus is a small, consistent data set used across feature tests: one of
// each role, two courses, one class, enrollments, a report with attendance,
// and a rating. Ids are fixed so tests can refer to them directly.
type Campus struct {
	Student   models.User
	Student2  models.User
	Lecturer  models.User
	Lecturer2 models.User
	PL        models.User
	PRL       models.User
	Courses   []models.Course
	Class     models.Class
	Report    models.Report
}

// SeedCampus loads the Campus data set into a FakeStore.
func SeedCampus(t *testing.T, fs *FakeStore) Campus {
	t.Helper()
	c := Campus{
		Student:   models.User{ID: "1", Name: "Lerato Mokoena", Email: "lerato@luct.ac.ls", Password: "secret1", Role: models.RoleStudent},
		Student2:  models.User{ID: "2", Name: "Thabo Nkosi", Email: "thabo@luct.ac.ls", Password: "secret2", Role: models.RoleStudent},
		Lecturer:  models.User{ID: "3", Name: "Dr. Palesa Ramone", Email: "palesa@luct.ac.ls", Password: "secret3", Role: models.RoleLecturer},
		Lecturer2: models.User{ID: "4", Name: "Mr. Tumelo Sello", Email: "tumelo@luct.ac.ls", Password: "secret4", Role: models.RoleLecturer},
		PL:        models.User{ID: "5", Name: "Ms. Naledi Khama", Email: "naledi@luct.ac.ls", Password: "secret5", Role: models.RolePL},
		PRL:       models.User{ID: "6", Name: "Prof. Mpho Letsie", Email: "mpho@luct.ac.ls", Password: "secret6", Role: models.RolePRL},
	}
	c.Courses = []models.Course{
		{ID: "10", Name: "Web Application Development", Code: "DIWA2110", FacultyName: "FICT", LecturerID: "3", LecturerName: "Dr. Palesa Ramone"},
		{ID: "11", Name: "Database Systems", Code: "DBS2120", FacultyName: "FICT"},
	}
	c.Class = models.Class{ID: "20", Name: "BSCSM Y2", CourseID: "10", Venue: "Hall 6", Time: "08:30", LecturerID: "3", LecturerName: "Dr. Palesa Ramone"}
	c.Report = models.Report{
		ID: "30", LecturerID: "3", CourseID: "10", CourseName: "Web Application Development",
		Week: "3", Date: "2025-03-03", Topic: "REST APIs", Venue: "Hall 6", Time: "08:30",
		Outcomes: "Students built a JSON endpoint", Recommendations: "More lab time",
		Present: 2, Total: 2, CreatedAt: "2025-03-03T10:00:00Z",
	}

	fs.Seed(models.CollUsers, c.Student, c.Student2, c.Lecturer, c.Lecturer2, c.PL, c.PRL)
	fs.Seed(models.CollCourses, c.Courses[0], c.Courses[1])
	fs.Seed(models.CollClasses, c.Class)
	fs.Seed(models.CollEnrollments,
		models.Enrollment{ID: "40", UserID: "1", CourseID: "10"},
		models.Enrollment{ID: "41", UserID: "2", CourseID: "10"},
	)
	fs.Seed(models.CollReports, c.Report)
	fs.Seed(models.CollAttendance,
		models.AttendanceRecord{ID: "50", ReportID: "30", StudentID: "1", CourseID: "10", Date: "2025-03-03", Status: models.AttendanceStatusPresent},
		models.AttendanceRecord{ID: "51", ReportID: "30", StudentID: "2", CourseID: "10", Date: "2025-03-03", Status: models.AttendanceStatusPresent},
	)
	fs.Seed(models.CollRatings,
		models.Rating{ID: "60", LecturerID: "3", UserID: "1", Rating: 4, Comment: "Clear explanations", Date: "2025-03-04"},
	)
	return c
}
