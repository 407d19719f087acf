package joins

import (
	"reflect"
	"testing"

	"github.com/dalemusser/luctportal/internal/app/system/export"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

func TestRowBuilders_UniformKeys(t *testing.T) {
	reports := []models.Report{
		{ID: "1", LecturerID: "20", CourseID: "1", Topic: "Intro", Date: "2024-01-05", Present: 3, Total: 4},
		{ID: "2", LecturerID: "404", CourseName: "Math"},
	}
	ratings := []models.Rating{
		{LecturerID: "20", UserID: "5", Rating: 4, Comment: "ok"},
		{LecturerID: "404", UserID: "404", Rating: 2},
	}
	classes := []models.Class{{ID: "1", Name: "A", CourseID: "1", LecturerName: "Dr. Lee"}, {ID: "2", CourseID: "404"}}

	sets := map[string][]export.Row{
		"lecturer reports": LecturerReportRows(reports, testCourses),
		"lecturer ratings": LecturerRatingRows(RatingViews(ratings, testUsers, testCourses, nil)),
		"student ratings":  StudentRatingRows(ratings, nil),
		"review reports":   ReviewReportRows(reports, testCourses, testUsers),
		"courses":          CourseRows(testCourses),
		"classes":          ClassRows(classes, testCourses),
		"review ratings":   ReviewRatingRows(ratings, testUsers),
		"program reports":  ProgramReportRows(reports, testUsers),
	}
	for name, rows := range sets {
		if len(rows) < 2 {
			t.Errorf("%s: got %d rows", name, len(rows))
			continue
		}
		for i := 1; i < len(rows); i++ {
			if !reflect.DeepEqual(rows[0].Keys(), rows[i].Keys()) {
				t.Errorf("%s: row %d keys %v differ from header %v", name, i, rows[i].Keys(), rows[0].Keys())
			}
		}
	}
}

func get(t *testing.T, r export.Row, key string) any {
	t.Helper()
	v, ok := r.Get(key)
	if !ok {
		t.Fatalf("row has no %q: %v", key, r.Keys())
	}
	return v
}

func TestReviewReportRows_Sentinels(t *testing.T) {
	rows := ReviewReportRows([]models.Report{{LecturerID: "5", CourseID: "404"}}, testCourses, testUsers)
	r := rows[0]
	if got := get(t, r, "Course"); got != NA {
		t.Errorf("Course = %v", got)
	}
	if got := get(t, r, "Topic"); got != NA {
		t.Errorf("Topic = %v", got)
	}
	if got := get(t, r, "Date"); got != NoDate {
		t.Errorf("Date = %v", got)
	}
	// author is a student, so not resolvable as a lecturer
	if got := get(t, r, "SubmittedBy"); got != NA {
		t.Errorf("SubmittedBy = %v", got)
	}
	if got := get(t, r, "Feedback"); got != NoFeedback {
		t.Errorf("Feedback = %v", got)
	}
}

func TestClassRows_Unassigned(t *testing.T) {
	rows := ClassRows([]models.Class{{Name: "Lab", CourseID: "2"}}, testCourses)
	if got := get(t, rows[0], "Lecturer"); got != Unassigned {
		t.Errorf("Lecturer = %v", got)
	}
	if got := get(t, rows[0], "Course"); got != "Math" {
		t.Errorf("Course = %v", got)
	}
}

func TestProgramReportRows(t *testing.T) {
	rows := ProgramReportRows([]models.Report{
		{ID: "9", LecturerID: "20", CreatedAt: "2024-05-06T07:08:09Z"},
		{ID: "10", LecturerID: "404"},
	}, testUsers)
	if got := get(t, rows[0], "lecturerName"); got != "Dr. Lee" {
		t.Errorf("lecturerName = %v", got)
	}
	if got := get(t, rows[0], "Date"); got != "2024-05-06" {
		t.Errorf("Date = %v", got)
	}
	if got := get(t, rows[1], "lecturerName"); got != UnknownLecturer {
		t.Errorf("lecturerName = %v", got)
	}
	if got := get(t, rows[1], "Date"); got != NA {
		t.Errorf("Date = %v", got)
	}
}

func TestLecturerRatingRows_ResolvesStudentAndCourse(t *testing.T) {
	enrollments := []models.Enrollment{{UserID: "5", CourseID: "1"}}
	views := RatingViews([]models.Rating{{LecturerID: "20", UserID: "5", Rating: 5, Comment: "great"}}, testUsers, testCourses, enrollments)
	rows := LecturerRatingRows(views)
	if got := get(t, rows[0], "Student"); got != "Ann" {
		t.Errorf("Student = %v", got)
	}
	if got := get(t, rows[0], "Course"); got != "CS101" {
		t.Errorf("Course = %v", got)
	}
	if got := get(t, rows[0], "Rating"); got != 5 {
		t.Errorf("Rating = %v", got)
	}
}
