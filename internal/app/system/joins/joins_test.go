package joins

import (
	"reflect"
	"testing"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

func strp(s string) *string { return &s }

var (
	testUsers = []models.User{
		{ID: "5", Name: "Ann", Role: models.RoleStudent},
		{ID: "6", Name: "Ben", Role: models.RoleStudent},
		{ID: "20", Name: "Dr. Lee", Role: models.RoleLecturer},
		{ID: "21", Name: "Ms. Ivy", Role: models.RolePL},
		{ID: "22", Name: "", Role: models.RoleLecturer},
	}
	testCourses = []models.Course{
		{ID: "1", Name: "CS101", Code: "C1", LecturerID: "20", LecturerName: "Dr. Lee"},
		{ID: "2", Name: "Math", Code: "M1"},
		{ID: "3", Name: "Art", Code: "A1", LecturerID: "21"},
		{ID: "4", Name: "Bio", Code: "B1", LecturerID: "99"},
	}
)

func TestResolveUserName(t *testing.T) {
	tests := []struct {
		id   models.ID
		want string
	}{
		{"5", "Ann"},
		{"404", NA},
		{"", NA},
		{"22", UnnamedUser},
	}
	for _, tt := range tests {
		if got := ResolveUserName(testUsers, tt.id); got != tt.want {
			t.Errorf("ResolveUserName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
	if got := ResolveUserName(nil, "5"); got != NA {
		t.Errorf("ResolveUserName over no users = %q, want N/A", got)
	}
}

func TestResolveUserName_NumericAndStringIDsAgree(t *testing.T) {
	users := []models.User{{ID: models.IDFromInt(7), Name: "Num"}}
	if got := ResolveUserName(users, models.ParseID("7")); got != "Num" {
		t.Errorf("got %q, want Num", got)
	}
}

func TestRosterByCourse_Scenario(t *testing.T) {
	enrollments := []models.Enrollment{{ID: "10", UserID: "5", CourseID: "1"}}
	users := []models.User{{ID: "5", Name: "Ann"}}

	got := RosterByCourse(enrollments, users)
	want := Roster{"1": {{StudentID: "5", StudentName: "Ann"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RosterByCourse = %v, want %v", got, want)
	}
}

func TestRosterByCourse_PlaceholderAndOrder(t *testing.T) {
	enrollments := []models.Enrollment{
		{UserID: "6", CourseID: "1"},
		{UserID: "77", CourseID: "1"},
		{UserID: "5", CourseID: "1"},
		{UserID: "5", CourseID: "2"},
		{UserID: "6", CourseID: "1"},
	}
	got := RosterByCourse(enrollments, testUsers)
	want := []RosterEntry{
		{StudentID: "6", StudentName: "Ben"},
		{StudentID: "77", StudentName: "Student 77"},
		{StudentID: "5", StudentName: "Ann"},
		{StudentID: "6", StudentName: "Ben"},
	}
	if !reflect.DeepEqual(got["1"], want) {
		t.Errorf("roster[1] = %v, want %v", got["1"], want)
	}
	if got.Size("1") != 4 {
		t.Errorf("duplicate enrollment should count toward size, got %d", got.Size("1"))
	}
	if got.Size("2") != 1 || !got.Has("2", "5") || got.Has("2", "6") {
		t.Errorf("roster[2] = %v", got["2"])
	}

	again := RosterByCourse(enrollments, testUsers)
	if !reflect.DeepEqual(got, again) {
		t.Error("RosterByCourse is not idempotent")
	}
}

func TestRatingsByLecturer_KeepsOrder(t *testing.T) {
	ratings := []models.Rating{
		{ID: "1", LecturerID: "20", Rating: 5},
		{ID: "2", LecturerID: "30", Rating: 1},
		{ID: "3", LecturerID: "20", Rating: 2},
	}
	got := RatingsByLecturer(ratings, "20")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("RatingsByLecturer = %v", got)
	}
	if got := RatingsByLecturer(ratings, "404"); got == nil || len(got) != 0 {
		t.Errorf("no match should be an empty, non-nil slice, got %#v", got)
	}
}

func TestLecturersForStudent(t *testing.T) {
	enrollments := []models.Enrollment{
		{UserID: "5", CourseID: "4"},
		{UserID: "5", CourseID: "1"},
		{UserID: "5", CourseID: "2"},
		{UserID: "5", CourseID: "3"},
		{UserID: "6", CourseID: "1"},
	}
	got := LecturersForStudent(enrollments, testCourses, testUsers, "5")
	// course 2 has no lecturer, 3 is assigned to a non-lecturer, 4 to a
	// missing user: all dropped.
	if len(got) != 1 {
		t.Fatalf("got %d lecturers, want 1: %v", len(got), got)
	}
	if got[0].Lecturer.Name != "Dr. Lee" || got[0].CourseID != "1" || got[0].CourseName != "CS101" || got[0].CourseCode != "C1" {
		t.Errorf("got %+v", got[0])
	}
}

func TestCourseName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1", "CS101"},
		{"Math", "Math"},
		{"nope", NA},
		{"", NA},
	}
	for _, tt := range tests {
		if got := CourseName(testCourses, tt.in); got != tt.want {
			t.Errorf("CourseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameIndex_LecturerName(t *testing.T) {
	ix := IndexUsers(testUsers)
	tests := []struct {
		id   models.ID
		want string
	}{
		{"20", "Dr. Lee"},
		{"5", NA},  // a student, not a lecturer
		{"21", NA}, // a program leader
		{"22", UnnamedLecturer},
		{"", NA},
	}
	for _, tt := range tests {
		if got := ix.LecturerName(tt.id); got != tt.want {
			t.Errorf("LecturerName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIsEnrolledAndEnrollmentsForStudent(t *testing.T) {
	enrollments := []models.Enrollment{
		{ID: "1", UserID: "5", CourseID: "1"},
		{ID: "2", UserID: "5", CourseID: "404"},
	}
	if !IsEnrolled(enrollments, "5", "1") || IsEnrolled(enrollments, "5", "2") {
		t.Error("IsEnrolled gave the wrong answer")
	}
	got := EnrollmentsForStudent(enrollments, testCourses, "5")
	if len(got) != 2 || got[0].CourseName != "CS101" || got[0].CourseCode != "C1" || got[1].CourseName != NA {
		t.Errorf("EnrollmentsForStudent = %+v", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2024-03-01":               "2024-03-01",
		"2024-03-01T10:20:30.000Z": "2024-03-01",
		"":                         NoDate,
		"yesterday":                NoDate,
	}
	for in, want := range tests {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReportViews(t *testing.T) {
	reports := []models.Report{
		{ID: "1", LecturerID: "20", CourseID: "1", CreatedAt: "2024-02-02T08:00:00Z", Feedback: strp("Good")},
		{ID: "2", LecturerID: "404", CourseName: "Math"},
	}
	got := ReportViews(reports, testCourses, testUsers)
	if got[0].LecturerName != "Dr. Lee" || got[0].CourseLabel != "CS101" || got[0].Created != "2024-02-02" || got[0].FeedbackText != "Good" {
		t.Errorf("view 0 = %+v", got[0])
	}
	if got[1].LecturerName != UnknownLecturer || got[1].CourseLabel != "Math" || got[1].Created != NA || got[1].FeedbackText != NoFeedback || got[1].DateLabel != NoDate {
		t.Errorf("view 1 = %+v", got[1])
	}
}

func TestStudentHistories(t *testing.T) {
	enrollments := []models.Enrollment{{UserID: "5", CourseID: "1"}}
	ratings := []models.Rating{{UserID: "5", LecturerID: "20", Rating: 4}, {UserID: "6", LecturerID: "20", Rating: 3}}
	got := StudentHistories(testUsers, enrollments, testCourses, ratings)
	if len(got) != 2 {
		t.Fatalf("got %d histories, want 2 students", len(got))
	}
	if got[0].Student.Name != "Ann" || len(got[0].Courses) != 1 || len(got[0].Ratings) != 1 {
		t.Errorf("Ann's history = %+v", got[0])
	}
	if got[1].Student.Name != "Ben" || len(got[1].Courses) != 0 || len(got[1].Ratings) != 1 {
		t.Errorf("Ben's history = %+v", got[1])
	}
}
