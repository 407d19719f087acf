// internal/domain/models/course.go
package models

// Course is created by a program leader and optionally assigned a lecturer.
// LecturerName is a denormalized copy written alongside LecturerID.
type Course struct {
	ID           ID     `json:"id,omitempty"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	FacultyName  string `json:"faculty_name"`
	LecturerID   ID     `json:"lecturerId,omitempty"`
	LecturerName string `json:"lecturerName,omitempty"`
}

// Class is a scheduled meeting of a course.
type Class struct {
	ID           ID     `json:"id,omitempty"`
	Name         string `json:"name"`
	Venue        string `json:"venue"`
	Time         string `json:"time"`
	CourseID     ID     `json:"courseId"`
	LecturerID   ID     `json:"lecturerId,omitempty"`
	LecturerName string `json:"lecturerName,omitempty"`
}

// Enrollment joins a student to a course.
type Enrollment struct {
	ID       ID `json:"id,omitempty"`
	UserID   ID `json:"userId"`
	CourseID ID `json:"courseId"`
}
