// internal/domain/models/report.go
package models

import "time"

// Report is a weekly lecture report written by a lecturer for a course.
//
// Present is the number of students marked present when the report was
// submitted; Total is the roster size at that moment. Neither is kept in
// sync with the attendance collection by the store. Feedback is written at
// most once more by a reviewer.
type Report struct {
	ID              ID      `json:"id,omitempty"`
	LecturerID      ID      `json:"lecturerId"`
	CourseID        ID      `json:"courseId"`
	CourseName      string  `json:"courseName"`
	Week            string  `json:"week"`
	Date            string  `json:"date"`
	Topic           string  `json:"topic"`
	Venue           string  `json:"venue"`
	Time            string  `json:"time"`
	Outcomes        string  `json:"outcomes"`
	Recommendations string  `json:"recommendations"`
	Present         int     `json:"present"`
	Total           int     `json:"total"`
	Feedback        *string `json:"feedback,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

// HasFeedback reports whether a reviewer annotated the report.
func (r Report) HasFeedback() bool {
	return r.Feedback != nil && *r.Feedback != ""
}

// Created parses CreatedAt; ok is false when it is missing or malformed.
func (r Report) Created() (time.Time, bool) {
	return ParseTimestamp(r.CreatedAt)
}

// AttendanceStatusPresent is the only status the portal writes.
const AttendanceStatusPresent = "present"

// AttendanceRecord marks one student present for one report.
type AttendanceRecord struct {
	ID        ID     `json:"id,omitempty"`
	ReportID  ID     `json:"reportId"`
	StudentID ID     `json:"studentId"`
	CourseID  ID     `json:"courseId"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// ParseTimestamp accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
