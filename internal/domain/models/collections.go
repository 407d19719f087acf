// internal/domain/models/collections.go
package models

// Collection names exposed by the collection API.
const (
	CollUsers       = "users"
	CollCourses     = "courses"
	CollClasses     = "classes"
	CollEnrollments = "enrollments"
	CollReports     = "reports"
	CollAttendance  = "attendance"
	CollRatings     = "lecturerRatings"
)

// AllCollections lists every collection the store serves.
var AllCollections = []string{
	CollUsers,
	CollCourses,
	CollClasses,
	CollEnrollments,
	CollReports,
	CollAttendance,
	CollRatings,
}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	for _, c := range AllCollections {
		if c == name {
			return true
		}
	}
	return false
}
