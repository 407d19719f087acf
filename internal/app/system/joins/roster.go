// internal/app/system/joins/roster.go
package joins

import (
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// RosterEntry is one student on a course roster.
type RosterEntry struct {
	StudentID   models.ID `json:"id"`
	StudentName string    `json:"name"`
}

// Roster maps course id to its students in enrollment order.
type Roster map[models.ID][]RosterEntry

// RosterByCourse scans enrollments once and resolves each one. A student
// whose user record is missing keeps a placeholder name so attendance can
// still be taken. A duplicate enrollment stays on the roster and counts
// toward its size; the attendance form drops the repeated student id.
func RosterByCourse(enrollments []models.Enrollment, users []models.User) Roster {
	ix := IndexUsers(users)
	out := make(Roster)
	for _, e := range enrollments {
		name := PlaceholderStudent(e.UserID)
		if u, ok := ix[e.UserID]; ok && u.Name != "" {
			name = u.Name
		}
		out[e.CourseID] = append(out[e.CourseID], RosterEntry{StudentID: e.UserID, StudentName: name})
	}
	return out
}

// Size is the number of students on course's roster.
func (r Roster) Size(course models.ID) int {
	return len(r[course])
}

// Has reports whether student is on course's roster.
func (r Roster) Has(course, student models.ID) bool {
	for _, e := range r[course] {
		if e.StudentID == student {
			return true
		}
	}
	return false
}
