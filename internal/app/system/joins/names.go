// internal/app/system/joins/names.go
package joins

import (
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Display sentinels. Absence is a normal, displayable state; lookups
// return one of these instead of failing.
const (
	NA              = "N/A"
	Unassigned      = "Unassigned"
	UnknownLecturer = "Unknown Lecturer"
	NoFeedback      = "No feedback"
	NoDate          = "No date"
	UnnamedUser     = "Unnamed User"
	UnnamedLecturer = "Unnamed Lecturer"
	UnnamedCourse   = "Unnamed Course"
	UnnamedClass    = "Unnamed Class"
)

// PlaceholderStudent names an enrolled student whose user record is gone.
func PlaceholderStudent(id models.ID) string {
	return "Student " + id.String()
}

// ResolveUserName returns the name of the first user with id, or "N/A".
// It never fails.
func ResolveUserName(users []models.User, id models.ID) string {
	if id.IsZero() {
		return NA
	}
	for _, u := range users {
		if u.ID == id {
			return orDefault(u.Name, UnnamedUser)
		}
	}
	return NA
}

// NameIndex maps ids to users for repeated lookups over one snapshot.
// When ids repeat, the first user wins, matching ResolveUserName.
type NameIndex map[models.ID]models.User

// IndexUsers builds a NameIndex.
func IndexUsers(users []models.User) NameIndex {
	ix := make(NameIndex, len(users))
	for _, u := range users {
		if _, dup := ix[u.ID]; !dup {
			ix[u.ID] = u
		}
	}
	return ix
}

// Name is ResolveUserName over the index.
func (ix NameIndex) Name(id models.ID) string {
	if id.IsZero() {
		return NA
	}
	u, ok := ix[id]
	if !ok {
		return NA
	}
	return orDefault(u.Name, UnnamedUser)
}

// Lecturer returns the user with id only if they hold the lecturer role.
func (ix NameIndex) Lecturer(id models.ID) (models.User, bool) {
	u, ok := ix[id]
	if !ok || !u.IsLecturer() {
		return models.User{}, false
	}
	return u, true
}

// LecturerName is the display name of a lecturer-role user, or "N/A" when
// id is empty, unknown or not a lecturer.
func (ix NameIndex) LecturerName(id models.ID) string {
	if id.IsZero() {
		return NA
	}
	u, ok := ix.Lecturer(id)
	if !ok {
		return NA
	}
	return orDefault(u.Name, UnnamedLecturer)
}

// Lecturers returns the lecturer-role users in input order, for assignment
// dropdowns.
func Lecturers(users []models.User) []models.User {
	out := make([]models.User, 0)
	for _, u := range users {
		if u.IsLecturer() {
			out = append(out, u)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
