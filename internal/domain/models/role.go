// internal/domain/models/role.go
package models

import "strings"

// Role is the portal role a user registered with.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RolePL       Role = "pl"  // program leader
	RolePRL      Role = "prl" // principal lecturer
)

// RoleOption pairs a stored role value with its display label.
type RoleOption struct {
	Value Role   `json:"value"`
	Label string `json:"label"`
}

// AllRoles lists the roles in registration-form order.
var AllRoles = []RoleOption{
	{Value: RoleStudent, Label: "Student"},
	{Value: RoleLecturer, Label: "Lecturer"},
	{Value: RolePL, Label: "Program Leader"},
	{Value: RolePRL, Label: "Principal Lecturer"},
}

// ParseRole normalizes a role string; unknown values return "" and false.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Valid reports whether r is one of the four portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RolePL, RolePRL:
		return true
	}
	return false
}

// Label returns the display label, or the raw value for unknown roles.
func (r Role) Label() string {
	for _, o := range AllRoles {
		if o.Value == r {
			return o.Label
		}
	}
	return string(r)
}
