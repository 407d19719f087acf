// internal/domain/models/user.go
package models

// User is anyone registered with the portal.
//
// Password is only populated on the way in (registration). The collection
// API never returns it, and the portal never forwards it anywhere except
// the credential-check endpoint.
type User struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// Public returns a copy without the password.
func (u User) Public() User {
	u.Password = ""
	return u
}

// IsLecturer reports whether the user can be assigned to courses and classes.
func (u User) IsLecturer() bool { return u.Role == RoleLecturer }
