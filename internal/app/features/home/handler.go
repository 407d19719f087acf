// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Handler serves the public landing data.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// RoleCard describes what one role can do in the portal.
type RoleCard struct {
	Role        models.Role `json:"role"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

var cards = []RoleCard{
	{models.RoleStudent, "Student",
		"View enrolled classes, access lecturer reports, provide feedback, and download personal report Excel files."},
	{models.RoleLecturer, "Lecturer",
		"Submit weekly lecture reports, mark attendance, monitor students, track feedback and ratings, and export reports to Excel."},
	{models.RolePL, "Program Leader (PL)",
		"Review lecturer reports, monitor class performance, track course progress, provide feedback, and export consolidated reports."},
	{models.RolePRL, "Principal Lecturer (PRL)",
		"Oversee programs, manage lecturers and PLs, evaluate lecturer performance, provide high-level feedback, and export detailed reports for analysis."},
}

type landing struct {
	Institution string              `json:"institution"`
	Cards       []RoleCard          `json:"cards"`
	Roles       []models.RoleOption `json:"roles"`
	User        *auth.SessionUser   `json:"user,omitempty"`
}

// ServeRoot handles GET /.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data := landing{
		Institution: "Limkokwing University Of Creative Technology",
		Cards:       cards,
		Roles:       models.AllRoles,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.User = u
	}
	uierrors.WriteJSON(w, http.StatusOK, data)
}
