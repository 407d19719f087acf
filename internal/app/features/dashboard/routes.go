// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Routes wires the dashboards under whatever mount point the top-level
// router chooses (e.g., "/dashboard"). Each role's routes sit behind
// RequireRole; GET / redirects to the signed-in user's own dashboard.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeDashboard)
	})

	r.Route("/"+string(models.RoleStudent), func(sr chi.Router) {
		sr.Use(sm.RequireRole(models.RoleStudent))
		sr.Get("/", h.ServeStudent)
		sr.Post("/enrollments", h.HandleEnroll)
		sr.Post("/ratings", h.HandleRate)
		sr.Get("/export.xlsx", h.ExportStudent)
	})

	r.Route("/"+string(models.RoleLecturer), func(sr chi.Router) {
		sr.Use(sm.RequireRole(models.RoleLecturer))
		sr.Get("/", h.ServeLecturer)
		sr.Post("/reports", h.HandleSubmitReport)
		sr.Post("/intents/{id}/resume", h.HandleResume)
		sr.Get("/export.xlsx", h.ExportLecturer)
	})

	r.Route("/"+string(models.RolePL), func(sr chi.Router) {
		sr.Use(sm.RequireRole(models.RolePL))
		sr.Get("/", h.ServeProgramLeader)
		sr.Post("/courses", h.HandleCreateCourse)
		sr.Post("/classes", h.HandleCreateClass)
		sr.Post("/courses/{id}/lecturer", h.HandleAssignCourse)
		sr.Post("/classes/{id}/lecturer", h.HandleAssignClass)
		sr.Get("/export/reports.xlsx", h.ExportProgramReports)
	})

	r.Route("/"+string(models.RolePRL), func(sr chi.Router) {
		sr.Use(sm.RequireRole(models.RolePRL))
		sr.Get("/", h.ServePrincipal)
		sr.Post("/reports/{id}/feedback", h.HandleFeedback)
		sr.Get("/export/{kind}", h.ExportPrincipal)
	})

	return r
}
