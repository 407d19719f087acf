// internal/app/features/collections/routes.go
package collections

import (
	"github.com/go-chi/chi/v5"
)

// Routes serves the collection API. Records are never deleted.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/auth/login", h.Login)
	r.Get("/{collection}", h.List)
	r.Post("/{collection}", h.Create)
	r.Get("/{collection}/{id}", h.Get)
	r.Patch("/{collection}/{id}", h.Patch)
	return r
}
