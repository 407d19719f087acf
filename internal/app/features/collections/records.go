// internal/app/features/collections/records.go
package collections

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/system/limits"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
)

// List handles GET /{collection}?field=value...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list "+coll)
	defer cancel()

	recs, err := h.Records.List(ctx, coll, r.URL.Query())
	if err != nil {
		h.fail(w, r, coll, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, recs)
}

// Get handles GET /{collection}/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "get "+coll)
	defer cancel()

	rec, err := h.Records.Get(ctx, coll, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, coll, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, rec)
}

// Create handles POST /{collection}.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")
	rec, ok := readRecord(w, r, limits.MaxRecordSize)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create "+coll)
	defer cancel()

	created, err := h.Records.Create(ctx, coll, rec)
	if err != nil {
		h.fail(w, r, coll, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, created)
}

// Patch handles PATCH /{collection}/{id}.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")
	fields, ok := readRecord(w, r, limits.MaxRecordSize)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "patch "+coll)
	defer cancel()

	updated, err := h.Records.Patch(ctx, coll, chi.URLParam(r, "id"), fields)
	if err != nil {
		h.fail(w, r, coll, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, updated)
}
