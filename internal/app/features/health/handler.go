// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Counter counts the records in one collection.
type Counter interface {
	Count(ctx context.Context, collection string) (int64, error)
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Dependency string
	Check      Check
	Counts     Counter
	Log        *zap.Logger
}

// NewHandler constructs a health Handler. dependency names what Check
// pings ("database" for the store, "store" for the portal).
func NewHandler(dependency string, check Check, logger *zap.Logger) *Handler {
	return &Handler{
		Dependency: dependency,
		Check:      check,
		Log:        logger,
	}
}

// MongoCheck pings the primary.
func MongoCheck(client *mongo.Client) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status      string           `json:"status"`
	Dependency  string           `json:"dependency"`
	State       string           `json:"state"`
	Message     string           `json:"message,omitempty"`
	Error       string           `json:"error,omitempty"`
	Collections map[string]int64 `json:"collections,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "dependency":"database", "state":"connected", "collections":{"users":6,...} }
//
// On failure: 503 and
//
//	{ "status":"error", "dependency":"store", "state":"disconnected", "message":"store unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{Status: "ok", Dependency: h.Dependency, State: "connected"}

	if err := h.Check(ctx); err != nil {
		h.Log.Error("health-check failed", zap.String("dependency", h.Dependency), zap.Error(err))
		resp.Status = "error"
		resp.State = "disconnected"
		resp.Message = h.Dependency + " unavailable"
		resp.Error = err.Error()
		uierrors.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	// Counts are informational; a failed count does not fail the check.
	if h.Counts != nil {
		resp.Collections = make(map[string]int64, len(models.AllCollections))
		for _, name := range models.AllCollections {
			n, err := h.Counts.Count(ctx, name)
			if err != nil {
				h.Log.Warn("health-check: count failed", zap.String("collection", name), zap.Error(err))
				continue
			}
			resp.Collections[name] = n
		}
	}

	uierrors.WriteJSON(w, http.StatusOK, resp)
}
