// internal/app/features/collections/handler.go
package collections

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	recordstore "github.com/dalemusser/luctportal/internal/app/store/records"
	"github.com/dalemusser/luctportal/internal/app/system/ratelimit"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Records is the storage the collection API serves. *recordstore.Store
// implements it.
type Records interface {
	List(ctx context.Context, collection string, query url.Values) ([]recordstore.Record, error)
	Get(ctx context.Context, collection, id string) (recordstore.Record, error)
	Create(ctx context.Context, collection string, rec recordstore.Record) (recordstore.Record, error)
	Patch(ctx context.Context, collection, id string, fields recordstore.Record) (recordstore.Record, error)
	Authenticate(ctx context.Context, email, password string) (recordstore.Record, error)
}

type Handler struct {
	Records Records
	Limiter *ratelimit.LoginLimiter
	Log     *zap.Logger
}

func NewHandler(records Records, login *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{Records: records, Limiter: login, Log: logger}
}

// readRecord decodes a size-limited JSON object body.
func readRecord(w http.ResponseWriter, r *http.Request, max int64) (recordstore.Record, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, max))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			uierrors.Message(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		uierrors.Message(w, http.StatusBadRequest, "Could not read request body")
		return nil, false
	}
	rec, err := recordstore.Decode(body)
	if err != nil {
		uierrors.Message(w, http.StatusBadRequest, "Body must be a JSON object")
		return nil, false
	}
	return rec, true
}

// fail maps a store error to a status and message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, collection string, err error) {
	switch {
	case errors.Is(err, recordstore.ErrUnknownCollection):
		uierrors.Message(w, http.StatusNotFound, "Unknown collection: "+collection)
	case errors.Is(err, recordstore.ErrNotFound):
		uierrors.Message(w, http.StatusNotFound, "Not found")
	case errors.Is(err, recordstore.ErrForbiddenFilter):
		uierrors.Message(w, http.StatusBadRequest, "Filtering on password is not allowed")
	case errors.Is(err, recordstore.ErrDuplicate):
		uierrors.Message(w, http.StatusConflict, duplicateMessage(collection))
	case recordstore.IsInvalid(err):
		uierrors.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.Log.Warn("store request timed out",
			zap.String("collection", collection),
			zap.String("path", r.URL.Path))
		uierrors.Message(w, http.StatusGatewayTimeout, "Database timeout")
	default:
		h.Log.Error("store request failed",
			zap.String("collection", collection),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		uierrors.Message(w, http.StatusInternalServerError, "Database error")
	}
}

func duplicateMessage(collection string) string {
	switch collection {
	case models.CollEnrollments:
		return "Already enrolled in this course"
	case models.CollUsers:
		return "Email already registered"
	}
	return "Duplicate record"
}
