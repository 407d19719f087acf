// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/app/system/banner"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/validation"
)

// Body is the JSON shape of every portal error response.
type Body struct {
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
	Banners []banner.Banner         `json:"banners,omitempty"`

	// Set for a partially recorded report.
	ReportID  string   `json:"reportId,omitempty"`
	IntentID  string   `json:"intentId,omitempty"`
	Persisted []string `json:"persisted,omitempty"`
	Remaining []string `json:"remaining,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Body{Message: msg})
}

// MsgResumeBusy is shown when a resume of the same submission is already
// running.
const MsgResumeBusy = "This submission is already being retried. Please wait a moment."

// DefaultDismiss is how long an error banner stays up when the caller
// does not pass its own duration.
const DefaultDismiss = 5 * time.Second

// ErrorLogger logs handler failures with request context and writes the
// matching JSON response.
type ErrorLogger struct {
	log     *zap.Logger
	dismiss time.Duration
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger, dismiss: DefaultDismiss}
}

// Log records err against the request.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	if u, ok := auth.CurrentUser(r); ok {
		fields = append(fields, zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	}
	e.log.Error(msg, fields...)
}

// Write maps a write failure to a response with an error banner that
// dismisses after the default duration.
func (e *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, op string, err error) {
	e.WriteFor(w, r, op, err, e.dismiss)
}

// WriteFor maps a write failure to a response whose error banner
// dismisses after d.
//
//   - validation errors: 422 with field messages; nothing reached the store
//   - partial submissions: 502 carrying the report and intent ids
//   - a resume already in progress: 409
//   - store errors: 502 with the store's reason (409 passes through)
//   - anything else: 500
func (e *ErrorLogger) WriteFor(w http.ResponseWriter, r *http.Request, op string, err error, d time.Duration) {
	if ve, ok := validation.As(err); ok {
		writeWithBanner(w, http.StatusUnprocessableEntity, d, Body{Message: ve.Summary(), Fields: ve.Fields})
		return
	}

	var pe *submission.PartialSubmissionError
	if asPartial(err, &pe) {
		e.Log(r, op+": partial submission", err)
		writeWithBanner(w, http.StatusBadGateway, d, Body{
			Message:   pe.UserMessage(),
			ReportID:  pe.ReportID.String(),
			IntentID:  pe.IntentID,
			Persisted: idStrings(pe.Persisted),
			Remaining: idStrings(pe.Remaining),
		})
		return
	}

	if isBusy(err) {
		writeWithBanner(w, http.StatusConflict, d, Body{Message: MsgResumeBusy})
		return
	}

	if re, ok := storeclient.AsRemote(err); ok {
		e.Log(r, op+": store error", err)
		status := http.StatusBadGateway
		if re.Status == http.StatusConflict {
			status = http.StatusConflict
		}
		writeWithBanner(w, status, d, Body{Message: re.Reason()})
		return
	}

	e.Log(r, op, err)
	writeWithBanner(w, http.StatusInternalServerError, d, Body{Message: "Server error"})
}

func writeWithBanner(w http.ResponseWriter, status int, d time.Duration, b Body) {
	set := banner.NewSet(d)
	set.Error(b.Message)
	b.Banners = set.Items()
	WriteJSON(w, status, b)
}
