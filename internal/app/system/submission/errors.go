// internal/app/system/submission/errors.go
package submission

import (
	"fmt"

	"github.com/dalemusser/luctportal/internal/app/store/intents"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

var (
	// ErrIntentNotFound is returned by Resume for an unknown or expired intent.
	ErrIntentNotFound = intents.ErrNotFound
	// ErrResumeBusy is returned by Resume while another resume of the same
	// intent is running.
	ErrResumeBusy = intents.ErrBusy
)

// PartialSubmissionError means the report was created but its attendance
// batch stopped partway. Persisted rows stay in place; Remaining were never
// written (Failed is the first of them). IntentID names the saved intent
// that Resume can finish.
type PartialSubmissionError struct {
	ReportID  models.ID
	Persisted []models.ID
	Failed    models.ID
	Remaining []models.ID
	IntentID  string
	Cause     error
}

func (e *PartialSubmissionError) Error() string {
	total := len(e.Persisted) + len(e.Remaining)
	return fmt.Sprintf("report %s saved but attendance stopped after %d of %d records: %v",
		e.ReportID, len(e.Persisted), total, e.Cause)
}

func (e *PartialSubmissionError) Unwrap() error { return e.Cause }

// UserMessage is the banner text for a partial submission. The retry
// promise is only made when an intent was saved to keep it.
func (e *PartialSubmissionError) UserMessage() string {
	total := len(e.Persisted) + len(e.Remaining)
	msg := fmt.Sprintf("Report saved, but attendance was only recorded for %d of %d students.",
		len(e.Persisted), total)
	if e.IntentID == "" {
		return msg + " Please submit the remaining students again."
	}
	return msg + " The rest will be retried."
}
