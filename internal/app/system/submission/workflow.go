// internal/app/system/submission/workflow.go
package submission

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/store/intents"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Workflow runs the portal's multi-step writes against the store.
type Workflow struct {
	Store   Store
	Intents intents.Store
	Queue   Enqueuer // optional; nil leaves resumes to the user
	Log     *zap.Logger

	now func() time.Time
}

// New wires a Workflow. A nil intent store falls back to memory.
func New(store Store, in intents.Store, queue Enqueuer, logger *zap.Logger) *Workflow {
	if in == nil {
		in = intents.NewMemory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{Store: store, Intents: in, Queue: queue, Log: logger, now: time.Now}
}

// Submit validates the form, creates the report and then writes one
// attendance row per present student, strictly in order. rosterSize is
// the course roster at submission time and becomes the report's total.
//
// The report's present count is the number of students marked present,
// set at creation and not adjusted here even if the batch stops early.
// When attendance record k fails, rows 1..k-1 stay, k..N are saved as an
// intent for Resume, and a *PartialSubmissionError is returned alongside
// the created report.
func (w *Workflow) Submit(ctx context.Context, lecturer models.ID, form ReportForm, rosterSize int, obs Observer) (models.Report, error) {
	obs.emit(Progress{State: Validating})
	form.clean()
	if err := form.Validate(); err != nil {
		obs.emit(Progress{State: Failed})
		return models.Report{}, err
	}

	obs.emit(Progress{State: SubmittingReport})
	report := models.Report{
		LecturerID:      lecturer,
		CourseID:        form.CourseID,
		CourseName:      form.CourseName,
		Week:            form.Week,
		Date:            form.Date,
		Topic:           form.Topic,
		Venue:           form.Venue,
		Time:            form.Time,
		Outcomes:        form.Outcomes,
		Recommendations: form.Recommendations,
		Present:         len(form.Present),
		Total:           rosterSize,
		CreatedAt:       w.now().UTC().Format(time.RFC3339Nano),
	}
	created, err := w.Store.CreateReport(ctx, report)
	if err != nil {
		obs.emit(Progress{State: Failed})
		return models.Report{}, err
	}
	if created.ID.IsZero() {
		obs.emit(Progress{State: Failed})
		return models.Report{}, errors.New("store returned a report without an id")
	}

	n := len(form.Present)
	for i, student := range form.Present {
		obs.emit(Progress{State: SubmittingAttendance, Index: i + 1, Total: n})
		_, err := w.Store.CreateAttendance(ctx, attendanceRow(created, student))
		if err == nil {
			continue
		}

		perr := &PartialSubmissionError{
			ReportID:  created.ID,
			Persisted: append([]models.ID(nil), form.Present[:i]...),
			Failed:    student,
			Remaining: append([]models.ID(nil), form.Present[i:]...),
			Cause:     err,
		}
		perr.IntentID = w.saveIntent(ctx, created, lecturer, perr, err)
		w.Log.Warn("attendance batch stopped",
			zap.String("report_id", created.ID.String()),
			zap.Int("persisted", len(perr.Persisted)),
			zap.Int("remaining", len(perr.Remaining)),
			zap.String("intent_id", perr.IntentID),
			zap.Error(err))
		obs.emit(Progress{State: Failed, Index: i + 1, Total: n})
		return created, perr
	}

	obs.emit(Progress{State: Done, Index: n, Total: n})
	return created, nil
}

func attendanceRow(r models.Report, student models.ID) models.AttendanceRecord {
	return models.AttendanceRecord{
		ReportID:  r.ID,
		StudentID: student,
		CourseID:  r.CourseID,
		Date:      r.Date,
		Status:    models.AttendanceStatusPresent,
	}
}

// saveIntent persists the unconfirmed tail and queues a background resume.
// It returns the intent id, or "" if the intent could not be saved.
// The save outlives the request: a client that went away mid-batch still
// leaves an intent behind, bounded by the write budget.
func (w *Workflow) saveIntent(parent context.Context, r models.Report, lecturer models.ID, perr *PartialSubmissionError, cause error) string {
	in := intents.Intent{
		ID:         intents.NewID(),
		ReportID:   r.ID,
		LecturerID: lecturer,
		CourseID:   r.CourseID,
		Date:       r.Date,
		Pending:    perr.Remaining,
		Confirmed:  perr.Persisted,
		Attempts:   1,
		LastError:  cause.Error(),
	}
	ctx, cancel := timeouts.WithTimeout(context.WithoutCancel(parent), timeouts.Write(), w.Log, "save submission intent")
	defer cancel()
	if err := w.Intents.Save(ctx, in); err != nil {
		w.Log.Error("save submission intent failed", zap.String("report_id", r.ID.String()), zap.Error(err))
		return ""
	}
	if w.Queue != nil {
		if err := w.Queue.EnqueueResume(ctx, in.ID); err != nil {
			w.Log.Warn("enqueue resume failed", zap.String("intent_id", in.ID), zap.Error(err))
		}
	}
	return in.ID
}

// Resume finishes a partial submission. It first asks the store which
// attendance rows already exist for the report so a row written before a
// lost response is not written twice, then retries the rest in order,
// stopping at the first failure again. When the tail is done it reconciles
// the report's present count and forgets the intent.
//
// When the intent store is an intents.Locker only one Resume runs per
// intent at a time; the others get ErrResumeBusy.
func (w *Workflow) Resume(ctx context.Context, intentID string) (models.Report, error) {
	if l, ok := w.Intents.(intents.Locker); ok {
		release, err := l.Lock(ctx, intentID, intents.LeaseTTL)
		if err != nil {
			return models.Report{}, err
		}
		defer release()
	}

	in, err := w.Intents.Get(ctx, intentID)
	if err != nil {
		return models.Report{}, err
	}
	in.Attempts++

	existing, err := w.Store.AttendanceForReport(ctx, in.ReportID)
	if err != nil {
		w.recordAttempt(ctx, &in, err)
		return models.Report{}, err
	}
	written := make(map[models.ID]bool, len(existing))
	for _, a := range existing {
		written[a.StudentID] = true
	}

	row := models.Report{ID: in.ReportID, CourseID: in.CourseID, Date: in.Date}
	for len(in.Pending) > 0 {
		student := in.Pending[0]
		if !written[student] {
			if _, err := w.Store.CreateAttendance(ctx, attendanceRow(row, student)); err != nil {
				w.recordAttempt(ctx, &in, err)
				return models.Report{}, &PartialSubmissionError{
					ReportID:  in.ReportID,
					Persisted: append([]models.ID(nil), in.Confirmed...),
					Failed:    student,
					Remaining: append([]models.ID(nil), in.Pending...),
					IntentID:  in.ID,
					Cause:     err,
				}
			}
		}
		in.Confirm(student)
		if err := w.Intents.Save(ctx, in); err != nil {
			w.Log.Warn("save intent progress failed", zap.String("intent_id", in.ID), zap.Error(err))
		}
	}

	report, err := w.Reconcile(ctx, in.ReportID)
	if err != nil {
		w.recordAttempt(ctx, &in, err)
		return models.Report{}, err
	}
	if err := w.Intents.Delete(ctx, in.ID); err != nil {
		w.Log.Warn("delete finished intent failed", zap.String("intent_id", in.ID), zap.Error(err))
	}
	w.Log.Info("submission resumed",
		zap.String("intent_id", in.ID),
		zap.String("report_id", in.ReportID.String()),
		zap.Int("attempts", in.Attempts),
		zap.Int("present", report.Present))
	return report, nil
}

func (w *Workflow) recordAttempt(ctx context.Context, in *intents.Intent, cause error) {
	in.LastError = cause.Error()
	if err := w.Intents.Save(ctx, *in); err != nil {
		w.Log.Warn("save intent attempt failed", zap.String("intent_id", in.ID), zap.Error(err))
	}
}

// Reconcile recounts the attendance rows for a report and patches the
// report's present count when it disagrees. Each student counts once.
func (w *Workflow) Reconcile(ctx context.Context, reportID models.ID) (models.Report, error) {
	report, err := w.Store.Report(ctx, reportID)
	if err != nil {
		return models.Report{}, err
	}
	rows, err := w.Store.AttendanceForReport(ctx, reportID)
	if err != nil {
		return models.Report{}, err
	}
	present := CountPresent(rows)
	if present == report.Present {
		return report, nil
	}
	w.Log.Info("reconciling present count",
		zap.String("report_id", reportID.String()),
		zap.Int("stored", report.Present),
		zap.Int("actual", present))
	return w.Store.PatchReport(ctx, reportID, map[string]any{"present": present})
}

// CountPresent counts distinct students marked present.
func CountPresent(rows []models.AttendanceRecord) int {
	seen := make(map[models.ID]bool, len(rows))
	for _, a := range rows {
		if a.Status == models.AttendanceStatusPresent {
			seen[a.StudentID] = true
		}
	}
	return len(seen)
}

// Pending lists the intents still waiting to be resumed.
func (w *Workflow) Pending(ctx context.Context) ([]intents.Intent, error) {
	return w.Intents.List(ctx)
}
