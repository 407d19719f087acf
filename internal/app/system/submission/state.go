// internal/app/system/submission/state.go
package submission

// State is a step of one report submission attempt.
type State int

const (
	Idle State = iota
	Validating
	SubmittingReport
	SubmittingAttendance
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case SubmittingReport:
		return "submitting_report"
	case SubmittingAttendance:
		return "submitting_attendance"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Progress is reported on every state change. During attendance, Index is
// the 1-based record about to be written out of Total.
type Progress struct {
	State State
	Index int
	Total int
}

// Observer receives progress updates. It runs on the submitting goroutine
// and must not block.
type Observer func(Progress)

func (o Observer) emit(p Progress) {
	if o != nil {
		o(p)
	}
}
