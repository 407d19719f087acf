// internal/app/store/intents/intents.go
package intents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

var (
	// ErrNotFound is returned when no intent has the requested id.
	ErrNotFound = errors.New("submission intent not found")
	// ErrBusy is returned by Lock while another resumer holds the intent.
	ErrBusy = errors.New("submission intent is already being resumed")
)

const (
	// TTL is how long an unfinished intent is kept.
	TTL = 7 * 24 * time.Hour
	// LeaseTTL bounds a resume lease, so a crashed holder frees the intent.
	LeaseTTL = 2 * time.Minute
)

// Intent records the attendance rows a report submission still owes. It is
// saved when the attendance batch stops partway, and updated as the tail is
// retried. Pending is kept in submission order.
type Intent struct {
	ID         string      `json:"id"`
	ReportID   models.ID   `json:"reportId"`
	LecturerID models.ID   `json:"lecturerId"`
	CourseID   models.ID   `json:"courseId"`
	Date       string      `json:"date"`
	Pending    []models.ID `json:"pending"`
	Confirmed  []models.ID `json:"confirmed"`
	Attempts   int         `json:"attempts"`
	LastError  string      `json:"lastError,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewID returns a fresh intent id.
func NewID() string { return uuid.NewString() }

// Done reports whether every attendance row has been written.
func (i Intent) Done() bool { return len(i.Pending) == 0 }

// Confirm moves the first pending student to Confirmed.
func (i *Intent) Confirm(student models.ID) {
	if len(i.Pending) > 0 && i.Pending[0] == student {
		i.Pending = i.Pending[1:]
	} else {
		for k, id := range i.Pending {
			if id == student {
				i.Pending = append(i.Pending[:k:k], i.Pending[k+1:]...)
				break
			}
		}
	}
	i.Confirmed = append(i.Confirmed, student)
}

// Store persists intents.
type Store interface {
	Save(ctx context.Context, in Intent) error
	Get(ctx context.Context, id string) (Intent, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Intent, error)
}

// Locker hands out one lease per intent. A store that implements it lets
// the request path, the task worker and the sweep job resume the same
// intent without writing its tail twice.
type Locker interface {
	// Lock takes the lease on id for ttl, or returns ErrBusy. The returned
	// func releases it and is safe to call once the lease has expired.
	Lock(ctx context.Context, id string, ttl time.Duration) (release func(), err error)
}

func stamp(in *Intent, now time.Time) {
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.UpdatedAt = now
}
