// internal/app/system/storeclient/snapshot.go
package storeclient

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Snapshot holds the collections a view needs, loaded concurrently. A
// collection that failed to load is left empty and its error recorded, so
// a dashboard can still render the sections that did load.
type Snapshot struct {
	Users       []models.User
	Courses     []models.Course
	Classes     []models.Class
	Enrollments []models.Enrollment
	Reports     []models.Report
	Attendance  []models.AttendanceRecord
	Ratings     []models.Rating

	mu     sync.Mutex
	errors map[string]error
}

// Err returns the load error for one collection, or nil.
func (s *Snapshot) Err(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[name]
}

// Failed lists the collections that did not load, in the order requested.
func (s *Snapshot) Failed(order ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, n := range order {
		if s.errors[n] != nil {
			out = append(out, n)
		}
	}
	return out
}

// FirstErr returns the first error among names, in order.
func (s *Snapshot) FirstErr(names ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		if err := s.errors[n]; err != nil {
			return n, err
		}
	}
	return "", nil
}

func (s *Snapshot) fail(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errors == nil {
		s.errors = make(map[string]error)
	}
	s.errors[name] = err
}

// Load fetches the named collections in parallel. It never returns an
// error itself; per-collection failures are available from the Snapshot.
// Unknown names are recorded as failures.
func (c *Client) Load(ctx context.Context, names ...string) *Snapshot {
	s := &Snapshot{}
	var g errgroup.Group
	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := c.loadInto(ctx, s, name); err != nil {
				s.fail(name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return s
}

func (c *Client) loadInto(ctx context.Context, s *Snapshot, name string) error {
	var err error
	switch name {
	case models.CollUsers:
		s.Users, err = c.Users(ctx)
	case models.CollCourses:
		s.Courses, err = c.Courses(ctx)
	case models.CollClasses:
		s.Classes, err = c.Classes(ctx)
	case models.CollEnrollments:
		s.Enrollments, err = c.Enrollments(ctx)
	case models.CollReports:
		s.Reports, err = c.Reports(ctx)
	case models.CollAttendance:
		s.Attendance, err = c.Attendance(ctx)
	case models.CollRatings:
		s.Ratings, err = c.Ratings(ctx)
	default:
		err = &RemoteError{Collection: name, Operation: OpList, Cause: errUnknownCollection}
	}
	return err
}
