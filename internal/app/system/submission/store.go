// internal/app/system/submission/store.go
package submission

import (
	"context"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Store is the part of the entity store client the workflows write
// through. *storeclient.Client satisfies it.
type Store interface {
	Report(ctx context.Context, id models.ID) (models.Report, error)
	CreateReport(ctx context.Context, r models.Report) (models.Report, error)
	PatchReport(ctx context.Context, id models.ID, fields map[string]any) (models.Report, error)
	CreateAttendance(ctx context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error)
	AttendanceForReport(ctx context.Context, reportID models.ID) ([]models.AttendanceRecord, error)

	CreateRating(ctx context.Context, r models.Rating) (models.Rating, error)
	Enrollments(ctx context.Context) ([]models.Enrollment, error)
	CreateEnrollment(ctx context.Context, e models.Enrollment) (models.Enrollment, error)
	CreateCourse(ctx context.Context, c models.Course) (models.Course, error)
	CreateClass(ctx context.Context, c models.Class) (models.Class, error)
	PatchCourse(ctx context.Context, id models.ID, fields map[string]any) (models.Course, error)
	PatchClass(ctx context.Context, id models.ID, fields map[string]any) (models.Class, error)
	Users(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

// Enqueuer schedules a background resume of a saved intent.
type Enqueuer interface {
	EnqueueResume(ctx context.Context, intentID string) error
}
