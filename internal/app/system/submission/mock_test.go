package submission

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dalemusser/luctportal/internal/app/store/intents"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// mockStore fails the test on any call it was not told to expect, which
// is how "no network call" is asserted.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Report(ctx context.Context, id models.ID) (models.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Report), args.Error(1)
}

func (m *mockStore) CreateReport(ctx context.Context, r models.Report) (models.Report, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(models.Report), args.Error(1)
}

func (m *mockStore) PatchReport(ctx context.Context, id models.ID, fields map[string]any) (models.Report, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(models.Report), args.Error(1)
}

func (m *mockStore) CreateAttendance(ctx context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(models.AttendanceRecord), args.Error(1)
}

func (m *mockStore) AttendanceForReport(ctx context.Context, id models.ID) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

func (m *mockStore) CreateRating(ctx context.Context, r models.Rating) (models.Rating, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(models.Rating), args.Error(1)
}

func (m *mockStore) Enrollments(ctx context.Context) ([]models.Enrollment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Enrollment), args.Error(1)
}

func (m *mockStore) CreateEnrollment(ctx context.Context, e models.Enrollment) (models.Enrollment, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(models.Enrollment), args.Error(1)
}

func (m *mockStore) CreateCourse(ctx context.Context, c models.Course) (models.Course, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Course), args.Error(1)
}

func (m *mockStore) CreateClass(ctx context.Context, c models.Class) (models.Class, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Class), args.Error(1)
}

func (m *mockStore) PatchCourse(ctx context.Context, id models.ID, fields map[string]any) (models.Course, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(models.Course), args.Error(1)
}

func (m *mockStore) PatchClass(ctx context.Context, id models.ID, fields map[string]any) (models.Class, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(models.Class), args.Error(1)
}

func (m *mockStore) Users(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockStore) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(models.User), args.Error(1)
}

type recordingQueue struct {
	ids []string
}

func (q *recordingQueue) EnqueueResume(_ context.Context, id string) error {
	q.ids = append(q.ids, id)
	return nil
}

// ctxIntents refuses to save under a finished context, the way a network
// backed store would.
type ctxIntents struct {
	*intents.Memory
}

func (c ctxIntents) Save(ctx context.Context, in intents.Intent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Memory.Save(ctx, in)
}

// plainIntents hides the Memory lease so Resume runs unlocked.
type plainIntents struct {
	intents.Store
}
