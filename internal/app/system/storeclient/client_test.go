package storeclient_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/domain/models"
	"github.com/dalemusser/luctportal/internal/testutil"
)

func newClient(t *testing.T) (*storeclient.Client, *testutil.FakeStore) {
	t.Helper()
	fs := testutil.NewFakeStore(t)
	c, err := storeclient.New(fs.URL(), nil, zap.NewNop())
	require.NoError(t, err)
	return c, fs
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := storeclient.New("ftp://example.com", nil, nil)
	assert.Error(t, err)

	_, err = storeclient.New("http://localhost:5000/", nil, nil)
	assert.NoError(t, err)
}

func TestList_DecodesAndFilters(t *testing.T) {
	c, fs := newClient(t)
	fs.Seed(models.CollUsers,
		models.User{ID: "1", Name: "Ann", Email: "ann@x", Password: "pw", Role: models.RoleStudent},
		models.User{ID: "2", Name: "Lee", Email: "lee@x", Password: "pw", Role: models.RoleLecturer},
	)
	ctx := context.Background()

	all, err := c.Users(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Empty(t, all[0].Password, "password must never be returned")

	lecturers, err := c.UsersByRole(ctx, models.RoleLecturer)
	require.NoError(t, err)
	require.Len(t, lecturers, 1)
	assert.Equal(t, models.ID("2"), lecturers[0].ID)
}

func TestList_SkipsUndecodableRecords(t *testing.T) {
	c, fs := newClient(t)
	fs.Seed(models.CollRatings,
		map[string]any{"id": 1, "lecturerId": 2, "userId": 3, "rating": 4},
		map[string]any{"id": 2, "lecturerId": 2, "userId": 3, "rating": 2, "comment": map[string]any{"bad": true}},
	)
	rs, err := c.Ratings(context.Background())
	require.NoError(t, err)
	assert.Len(t, rs, 1)
}

func TestCreate_ReturnsAssignedID(t *testing.T) {
	c, fs := newClient(t)
	r, err := c.CreateReport(context.Background(), models.Report{CourseID: "7", Topic: "Intro", Date: "2024-03-01"})
	require.NoError(t, err)
	assert.False(t, r.ID.IsZero())
	assert.Equal(t, 1, fs.Count(models.CollReports))
}

func TestPatch_UpdatesFields(t *testing.T) {
	c, fs := newClient(t)
	fs.Seed(models.CollCourses, models.Course{ID: "4", Name: "Networks", Code: "NET101"})
	co, err := c.PatchCourse(context.Background(), "4", map[string]any{"lecturerId": 9, "lecturerName": "Dr. Mo"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("9"), co.LecturerID)
	assert.Equal(t, "Dr. Mo", co.LecturerName)
}

func TestGet_NotFound(t *testing.T) {
	c, _ := newClient(t)
	_, err := storeclient.Get[models.Course](context.Background(), c, models.CollCourses, "99")
	require.Error(t, err)
	assert.True(t, storeclient.IsNotFound(err))
}

func TestRemoteError_CarriesServerMessage(t *testing.T) {
	c, fs := newClient(t)
	fs.Fail(http.MethodPost, models.CollReports, http.StatusServiceUnavailable)

	_, err := c.CreateReport(context.Background(), models.Report{Topic: "x"})
	require.Error(t, err)
	re, ok := storeclient.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, models.CollReports, re.Collection)
	assert.Equal(t, storeclient.OpCreate, re.Operation)
	assert.Equal(t, http.StatusServiceUnavailable, re.Status)
	assert.Equal(t, "injected failure", re.Reason())
	assert.Equal(t, "injected failure", storeclient.Reason(err))
}

func TestRemoteError_NoRetry(t *testing.T) {
	c, fs := newClient(t)
	fs.Fail(http.MethodPost, models.CollAttendance, http.StatusInternalServerError)

	_, err := c.CreateAttendance(context.Background(), models.AttendanceRecord{ReportID: "1", StudentID: "2"})
	require.Error(t, err)
	assert.Equal(t, 1, fs.Calls(http.MethodPost, models.CollAttendance))
}

func TestDuplicateEnrollment_IsConflict(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()
	_, err := c.CreateEnrollment(ctx, models.Enrollment{UserID: "1", CourseID: "2"})
	require.NoError(t, err)
	_, err = c.CreateEnrollment(ctx, models.Enrollment{UserID: "1", CourseID: "2"})
	require.Error(t, err)
	assert.True(t, storeclient.IsConflict(err))
}

func TestAuthenticate(t *testing.T) {
	c, fs := newClient(t)
	fs.Seed(models.CollUsers, models.User{ID: "1", Name: "Ann", Email: "ann@x", Password: "secret", Role: models.RolePL})
	ctx := context.Background()

	u, err := c.Authenticate(ctx, "ann@x", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RolePL, u.Role)
	assert.Empty(t, u.Password)

	_, err = c.Authenticate(ctx, "ann@x", "wrong")
	assert.ErrorIs(t, err, storeclient.ErrInvalidCredentials)
}

func TestFetchCollection_PasswordFilterRejected(t *testing.T) {
	c, _ := newClient(t)
	_, err := c.FetchCollection(context.Background(), models.CollUsers, url.Values{"password": {"x"}})
	require.Error(t, err)
	re, ok := storeclient.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, re.Status)
}

func TestPing(t *testing.T) {
	c, _ := newClient(t)
	assert.NoError(t, c.Ping(context.Background()))
}
