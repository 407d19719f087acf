package storeclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

func TestLoad_PartialFailure(t *testing.T) {
	c, fs := newClient(t)
	fs.Seed(models.CollCourses, models.Course{ID: "1", Name: "Math", Code: "M1"})
	fs.Seed(models.CollUsers, models.User{ID: "2", Name: "Lee", Role: models.RoleLecturer})
	fs.Fail(http.MethodGet, models.CollReports, http.StatusInternalServerError)

	s := c.Load(context.Background(), models.CollCourses, models.CollUsers, models.CollReports)

	assert.Len(t, s.Courses, 1)
	assert.Len(t, s.Users, 1)
	assert.Empty(t, s.Reports)
	assert.NoError(t, s.Err(models.CollCourses))
	assert.Error(t, s.Err(models.CollReports))
	assert.Equal(t, []string{models.CollReports}, s.Failed(models.CollCourses, models.CollUsers, models.CollReports))

	name, err := s.FirstErr(models.CollCourses, models.CollReports)
	require.Error(t, err)
	assert.Equal(t, models.CollReports, name)
}

func TestLoad_UnknownCollection(t *testing.T) {
	c, _ := newClient(t)
	s := c.Load(context.Background(), "widgets")
	assert.Error(t, s.Err("widgets"))
}
