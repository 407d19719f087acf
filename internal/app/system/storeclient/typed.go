// internal/app/system/storeclient/typed.go
package storeclient

import (
	"context"
	"net/url"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	return List[models.User](ctx, c, models.CollUsers, nil)
}

func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	return List[models.Course](ctx, c, models.CollCourses, nil)
}

func (c *Client) Classes(ctx context.Context) ([]models.Class, error) {
	return List[models.Class](ctx, c, models.CollClasses, nil)
}

func (c *Client) Enrollments(ctx context.Context) ([]models.Enrollment, error) {
	return List[models.Enrollment](ctx, c, models.CollEnrollments, nil)
}

func (c *Client) Reports(ctx context.Context) ([]models.Report, error) {
	return List[models.Report](ctx, c, models.CollReports, nil)
}

func (c *Client) Ratings(ctx context.Context) ([]models.Rating, error) {
	return List[models.Rating](ctx, c, models.CollRatings, nil)
}

func (c *Client) Attendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	return List[models.AttendanceRecord](ctx, c, models.CollAttendance, nil)
}

// UsersByRole narrows the user list server-side.
func (c *Client) UsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return List[models.User](ctx, c, models.CollUsers, url.Values{"role": {string(role)}})
}

// AttendanceForReport returns the attendance rows written for one report.
func (c *Client) AttendanceForReport(ctx context.Context, reportID models.ID) ([]models.AttendanceRecord, error) {
	return List[models.AttendanceRecord](ctx, c, models.CollAttendance, url.Values{"reportId": {reportID.String()}})
}

func (c *Client) CreateReport(ctx context.Context, r models.Report) (models.Report, error) {
	return Create[models.Report](ctx, c, models.CollReports, r)
}

func (c *Client) CreateAttendance(ctx context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error) {
	return Create[models.AttendanceRecord](ctx, c, models.CollAttendance, a)
}

func (c *Client) PatchReport(ctx context.Context, id models.ID, fields map[string]any) (models.Report, error) {
	return Patch[models.Report](ctx, c, models.CollReports, id, fields)
}

func (c *Client) CreateRating(ctx context.Context, r models.Rating) (models.Rating, error) {
	return Create[models.Rating](ctx, c, models.CollRatings, r)
}

func (c *Client) CreateEnrollment(ctx context.Context, e models.Enrollment) (models.Enrollment, error) {
	return Create[models.Enrollment](ctx, c, models.CollEnrollments, e)
}

func (c *Client) CreateCourse(ctx context.Context, co models.Course) (models.Course, error) {
	return Create[models.Course](ctx, c, models.CollCourses, co)
}

func (c *Client) CreateClass(ctx context.Context, cl models.Class) (models.Class, error) {
	return Create[models.Class](ctx, c, models.CollClasses, cl)
}

func (c *Client) PatchCourse(ctx context.Context, id models.ID, fields map[string]any) (models.Course, error) {
	return Patch[models.Course](ctx, c, models.CollCourses, id, fields)
}

func (c *Client) PatchClass(ctx context.Context, id models.ID, fields map[string]any) (models.Class, error) {
	return Patch[models.Class](ctx, c, models.CollClasses, id, fields)
}

// CreateUser registers a user. The password is sent once, here, and the
// store hashes it; the returned user never carries it.
func (c *Client) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	out, err := Create[models.User](ctx, c, models.CollUsers, u)
	if err != nil {
		return models.User{}, err
	}
	return out.Public(), nil
}

func (c *Client) Report(ctx context.Context, id models.ID) (models.Report, error) {
	return Get[models.Report](ctx, c, models.CollReports, id)
}
