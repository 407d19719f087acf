package banner

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
)

func TestSet(t *testing.T) {
	s := NewSet(4 * time.Second)
	if len(s.Items()) != 0 || s.Items() == nil {
		t.Fatalf("empty set should return an empty, non-nil slice")
	}

	s.Success("Course added successfully!")
	s.FetchError("courses", &storeclient.RemoteError{
		Collection: "courses",
		Operation:  storeclient.OpList,
		Status:     500,
		Message:    "database unavailable",
	})

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("got %d banners, want 2", len(items))
	}
	if items[0].Kind != KindSuccess || items[0].DismissMS != 4000 {
		t.Errorf("unexpected first banner %+v", items[0])
	}
	if items[1].Message != "Error fetching courses: database unavailable" {
		t.Errorf("message = %q", items[1].Message)
	}
	if !s.HasErrors() {
		t.Errorf("HasErrors should be true")
	}
}

func TestFetchMessage_PlainError(t *testing.T) {
	got := FetchMessage("reports", errors.New("connection refused"))
	if got != "Error fetching reports: connection refused" {
		t.Errorf("got %q", got)
	}
}
