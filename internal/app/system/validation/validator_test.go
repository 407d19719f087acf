package validation

import (
	"testing"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

type sample struct {
	Course string       `json:"courseId" label:"Course" validate:"required"`
	Topic  string       `json:"topic" label:"Topic" validate:"notblank"`
	Stars  models.Stars `json:"rating" label:"Rating" validate:"stars"`
	Note   string       `json:"note"`
}

func TestCheckValid(t *testing.T) {
	err := Default().Check(sample{Course: "1", Topic: "Graphs", Stars: 4}, "invalid")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}

func TestCheckReportsFieldsByJSONName(t *testing.T) {
	err := Default().Check(sample{Topic: "   ", Stars: 0}, "Please fill all required fields")
	ve, ok := As(err)
	if !ok {
		t.Fatalf("Check() error = %v, want *ValidationError", err)
	}
	if ve.Error() != "Please fill all required fields" {
		t.Errorf("Error() = %q", ve.Error())
	}

	want := []string{"courseId", "topic", "rating"}
	got := ve.FieldNames()
	if len(got) != len(want) {
		t.Fatalf("FieldNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FieldNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if msg := ve.Field("courseId"); msg != "Course is a required field" {
		t.Errorf("courseId message = %q", msg)
	}
	if msg := ve.Field("topic"); msg != "Topic must not be blank" {
		t.Errorf("topic message = %q", msg)
	}
	if msg := ve.Field("rating"); msg != "Rating must be between 1 and 5 stars" {
		t.Errorf("rating message = %q", msg)
	}
}

func TestIsAndAs(t *testing.T) {
	err := New("bad input", FieldError{Field: "x", Message: "x is bad"})
	if !Is(err) {
		t.Error("Is() = false, want true")
	}
	ve, _ := As(err)
	if got := ve.Summary(); got != "bad input: x is bad" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestSummary_DropsRepeatedMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "single field repeats summary",
			err:  New("Please select a course", FieldError{Field: "courseId", Message: "Please select a course"}),
			want: "Please select a course",
		},
		{
			name: "duplicate field messages",
			err: New("Missing fields",
				FieldError{Field: "date", Message: "Required"},
				FieldError{Field: "topic", Message: "Required"},
				FieldError{Field: "week", Message: "Week must be a number"}),
			want: "Missing fields: Required; Week must be a number",
		},
		{
			name: "no fields",
			err:  New("bad input"),
			want: "bad input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve, ok := As(tt.err)
			if !ok {
				t.Fatal("As() = false")
			}
			if got := ve.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
