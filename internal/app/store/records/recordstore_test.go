package recordstore_test

import (
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	recordstore "github.com/dalemusser/luctportal/internal/app/store/records"
	"github.com/dalemusser/luctportal/internal/app/system/indexes"
	"github.com/dalemusser/luctportal/internal/domain/models"
	"github.com/dalemusser/luctportal/internal/testutil"
)

func newStore(t *testing.T) *recordstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return recordstore.New(db, zap.NewNop())
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := s.Create(ctx, models.CollCourses, recordstore.Record{"name": "Web Application Development"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := s.Create(ctx, models.CollCourses, recordstore.Record{"name": "Database Systems"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a["id"] != int64(1) || b["id"] != int64(2) {
		t.Errorf("ids = %v, %v; want 1, 2", a["id"], b["id"])
	}

	// A client id advances the sequence.
	if _, err := s.Create(ctx, models.CollCourses, recordstore.Record{"id": "10", "name": "Networks"}); err != nil {
		t.Fatalf("Create with id failed: %v", err)
	}
	c, _ := s.Create(ctx, models.CollCourses, recordstore.Record{"name": "Security"})
	if c["id"] != int64(11) {
		t.Errorf("id after client id 10 = %v, want 11", c["id"])
	}

	if _, err := s.Create(ctx, models.CollCourses, recordstore.Record{"id": 10, "name": "Again"}); err != recordstore.ErrDuplicate {
		t.Errorf("expected ErrDuplicate for repeated id, got %v", err)
	}
}

func TestList_FiltersMatchNumbersAndStrings(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// One foreign key written as a number, one as a string.
	for _, rec := range []recordstore.Record{
		{"userId": int64(1), "courseId": int64(10)},
		{"userId": "2", "courseId": "10"},
		{"userId": int64(1), "courseId": int64(11)},
	} {
		if _, err := s.Create(ctx, models.CollEnrollments, rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := s.List(ctx, models.CollEnrollments, url.Values{"courseId": {"10"}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d enrollments for course 10, want 2", len(got))
	}

	got, _ = s.List(ctx, models.CollEnrollments, url.Values{"userId": {"1"}, "courseId": {"11"}})
	if len(got) != 1 {
		t.Errorf("got %d enrollments for user 1 course 11, want 1", len(got))
	}

	if _, err := s.List(ctx, models.CollUsers, url.Values{"password": {"x"}}); err != recordstore.ErrForbiddenFilter {
		t.Errorf("expected ErrForbiddenFilter, got %v", err)
	}
	if _, err := s.List(ctx, "grades", nil); err != recordstore.ErrUnknownCollection {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestCreate_DuplicateEnrollmentAcrossSpellings(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := s.Create(ctx, models.CollEnrollments, recordstore.Record{"userId": int64(1), "courseId": int64(10)}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := s.Create(ctx, models.CollEnrollments, recordstore.Record{"userId": "1", "courseId": "10"})
	if err != recordstore.ErrDuplicate {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestUsers_PasswordHashedAndHidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	s := recordstore.New(db, zap.NewNop())

	created, err := s.Create(ctx, models.CollUsers, recordstore.Record{
		"name": "Lerato", "email": " Lerato@LUCT.ac.ls ", "password": "secret1", "role": "student",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, ok := created["password"]; ok {
		t.Error("password returned from Create")
	}
	if created["email"] != "lerato@luct.ac.ls" {
		t.Errorf("email = %v, want normalized", created["email"])
	}

	var raw bson.M
	if err := db.Collection(models.CollUsers).FindOne(ctx, bson.M{"email": "lerato@luct.ac.ls"}).Decode(&raw); err != nil {
		t.Fatalf("raw find failed: %v", err)
	}
	if raw["password"] == "secret1" {
		t.Error("password stored in plain text")
	}

	listed, _ := s.List(ctx, models.CollUsers, nil)
	for _, u := range listed {
		if _, ok := u["password"]; ok {
			t.Error("password returned from List")
		}
	}

	if _, err := s.Authenticate(ctx, "LERATO@luct.ac.ls", "secret1"); err != nil {
		t.Errorf("Authenticate failed: %v", err)
	}
	if _, err := s.Authenticate(ctx, "lerato@luct.ac.ls", "wrong"); err != recordstore.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := s.Create(ctx, models.CollUsers, recordstore.Record{"email": "lerato@luct.ac.ls", "password": "x"}); err != recordstore.ErrDuplicate {
		t.Errorf("expected ErrDuplicate for repeated email, got %v", err)
	}
}

func TestAuthenticate_UpgradesPlaintext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := recordstore.New(db, zap.NewNop())

	_, err := db.Collection(models.CollUsers).InsertOne(ctx, bson.M{
		"id": int64(1), "email": "old@luct.ac.ls", "password": "legacy", "role": "pl",
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := s.Authenticate(ctx, "old@luct.ac.ls", "legacy"); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	var raw bson.M
	_ = db.Collection(models.CollUsers).FindOne(ctx, bson.M{"id": int64(1)}).Decode(&raw)
	if raw["password"] == "legacy" {
		t.Error("plaintext password was not upgraded")
	}
	if _, err := s.Authenticate(ctx, "old@luct.ac.ls", "legacy"); err != nil {
		t.Errorf("Authenticate after upgrade failed: %v", err)
	}
}

func TestPatch(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := s.Create(ctx, models.CollReports, recordstore.Record{"topic": "REST", "present": int64(3)}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.Patch(ctx, models.CollReports, "1", recordstore.Record{"feedback": "Good work", "id": int64(99)})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if got["feedback"] != "Good work" || got["id"] != int64(1) {
		t.Errorf("unexpected patched record %v", got)
	}

	if _, err := s.Patch(ctx, models.CollReports, "42", recordstore.Record{"feedback": "x"}); err != recordstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	rec, err := recordstore.Decode([]byte(`{"id": 5, "present": 2.5, "nested": {"n": 1}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rec["id"] != int64(5) || rec["present"] != 2.5 {
		t.Errorf("unexpected numbers %v", rec)
	}
	if _, err := recordstore.Decode([]byte(`null`)); err == nil {
		t.Error("expected error for null body")
	}
}
