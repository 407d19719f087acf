package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// FakeStore is an in-memory collection API served over httptest. It
// assigns numeric ids, applies equality filters from the query string and
// can be told to fail particular calls, which is how the submission tests
// simulate a connection dropping halfway through an attendance batch.
type FakeStore struct {
	Server *httptest.Server

	mu     sync.Mutex
	data   map[string][]map[string]any
	nextID map[string]int64
	calls  map[string]int
	faults []*fault
}

type fault struct {
	method     string
	collection string
	after      int // successful calls allowed before failing
	status     int
	seen       int
}

// NewFakeStore starts a fake API that is closed when the test ends.
func NewFakeStore(t *testing.T) *FakeStore {
	t.Helper()
	f := &FakeStore{
		data:   make(map[string][]map[string]any),
		nextID: make(map[string]int64),
		calls:  make(map[string]int),
	}
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/auth/login", f.login)
	r.Get("/{collection}", f.list)
	r.Post("/{collection}", f.create)
	r.Get("/{collection}/{id}", f.get)
	r.Patch("/{collection}/{id}", f.patch)
	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the API root.
func (f *FakeStore) URL() string { return f.Server.URL }

// Seed inserts records as-is (after a JSON round trip). Records without an
// id get the next numeric id.
func (f *FakeStore) Seed(collection string, records ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			panic(err)
		}
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			panic(err)
		}
		f.insertLocked(collection, m)
	}
}

// Records returns a copy of a collection's records.
func (f *FakeStore) Records(collection string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.data[collection]))
	for _, m := range f.data[collection] {
		out = append(out, copyMap(m))
	}
	return out
}

// Count is len(Records(collection)).
func (f *FakeStore) Count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data[collection])
}

// Calls returns how many requests of method hit collection.
func (f *FakeStore) Calls(method, collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+collection]
}

// FailAfter lets `after` matching calls through, then answers every later
// one with status until Heal is called. A status of 0 closes the
// connection instead of answering.
func (f *FakeStore) FailAfter(method, collection string, after, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, &fault{method: method, collection: collection, after: after, status: status})
}

// Fail makes every matching call fail with status.
func (f *FakeStore) Fail(method, collection string, status int) {
	f.FailAfter(method, collection, 0, status)
}

// Heal removes all injected faults.
func (f *FakeStore) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = nil
}

// intercept records the call and applies any matching fault. It reports
// whether the request was already answered.
func (f *FakeStore) intercept(w http.ResponseWriter, r *http.Request, collection string) bool {
	f.mu.Lock()
	f.calls[r.Method+" "+collection]++
	status, hit := 0, false
	for _, ft := range f.faults {
		if ft.method != r.Method || ft.collection != collection {
			continue
		}
		ft.seen++
		if ft.seen > ft.after {
			status, hit = ft.status, true
		}
	}
	f.mu.Unlock()

	if !hit {
		return false
	}
	if status == 0 {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
				return true
			}
		}
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"message": "injected failure"})
	return true
}

func (f *FakeStore) list(w http.ResponseWriter, r *http.Request) {
	c := chi.URLParam(r, "collection")
	if f.intercept(w, r, c) {
		return
	}
	q := r.URL.Query()
	if _, ok := q["password"]; ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "password is not a filterable field"})
		return
	}
	f.mu.Lock()
	out := make([]map[string]any, 0)
	for _, m := range f.data[c] {
		if matches(m, q) {
			out = append(out, public(m))
		}
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeStore) get(w http.ResponseWriter, r *http.Request) {
	c := chi.URLParam(r, "collection")
	if f.intercept(w, r, c) {
		return
	}
	f.mu.Lock()
	m := f.findLocked(c, chi.URLParam(r, "id"))
	var out map[string]any
	if m != nil {
		out = public(m)
	}
	f.mu.Unlock()
	if out == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeStore) create(w http.ResponseWriter, r *http.Request) {
	c := chi.URLParam(r, "collection")
	if f.intercept(w, r, c) {
		return
	}
	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON"})
		return
	}
	f.mu.Lock()
	if c == "enrollments" && f.duplicateEnrollmentLocked(m) {
		f.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Already enrolled in this course"})
		return
	}
	stored := f.insertLocked(c, m)
	out := public(stored)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (f *FakeStore) patch(w http.ResponseWriter, r *http.Request) {
	c := chi.URLParam(r, "collection")
	if f.intercept(w, r, c) {
		return
	}
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON"})
		return
	}
	f.mu.Lock()
	m := f.findLocked(c, chi.URLParam(r, "id"))
	var out map[string]any
	if m != nil {
		for k, v := range fields {
			if k == "id" {
				continue
			}
			m[k] = v
		}
		out = public(m)
	}
	f.mu.Unlock()
	if out == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeStore) login(w http.ResponseWriter, r *http.Request) {
	if f.intercept(w, r, "auth") {
		return
	}
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON"})
		return
	}
	f.mu.Lock()
	var out map[string]any
	for _, m := range f.data["users"] {
		if m["email"] == creds.Email && m["password"] == creds.Password {
			out = public(m)
			break
		}
	}
	f.mu.Unlock()
	if out == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeStore) insertLocked(collection string, m map[string]any) map[string]any {
	if id, ok := m["id"]; !ok || id == nil || id == "" {
		f.nextID[collection]++
		m["id"] = float64(f.nextID[collection])
	} else if n, ok := numeric(id); ok && n > f.nextID[collection] {
		f.nextID[collection] = n
	}
	f.data[collection] = append(f.data[collection], m)
	return m
}

func (f *FakeStore) findLocked(collection, id string) map[string]any {
	for _, m := range f.data[collection] {
		if scalar(m["id"]) == id {
			return m
		}
	}
	return nil
}

func (f *FakeStore) duplicateEnrollmentLocked(m map[string]any) bool {
	for _, e := range f.data["enrollments"] {
		if scalar(e["userId"]) == scalar(m["userId"]) && scalar(e["courseId"]) == scalar(m["courseId"]) {
			return true
		}
	}
	return false
}

func matches(m map[string]any, q map[string][]string) bool {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if scalar(m[k]) != q[k][0] {
			return false
		}
	}
	return true
}

func public(m map[string]any) map[string]any {
	out := copyMap(m)
	delete(out, "password")
	return out
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func numeric(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		return int64(x), x == float64(int64(x))
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	}
	return 0, false
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
