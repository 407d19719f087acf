package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_WindowResets(t *testing.T) {
	l := New(2, time.Minute)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if l.Remaining("a") != 0 || l.Remaining("b") != 2 {
		t.Errorf("unexpected remaining counts")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Error("window should have reset")
	}

	l.Reset("a")
	if l.Remaining("a") != 2 {
		t.Error("Reset should clear the window")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		remote string
		want   string
	}{
		{"forwarded", "X-Forwarded-For", "10.0.0.1, 10.0.0.2", "1.1.1.1:80", "10.0.0.1"},
		{"real ip", "X-Real-IP", " 10.0.0.9 ", "1.1.1.1:80", "10.0.0.9"},
		{"remote", "", "", "192.168.1.4:5555", "192.168.1.4"},
		{"remote no port", "", "", "192.168.1.4", "192.168.1.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/auth/login", nil)
			r.RemoteAddr = tt.remote
			if tt.header != "" {
				r.Header.Set(tt.header, tt.value)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := NewLoginLimiter(4, time.Minute)
	r := httptest.NewRequest("POST", "/auth/login", nil)

	for i := 0; i < 2; i++ {
		if _, ok := ll.Check(r, "Thabo@luct.ac.ls"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	msg, ok := ll.Check(r, "thabo@luct.ac.ls ")
	if ok || msg != MsgTooManyForAccount {
		t.Fatalf("expected per-account throttle, got %q %v", msg, ok)
	}

	ll.ResetEmail("THABO@luct.ac.ls")
	if _, ok := ll.Check(r, "thabo@luct.ac.ls"); !ok {
		t.Fatal("reset should allow the account again")
	}
	msg, ok = ll.Check(r, "other@luct.ac.ls")
	if ok || msg != MsgTooManyFromIP {
		t.Fatalf("expected per-IP throttle, got %q %v", msg, ok)
	}
}
