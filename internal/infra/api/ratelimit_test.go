//go:build !integration

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_HeaderPrincipalSharesAddressBucket(t *testing.T) {
	l := NewLimiters(0.001, 2, time.Minute)
	h := TraceID()(RateLimit(l)(ok()))

	send := func(principal, addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = addr
		if principal != "" {
			req.Header.Set(PrincipalHeader, principal)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := send(fmt.Sprintf("caller-%d", i), "10.0.0.1:1000"); code != http.StatusNoContent {
			t.Fatalf("request %d within burst got %d", i, code)
		}
	}
	// Rotating the header does not buy a fresh bucket.
	for i := 2; i < 5; i++ {
		if code := send(fmt.Sprintf("caller-%d", i), "10.0.0.1:1000"); code != http.StatusTooManyRequests {
			t.Fatalf("request %d: expected 429 after burst, got %d", i, code)
		}
	}
	if code := send("", "10.0.0.2:2000"); code != http.StatusNoContent {
		t.Fatalf("other address got %d", code)
	}
}

func TestRateLimit_VerifiedCallersGetOwnBuckets(t *testing.T) {
	l := NewLimiters(0.001, 1, time.Minute)
	h := TraceID()(JWTPrincipal("topsecret")(RateLimit(l)(ok())))
	future := time.Now().Add(time.Hour)

	send := func(subject string) int {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		req.Header.Set("Authorization", "Bearer "+sign(t, "topsecret", subject, future))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("alice"); code != http.StatusNoContent {
		t.Fatalf("alice first request got %d", code)
	}
	if code := send("alice"); code != http.StatusTooManyRequests {
		t.Fatalf("alice second request: expected 429, got %d", code)
	}
	if code := send("bob"); code != http.StatusNoContent {
		t.Fatalf("bob should not share alice's bucket, got %d", code)
	}
}

func TestRateLimit_NilDisables(t *testing.T) {
	h := RateLimit(nil)(ok())
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("got %d", rec.Code)
		}
	}
}

func TestLimiters_Sweep(t *testing.T) {
	l := NewLimiters(1, 1, time.Minute)
	clock := time.Unix(1000, 0)
	l.now = func() time.Time { return clock }

	l.get("p:a")
	clock = clock.Add(30 * time.Second)
	l.get("p:b")
	clock = clock.Add(45 * time.Second)

	if n := l.Sweep(); n != 1 {
		t.Fatalf("expected one idle caller swept, got %d", n)
	}
	if _, ok := l.entries["p:b"]; !ok {
		t.Fatal("recent caller was swept")
	}
}
