//go:build !integration

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"provider-network-pricing/internal/infra/logging"
)

func sign(t *testing.T, secret, subject string, exp time.Time) string {
	t.Helper()
	claims := CallerClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestJWTPrincipal(t *testing.T) {
	var principal string
	h := JWTPrincipal("topsecret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = logging.Principal(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	future := time.Now().Add(time.Hour)
	cases := []struct {
		name   string
		method string
		token  string
		want   int
		who    string
	}{
		{"get needs no token", http.MethodGet, "", http.StatusNoContent, ""},
		{"post without token", http.MethodPost, "", http.StatusUnauthorized, ""},
		{"wrong secret", http.MethodPost, sign(t, "other", "caller-1", future), http.StatusForbidden, ""},
		{"expired", http.MethodPut, sign(t, "topsecret", "caller-1", time.Now().Add(-time.Minute)), http.StatusForbidden, ""},
		{"missing subject", http.MethodPost, sign(t, "topsecret", "", future), http.StatusForbidden, ""},
		{"valid", http.MethodPost, sign(t, "topsecret", "caller-1", future), http.StatusNoContent, "caller-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			principal = ""
			req := httptest.NewRequest(tc.method, "/x", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("want %d, got %d", tc.want, rec.Code)
			}
			if principal != tc.who {
				t.Fatalf("principal = %q, want %q", principal, tc.who)
			}
		})
	}
}

func TestJWTPrincipal_Disabled(t *testing.T) {
	h := JWTPrincipal("")(ok())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("empty secret should disable the check, got %d", rec.Code)
	}
}
