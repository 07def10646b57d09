package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"provider-network-pricing/internal/infra/logging"
)

// CallerClaims is what the outer boundary signs for a caller. Subject is the
// principal handed to the core.
type CallerClaims struct {
	jwt.RegisteredClaims
}

var errInvalidToken = errors.New("invalid token")

type verifiedKey struct{}

// verifiedCaller returns the principal proven by a token on this request.
// Header-supplied principals never appear here.
func verifiedCaller(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(verifiedKey{}).(string)
	return p, ok && p != ""
}

// JWTPrincipal verifies HS256 bearer tokens on mutating requests and replaces
// any principal header with the token subject. Reads pass through untouched.
// An empty secret disables the check.
func JWTPrincipal(secret string) Middleware {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			hdr := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := parseCaller(strings.TrimSpace(hdr[7:]), key)
			if err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			ctx := logging.WithPrincipal(r.Context(), claims.Subject)
			ctx = context.WithValue(ctx, verifiedKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseCaller(tok string, key []byte) (*CallerClaims, error) {
	claims := &CallerClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}
