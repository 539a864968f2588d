package auth

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/cmdreview/pkg/handlers"
)

// Authenticate attaches the principal from a valid Authorization bearer token.
// Requests without a token pass through anonymously; a malformed or expired
// token is rejected with 401.
func Authenticate(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				reject(w, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			p, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				reject(w, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// Require rejects requests without a principal (401) or whose principal
// holds none of roles (403). With no roles, any authenticated caller passes.
func Require(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				reject(w, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}
			if len(roles) > 0 && !p.Is(roles...) {
				reject(w, http.StatusForbidden, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, status int, err error) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="cmdreview"`)
	}
	handlers.RespondJSON(w, status, map[string]string{"error": err.Error()})
}
