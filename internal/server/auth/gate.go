package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// ErrNoBearerToken means the Authorization header is absent or not a Bearer credential.
var ErrNoBearerToken = errors.New("no bearer token")

// Gate authenticates requests carrying "Authorization: Bearer <token>".
type Gate struct {
	tokens TokenVerifier
	log    logging.Logger
}

func NewGate(tokens TokenVerifier, log logging.Logger) *Gate {
	return &Gate{tokens: tokens, log: log}
}

// Authenticate resolves an Authorization header value to a principal.
func (g *Gate) Authenticate(header string) (Principal, error) {
	token, err := extractBearerToken(header)
	if err != nil {
		return 0, err
	}
	return g.tokens.Verify(token)
}

// Require wraps next so that it only runs for authenticated requests, with
// the principal available through PrincipalFromContext. Every failure is
// answered with the same 401 body.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := g.Authenticate(r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			g.log.Debug(r.Context(), "request rejected by auth gate",
				"method", r.Method, "path", r.URL.Path, "reason", err)
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoBearerToken
	}
	scheme := common.BearerScheme
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", ErrNoBearerToken
	}
	token := strings.TrimSpace(header[len(scheme):])
	if token == "" {
		return "", ErrNoBearerToken
	}
	return token, nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="notes"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   http.StatusText(http.StatusUnauthorized),
		"message": "missing or invalid bearer token",
	})
}
