package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T) (*Gate, *TokenCodec) {
	t.Helper()
	c := newCodec(t)
	return NewGate(c, logging.NewNop()), c
}

// serve runs a gated handler and reports whether it was reached and with
// which principal.
func serve(t *testing.T, g *Gate, header string) (*httptest.ResponseRecorder, bool, Principal) {
	t.Helper()
	var (
		reached bool
		got     Principal
	)
	h := g.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		got, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, reached, got
}

func TestGate_ValidToken(t *testing.T) {
	g, c := newTestGate(t)
	tok, err := c.Issue(5, time.Hour)
	require.NoError(t, err)

	rec, reached, p := serve(t, g, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, Principal(5), p)
}

func TestGate_SchemeIsCaseInsensitive(t *testing.T) {
	g, c := newTestGate(t)
	tok, err := c.Issue(9, time.Hour)
	require.NoError(t, err)

	rec, reached, p := serve(t, g, "bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, Principal(9), p)
}

func TestGate_Rejects(t *testing.T) {
	g, c := newTestGate(t)
	expired, err := c.Issue(5, -time.Second)
	require.NoError(t, err)
	valid, err := c.Issue(5, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"garbage token", "Bearer garbage"},
		{"empty token", "Bearer "},
		{"basic scheme", "Basic YWxpY2U6c2VjcmV0"},
		{"token without scheme", valid},
		{"expired token", "Bearer " + expired},
		{"tampered token", "Bearer " + flipSignatureBit(t, valid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached, _ := serve(t, g, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached, "protected handler must not run")
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body["error"])
			assert.Equal(t, "missing or invalid bearer token", body["message"])
		})
	}
}

func TestGate_Authenticate(t *testing.T) {
	g, c := newTestGate(t)
	tok, err := c.Issue(7, time.Hour)
	require.NoError(t, err)

	p, err := g.Authenticate("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, Principal(7), p)

	_, err = g.Authenticate("")
	require.ErrorIs(t, err, ErrNoBearerToken)

	_, err = g.Authenticate("Bearer x.y.z")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := extractBearerToken("Bearer  abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bear", "Bearer", "Token abc", "Bearer    "} {
		_, err := extractBearerToken(h)
		assert.ErrorIs(t, err, ErrNoBearerToken, h)
	}
}
