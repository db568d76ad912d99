// Package auth is the authentication and request-authorization core of the
// notes server: password hashing, session token issuance and validation,
// the HTTP gate that turns a bearer token into a Principal, and ownership
// checks.
package auth

import (
	"context"
	"fmt"
	"strconv"
)

// Principal identifies an authenticated user. Valid principals are positive.
type Principal int64

func (p Principal) Valid() bool { return p > 0 }

func (p Principal) String() string { return strconv.FormatInt(int64(p), 10) }

// ParsePrincipal parses the decimal form produced by String.
func ParsePrincipal(s string) (Principal, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse principal %q: %w", s, err)
	}
	p := Principal(id)
	if !p.Valid() {
		return 0, fmt.Errorf("principal %d is not positive", id)
	}
	return p, nil
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal attached by the gate.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.Valid()
}
