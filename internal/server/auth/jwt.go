package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// Every token verification failure wraps ErrInvalidToken.
var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenMalformed      = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenBadSignature   = fmt.Errorf("%w: bad signature", ErrInvalidToken)
	ErrTokenExpired        = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrTokenInvalidSubject = fmt.Errorf("%w: invalid subject", ErrInvalidToken)

	ErrEmptySecret = errors.New("token signing secret is empty")
)

// TokenVerifier turns a session token into the principal it was issued for.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(p Principal, ttl time.Duration) (string, error)
}

// TokenCodec issues and verifies HS256 JWTs whose subject is the decimal
// principal id.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// CodecOption configures a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) { c.now = now }
}

// NewTokenCodec copies secret and fails with ErrEmptySecret when it is empty.
func NewTokenCodec(secret []byte, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	c := &TokenCodec{secret: append([]byte(nil), secret...), now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *TokenCodec) Issue(p Principal, ttl time.Duration) (string, error) {
	if !p.Valid() {
		return "", fmt.Errorf("issue token for %d: %w", int64(p), ErrTokenInvalidSubject)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   p.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify checks structure, signature, expiry and subject, in that order.
// Only HS256 is accepted; any other alg counts as a bad signature.
func (c *TokenCodec) Verify(token string) (Principal, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return 0, classifyTokenError(err)
	}

	p, err := ParsePrincipal(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenInvalidSubject, err)
	}
	return p, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		// missing exp, nbf in the future and the like
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
