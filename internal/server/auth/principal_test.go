package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrincipal(t *testing.T) {
	p, err := ParsePrincipal("42")
	require.NoError(t, err)
	assert.Equal(t, Principal(42), p)
	assert.Equal(t, "42", p.String())

	for _, s := range []string{"", "0", "-1", "abc", "9223372036854775808"} {
		_, err := ParsePrincipal(s)
		assert.Error(t, err, s)
	}
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), 5)
	p, ok := PrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, Principal(5), p)

	_, ok = PrincipalFromContext(WithPrincipal(context.Background(), 0))
	assert.False(t, ok)
}
