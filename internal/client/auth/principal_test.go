package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal_Anonymous(t *testing.T) {
	p := Anonymous()
	assert.False(t, p.IsAuthenticated())
	assert.NotNil(t, p.Claims())
	assert.Empty(t, p.Claims())
	assert.Equal(t, "anonymous", p.String())
	assert.Equal(t, p, NewPrincipal(nil))
}

func TestPrincipal_IsImmutable(t *testing.T) {
	src := map[string]string{"name": "admin"}
	p := NewPrincipal(src)

	src["name"] = "mallory"
	assert.Equal(t, "admin", p.Name())

	c := p.Claims()
	c["name"] = "mallory"
	assert.Equal(t, "admin", p.Name())
}

func TestPrincipal_NameFallbacks(t *testing.T) {
	tests := []struct {
		claims map[string]string
		want   string
	}{
		{map[string]string{"name": "a", "unique_name": "b", "sub": "c"}, "a"},
		{map[string]string{"unique_name": "b", "sub": "c"}, "b"},
		{map[string]string{"sub": "c"}, "c"},
		{map[string]string{"role": "x"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewPrincipal(tt.claims).Name())
	}
	assert.Equal(t, "authenticated", NewPrincipal(map[string]string{"role": "x"}).String())
}

func TestPrincipal_Claim(t *testing.T) {
	p := NewPrincipal(map[string]string{"role": "staff"})

	v, ok := p.Claim("role")
	assert.True(t, ok)
	assert.Equal(t, "staff", v)

	_, ok = p.Claim("missing")
	assert.False(t, ok)
}

func TestIdentity_Principal(t *testing.T) {
	p := Identity{Name: "admin"}.Principal()
	assert.Equal(t, map[string]string{"name": "admin"}, p.Claims())

	p = Identity{Name: "admin", Email: "admin@example.com"}.Principal()
	assert.Equal(t, map[string]string{"name": "admin", "email": "admin@example.com"}, p.Claims())
}
