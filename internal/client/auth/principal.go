package auth

import "maps"

// Well-known claim names.
const (
	ClaimName       = "name"
	ClaimUniqueName = "unique_name"
	ClaimSubject    = "sub"
	ClaimEmail      = "email"
)

// Principal is an immutable authenticated identity. The zero value is the
// unauthenticated principal.
type Principal struct {
	claims map[string]string
}

// Anonymous returns the unauthenticated Principal.
func Anonymous() Principal {
	return Principal{}
}

// NewPrincipal copies claims into a new Principal.
func NewPrincipal(claims map[string]string) Principal {
	if len(claims) == 0 {
		return Principal{}
	}
	return Principal{claims: maps.Clone(claims)}
}

// IsAuthenticated reports whether the principal carries any claims.
func (p Principal) IsAuthenticated() bool {
	return len(p.claims) > 0
}

// Claim returns the value of one claim.
func (p Principal) Claim(key string) (string, bool) {
	v, ok := p.claims[key]
	return v, ok
}

// Claims returns a copy of all claims; never nil.
func (p Principal) Claims() map[string]string {
	if p.claims == nil {
		return map[string]string{}
	}
	return maps.Clone(p.claims)
}

// Name is the display name: name, then unique_name, then sub.
func (p Principal) Name() string {
	for _, k := range []string{ClaimName, ClaimUniqueName, ClaimSubject} {
		if v := p.claims[k]; v != "" {
			return v
		}
	}
	return ""
}

// Email returns the email claim, if any.
func (p Principal) Email() string {
	return p.claims[ClaimEmail]
}

// String is used by the CLI and in logs.
func (p Principal) String() string {
	if !p.IsAuthenticated() {
		return "anonymous"
	}
	if n := p.Name(); n != "" {
		return n
	}
	return "authenticated"
}

// Identity is what a CredentialChecker vouches for.
type Identity struct {
	Name  string
	Email string
}

// Principal builds the principal for a checked identity.
func (id Identity) Principal() Principal {
	claims := map[string]string{ClaimName: id.Name}
	if id.Email != "" {
		claims[ClaimEmail] = id.Email
	}
	return Principal{claims: claims}
}
