// Package token decodes the JWT persisted by the client. By default tokens
// are only decoded: the signature is not checked. A Verifier adds HMAC
// signature and issuer checks for deployments that share a key with the
// issuer.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrIssuerMismatch = errors.New("token issuer mismatch")
)

// Token is a decoded JWT. Claims holds every payload claim rendered as a
// string; ExpiresAt is zero when the token carries no exp claim.
type Token struct {
	Raw       string
	Claims    map[string]string
	ExpiresAt time.Time
}

// Expired reports whether the token is no longer usable at now. A token
// without an expiry is treated as already expired.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt.IsZero() || t.ExpiresAt.Before(now)
}

// Decoder turns a raw token string into a Token.
type Decoder interface {
	Decode(raw string) (*Token, error)
}

// Unverified decodes tokens without checking their signature.
type Unverified struct{}

// Decode implements Decoder.
func (Unverified) Decode(raw string) (*Token, error) {
	return Parse(raw)
}

// Parse decodes raw without verifying the signature or validating claims.
func Parse(raw string) (*Token, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return fromClaims(raw, claims)
}

// Verifier checks HMAC signatures (HS256/384/512) and, when Issuer is set,
// the iss claim. Expiry is left to the caller so expired tokens can still be
// recognized and cleaned up.
type Verifier struct {
	Key    []byte
	Issuer string
}

// Decode implements Decoder.
func (v Verifier) Decode(raw string) (*Token, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithoutClaimsValidation(),
	)

	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return v.Key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	if v.Issuer != "" {
		iss, err := claims.GetIssuer()
		if err != nil || iss != v.Issuer {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrIssuerMismatch)
		}
	}

	return fromClaims(raw, claims)
}

func fromClaims(raw string, claims jwt.MapClaims) (*Token, error) {
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	t := &Token{
		Raw:    raw,
		Claims: make(map[string]string, len(claims)),
	}
	if exp != nil {
		t.ExpiresAt = exp.Time
	}

	for k, v := range claims {
		s, err := claimString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: claim %s: %w", ErrInvalidToken, k, err)
		}
		t.Claims[k] = s
	}
	return t, nil
}

func claimString(v any) (string, error) {
	switch value := v.(type) {
	case string:
		return value, nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case json.Number:
		return value.String(), nil
	case bool:
		return strconv.FormatBool(value), nil
	case nil:
		return "", nil
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
