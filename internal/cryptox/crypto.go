// Package cryptox implements salted argon2id password hashing used to check
// credentials without ever comparing plaintext.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentalauth/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	SaltLen = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives an argon2id key from password and salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// NewSalt returns SaltLen random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltLen)
}

// VerifyPassword reports whether password hashes to want under salt.
// The comparison is constant-time.
func VerifyPassword(password, salt, want []byte) bool {
	got := HashPassword(password, salt)
	defer common.WipeByteArray(got)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// EncodeHash returns base64 (std encoding) forms of salt and hash, the format
// stored in table records.
func EncodeHash(salt, hash []byte) (encSalt, encHash string) {
	return base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)
}

// VerifyEncoded is VerifyPassword for base64-encoded salt and hash.
func VerifyEncoded(password []byte, encSalt, encHash string) (bool, error) {
	salt, err := base64.StdEncoding.DecodeString(encSalt)
	if err != nil {
		return false, fmt.Errorf("%w: salt: %w", ErrMalformedHash, err)
	}
	hash, err := base64.StdEncoding.DecodeString(encHash)
	if err != nil {
		return false, fmt.Errorf("%w: hash: %w", ErrMalformedHash, err)
	}
	if len(salt) == 0 || len(hash) != argonKeyLen {
		return false, ErrMalformedHash
	}
	return VerifyPassword(password, salt, hash), nil
}
