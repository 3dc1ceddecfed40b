package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentalauth/internal/client/tables"
	"github.com/dmitrijs2005/rentalauth/internal/common"
	"github.com/dmitrijs2005/rentalauth/internal/cryptox"
)

// CredentialChecker validates a username/credential pair.
type CredentialChecker interface {
	Check(ctx context.Context, username, credential string) (Identity, error)
}

// DemoChecker accepts a single configured account. Only a salted hash of
// the password is kept.
type DemoChecker struct {
	username string
	salt     []byte
	hash     []byte
}

// NewDemoChecker hashes password with a fresh salt.
func NewDemoChecker(username, password string) *DemoChecker {
	salt := cryptox.NewSalt()
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	return &DemoChecker{
		username: username,
		salt:     salt,
		hash:     cryptox.HashPassword(pw, salt),
	}
}

func (d *DemoChecker) Check(_ context.Context, username, credential string) (Identity, error) {
	if common.IsBlank(username) || credential == "" {
		return Identity{}, common.ErrInvalidInput
	}

	pw := []byte(credential)
	defer common.WipeByteArray(pw)

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(d.username)) == 1
	// always hash, so a wrong username costs the same as a wrong password
	pwOK := cryptox.VerifyPassword(pw, d.salt, d.hash)
	if !userOK || !pwOK {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Name: d.username}, nil
}

// EntityGetter is the point-lookup half of tables.Client.
type EntityGetter interface {
	GetEntity(ctx context.Context, table, partitionKey, rowKey string, out any) (bool, error)
}

// TableChecker looks the pair up as (partition key, row key) in a users
// table. When the row carries PasswordHash/PasswordSalt the credential must
// also match that hash.
type TableChecker struct {
	tables EntityGetter
	table  string
}

// NewTableChecker returns a checker reading from table
// (tables.UsersTable when empty).
func NewTableChecker(g EntityGetter, table string) *TableChecker {
	if table == "" {
		table = tables.UsersTable
	}
	return &TableChecker{tables: g, table: table}
}

func (c *TableChecker) Check(ctx context.Context, username, credential string) (Identity, error) {
	if common.IsBlank(username) || credential == "" {
		return Identity{}, common.ErrInvalidInput
	}

	var rec tables.UserRecord
	found, err := c.tables.GetEntity(ctx, c.table, username, credential, &rec)
	if err != nil {
		return Identity{}, redactLookupError(err)
	}
	if !found {
		return Identity{}, ErrInvalidCredentials
	}

	if rec.HasPasswordHash() {
		pw := []byte(credential)
		defer common.WipeByteArray(pw)

		ok, err := cryptox.VerifyEncoded(pw, rec.PasswordSalt, rec.PasswordHash)
		if err != nil {
			return Identity{}, fmt.Errorf("user record: %w", err)
		}
		if !ok {
			return Identity{}, ErrInvalidCredentials
		}
	}

	name := rec.PartitionKey
	if name == "" {
		name = username
	}
	return Identity{Name: name, Email: rec.Email}, nil
}

func redactLookupError(err error) error {
	switch {
	case errors.Is(err, tables.ErrNotConfigured):
		return err
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrLookupFailed, context.Canceled)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrLookupFailed, context.DeadlineExceeded)
	}
	if code := tables.StatusCode(err); code != 0 {
		return fmt.Errorf("%w: status %d", ErrLookupFailed, code)
	}
	return ErrLookupFailed
}
