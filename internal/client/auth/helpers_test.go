package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentalauth/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- token helpers ----

var signingKey = []byte("test-signing-key")

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	require.NoError(t, err)
	return raw
}

// ---- fake store ----

// countingStore wraps a MemoryStore and records calls.
type countingStore struct {
	*storage.MemoryStore

	getErr    error
	setErr    error
	removeErr error

	sets    int
	removes int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *countingStore) Remove(ctx context.Context, key string) error {
	s.removes++
	if s.removeErr != nil {
		return s.removeErr
	}
	return s.MemoryStore.Remove(ctx, key)
}

func (s *countingStore) has(t *testing.T, key string) bool {
	t.Helper()
	_, ok, err := s.MemoryStore.Get(context.Background(), key)
	require.NoError(t, err)
	return ok
}

// ---- fake checker ----

type fakeChecker struct {
	id    Identity
	err   error
	calls int

	lastUser       string
	lastCredential string
}

func (f *fakeChecker) Check(_ context.Context, username, credential string) (Identity, error) {
	f.calls++
	f.lastUser, f.lastCredential = username, credential
	return f.id, f.err
}

// ---- fake table lookup ----

type fakeEntities struct {
	rows map[[2]string]string
	err  error

	lastTable string
}

func (f *fakeEntities) GetEntity(_ context.Context, table, pk, rk string, out any) (bool, error) {
	f.lastTable = table
	if f.err != nil {
		return false, f.err
	}
	raw, ok := f.rows[[2]string{pk, rk}]
	if !ok {
		return false, nil
	}
	return true, jsonUnmarshal(raw, out)
}

var errBoom = errors.New("boom")

// recorder collects notifications.
type recorder struct {
	got []Principal
}

func (r *recorder) fn(p Principal) { r.got = append(r.got, p) }

func fixedClock(now time.Time) Option {
	return WithClock(func() time.Time { return now })
}

func jsonUnmarshal(raw string, out any) error {
	return json.Unmarshal([]byte(raw), out)
}
