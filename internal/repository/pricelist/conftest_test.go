package pricelist

import (
	"context"
	"testing"
	"time"

	"github.com/retail-cloud/pricedex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn  func(ctx context.Context, key string, body []byte, contentType string) error
	getFn  func(ctx context.Context, key string) (db.Object, error)
	statFn func(ctx context.Context, key string) (time.Time, error)

	putCalls  int
	getCalls  int
	statCalls int
}

func (m *mockStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	m.putCalls++
	if m.putFn != nil {
		return m.putFn(ctx, key, body, contentType)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (db.Object, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return db.Object{}, db.ErrKeyNotFound
}

func (m *mockStore) Stat(ctx context.Context, key string) (time.Time, error) {
	m.statCalls++
	if m.statFn != nil {
		return m.statFn(ctx, key)
	}
	return time.Time{}, db.ErrKeyNotFound
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "pricedex:"), ms
}
