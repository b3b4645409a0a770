package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	kind     string
	closeErr error
	closed   bool
}

func (s *stubHandler) Kind() string                      { return s.kind }
func (s *stubHandler) Connect(ctx context.Context) error { return nil }
func (s *stubHandler) Ping(ctx context.Context) error    { return nil }

func (s *stubHandler) Close(ctx context.Context) error {
	s.closed = true
	return s.closeErr
}

func (s *stubHandler) Execute(ctx context.Context, operation, query string, params any) (*Result, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.Kinds())

	_, ok := reg.Get(KindSQLite)
	assert.False(t, ok)

	sqlite := &stubHandler{kind: KindSQLite}
	mongo := &stubHandler{kind: KindMongoDB}
	reg.Register(sqlite)
	reg.Register(mongo)

	h, ok := reg.Get(KindSQLite)
	require.True(t, ok)
	assert.Same(t, sqlite, h)

	assert.Equal(t, []string{KindMongoDB, KindSQLite}, reg.Kinds())
}

func TestRegistryClose(t *testing.T) {
	reg := NewRegistry()
	a := &stubHandler{kind: KindSQLite}
	b := &stubHandler{kind: KindMySQL, closeErr: errors.New("close failed")}
	reg.Register(a)
	reg.Register(b)

	err := reg.Close(context.Background())
	assert.ErrorContains(t, err, "close failed")
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
