package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querygate/querygate/internal/db"
	"github.com/querygate/querygate/internal/models"
)

// fakeHandler implements db.Handler and records Execute invocations
type fakeHandler struct {
	kind     string
	result   *db.Result
	err      error
	panicMsg string
	calls    int
}

func (f *fakeHandler) Kind() string                      { return f.kind }
func (f *fakeHandler) Connect(ctx context.Context) error { return nil }
func (f *fakeHandler) Close(ctx context.Context) error   { return nil }
func (f *fakeHandler) Ping(ctx context.Context) error    { return nil }

func (f *fakeHandler) Execute(ctx context.Context, operation, query string, params any) (*db.Result, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.result, f.err
}

// fakeCache implements cache.Cache over a map, with optional failure modes
type fakeCache struct {
	entries  map[string]any
	failGet  bool
	failSet  bool
	getCalls int
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]any)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (any, bool) {
	f.getCalls++
	if f.failGet {
		return nil, false
	}
	v, ok := f.entries[key]
	return v, ok
}

func (f *fakeCache) Set(ctx context.Context, key string, value any) {
	f.setCalls++
	if f.failSet {
		return
	}
	f.entries[key] = value
}

func newRegistry(handlers ...db.Handler) *db.Registry {
	reg := db.NewRegistry()
	for _, h := range handlers {
		reg.Register(h)
	}
	return reg
}

func TestHandleMissingFields(t *testing.T) {
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(nil)}
	c := newFakeCache()
	r := New(newRegistry(handler), c)

	for name, req := range map[string]models.Request{
		"missing db_type":   {Operation: "select", CacheKey: "k"},
		"missing operation": {DBType: "sqlite", CacheKey: "k"},
		"empty request":     {},
	} {
		t.Run(name, func(t *testing.T) {
			resp := r.Handle(context.Background(), req)

			assert.Equal(t, models.StatusError, resp.Status)
			assert.NotEmpty(t, resp.Error)
			assert.Nil(t, resp.Data)
			assert.Nil(t, resp.FromCache)
			assert.NotZero(t, resp.Timestamp)
		})
	}

	// Neither the backend nor the cache may be touched
	assert.Zero(t, handler.calls)
	assert.Zero(t, c.getCalls)
	assert.Zero(t, c.setCalls)
}

func TestHandleUnknownBackend(t *testing.T) {
	r := New(newRegistry(), nil)
	req := models.Request{DBType: "oracle", Operation: "select", Query: "SELECT 1"}

	for i := 0; i < 2; i++ {
		resp := r.Handle(context.Background(), req)

		assert.Equal(t, models.StatusError, resp.Status)
		assert.Contains(t, resp.Error, "unsupported or unavailable database type: oracle")
	}
}

func TestHandleSuccess(t *testing.T) {
	rows := []map[string]any{{"name": "users"}, {"name": "orders"}}
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(rows)}
	r := New(newRegistry(handler), nil)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT name FROM sqlite_master WHERE type='table'",
	})

	require.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, rows, resp.Data)
	require.NotNil(t, resp.FromCache)
	assert.False(t, *resp.FromCache)
	assert.Empty(t, resp.Error)
	assert.NotZero(t, resp.Timestamp)
	assert.Equal(t, 1, handler.calls)
}

func TestHandleDBTypeNormalized(t *testing.T) {
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(nil)}
	r := New(newRegistry(handler), nil)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    " SQLite ",
		Operation: "select",
		Query:     "SELECT 1",
	})

	assert.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, 1, handler.calls)
}

func TestHandleEmptyResultIsSuccess(t *testing.T) {
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(nil)}
	r := New(newRegistry(handler), nil)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT id FROM users WHERE 1 = 0",
	})

	require.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, []map[string]any{}, resp.Data)
}

func TestHandleWriteCount(t *testing.T) {
	handler := &fakeHandler{kind: db.KindMySQL, result: db.Count(3)}
	r := New(newRegistry(handler), nil)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "mysql",
		Operation: "update",
		Query:     "UPDATE users SET active = 0",
	})

	require.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, int64(3), resp.Data)
}

func TestHandleBackendFailure(t *testing.T) {
	handler := &fakeHandler{kind: db.KindSQLite, err: errors.New("no such table: missing")}
	c := newFakeCache()
	r := New(newRegistry(handler), c)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT * FROM missing",
		CacheKey:  "boom",
	})

	assert.Equal(t, models.StatusError, resp.Status)
	assert.Equal(t, "no such table: missing", resp.Error)
	assert.Nil(t, resp.FromCache)
	// Failures are never cached
	assert.Zero(t, c.setCalls)
}

func TestHandleCacheHit(t *testing.T) {
	rows := []map[string]any{{"name": "users"}, {"name": "orders"}}
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(rows)}
	c := newFakeCache()
	r := New(newRegistry(handler), c)

	req := models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT name FROM sqlite_master WHERE type='table'",
		CacheKey:  "tables",
	}

	// First call misses and populates the cache
	first := r.Handle(context.Background(), req)
	require.Equal(t, models.StatusSuccess, first.Status)
	require.NotNil(t, first.FromCache)
	assert.False(t, *first.FromCache)
	assert.Equal(t, 1, handler.calls)
	assert.Equal(t, 1, c.setCalls)

	// Second call is served from cache without touching the backend
	second := r.Handle(context.Background(), req)
	require.Equal(t, models.StatusSuccess, second.Status)
	require.NotNil(t, second.FromCache)
	assert.True(t, *second.FromCache)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, 1, handler.calls)
}

func TestHandleCacheHitPrecedesRegistry(t *testing.T) {
	// A cache hit must not even require the backend to exist
	c := newFakeCache()
	c.entries["k"] = []any{map[string]any{"a": float64(1)}}
	r := New(newRegistry(), c)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "postgresql",
		Operation: "select",
		Query:     "SELECT a FROM t",
		CacheKey:  "k",
	})

	require.Equal(t, models.StatusSuccess, resp.Status)
	require.NotNil(t, resp.FromCache)
	assert.True(t, *resp.FromCache)
	assert.Equal(t, c.entries["k"], resp.Data)
}

func TestHandleCacheGetFailureFallsThrough(t *testing.T) {
	rows := []map[string]any{{"n": int64(1)}}
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(rows)}
	c := newFakeCache()
	c.failGet = true
	r := New(newRegistry(handler), c)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT 1 AS n",
		CacheKey:  "k",
	})

	require.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, rows, resp.Data)
	assert.Equal(t, 1, handler.calls)
}

func TestHandleCacheKeyWithoutCache(t *testing.T) {
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(nil)}
	r := New(newRegistry(handler), nil)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT 1",
		CacheKey:  "ignored",
	})

	assert.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, 1, handler.calls)
}

func TestHandleNoCacheInteractionWithoutKey(t *testing.T) {
	handler := &fakeHandler{kind: db.KindSQLite, result: db.Rows(nil)}
	c := newFakeCache()
	r := New(newRegistry(handler), c)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT 1",
	})

	assert.Equal(t, models.StatusSuccess, resp.Status)
	assert.Zero(t, c.getCalls)
	assert.Zero(t, c.setCalls)
}

func TestHandlePanicCaptured(t *testing.T) {
	handler := &fakeHandler{kind: db.KindSQLite, panicMsg: "driver gone"}
	r := New(newRegistry(handler), nil)

	resp := r.Handle(context.Background(), models.Request{
		DBType:    "sqlite",
		Operation: "select",
		Query:     "SELECT 1",
	})

	assert.Equal(t, models.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "driver gone")
}
