// Package router implements the request routing and response
// normalization core: it validates incoming requests, consults the
// optional result cache, dispatches to the backend registry and shapes
// every outcome into the uniform response envelope. It is the only layer
// that produces user-facing failure messages.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/querygate/querygate/internal/cache"
	"github.com/querygate/querygate/internal/db"
	"github.com/querygate/querygate/internal/logger"
	"github.com/querygate/querygate/internal/models"
)

// Router orchestrates request handling. It is safe for concurrent use to
// the extent the underlying drivers are: the registry is read-only after
// construction and the router itself keeps no per-request state.
type Router struct {
	registry *db.Registry
	cache    cache.Cache // nil when caching is disabled or unconfigured
}

// New creates a router over a built registry. cache may be nil.
func New(registry *db.Registry, c cache.Cache) *Router {
	return &Router{registry: registry, cache: c}
}

// Handle processes one request and always returns an envelope: every
// failure, including a panicking driver, is captured and reshaped into an
// error response rather than propagated to the caller.
func (r *Router) Handle(ctx context.Context, req models.Request) (resp models.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Request handling panicked: %v", rec)
			resp = models.Error(fmt.Sprintf("internal error: %v", rec))
		}
	}()

	reqID := uuid.NewString()[:8]

	dbType := strings.ToLower(strings.TrimSpace(req.DBType))
	if dbType == "" {
		return models.Error("missing required field: db_type")
	}
	if req.Operation == "" {
		return models.Error("missing required field: operation")
	}

	logger.Info("[%s] Processing %s request: %s", reqID, dbType, req.Operation)

	// Cache fast path: a hit bypasses the database layer entirely. A
	// cache key with no cache configured is silently ignored.
	if req.CacheKey != "" && r.cache != nil {
		if data, ok := r.cache.Get(ctx, req.CacheKey); ok {
			logger.Info("[%s] Cache hit - returning cached result", reqID)
			return models.Success(data, true)
		}
	}

	handler, ok := r.registry.Get(dbType)
	if !ok {
		logger.Warning("[%s] No handler for database type %q", reqID, dbType)
		return models.Error(fmt.Sprintf("unsupported or unavailable database type: %s", dbType))
	}

	result, err := handler.Execute(ctx, req.Operation, req.Query, req.Parameters)
	if err != nil {
		logger.Error("[%s] Request processing failed: %v", reqID, err)
		return models.Error(err.Error())
	}

	data := result.Payload()

	// Write-through is best-effort: the cache swallows its own failures
	if req.CacheKey != "" && r.cache != nil {
		r.cache.Set(ctx, req.CacheKey, data)
	}

	return models.Success(data, false)
}
