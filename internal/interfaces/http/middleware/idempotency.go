package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the optional header that deduplicates payment requests
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency claims the Idempotency-Key header before the handler runs.
// A repeated key within TTL is answered with 409 ERR_DUPLICATE_REQUEST and
// the handler is not called. When the handler ends with a non-2xx status or
// panics the key is released so the client can retry. Requests without the header pass
// through untouched.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithError(c, dto.ErrCodeBadRequest, "Idempotency-Key must be at most 128 characters")
			return
		}

		scoped := scopeIdempotencyKey(c, key)
		log := cfg.Logger.With(
			zap.String("idempotency_key", key),
			zap.String("path", c.FullPath()),
			zap.String("request_id", GetRequestID(c)),
		)

		claimed, err := cfg.Store.MarkProcessed(c.Request.Context(), scoped, cfg.TTL)
		if err != nil {
			log.Error("Idempotency store unavailable", zap.Error(err))
			abortWithError(c, dto.ErrCodeInternal, "Unable to verify Idempotency-Key")
			return
		}
		if !claimed {
			log.Info("Duplicate request rejected")
			abortWithError(c, dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed")
			return
		}

		completed := false
		defer func() {
			status := c.Writer.Status()
			if completed && status >= http.StatusOK && status < http.StatusMultipleChoices {
				return
			}
			// the request context may already be cancelled
			ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
			defer cancel()
			if err := cfg.Store.Release(ctx, scoped); err != nil {
				log.Warn("Failed to release idempotency key",
					zap.Int("status", status), zap.Bool("panicked", !completed), zap.Error(err))
			}
		}()

		c.Next()
		completed = true
	}
}

// scopeIdempotencyKey namespaces the client key by tenant, user and route so
// two users cannot collide on the same value
func scopeIdempotencyKey(c *gin.Context, key string) string {
	return strings.Join([]string{
		GetJWTTenantID(c),
		GetJWTUserID(c),
		c.Request.Method,
		c.Request.URL.Path,
		key,
	}, ":")
}
