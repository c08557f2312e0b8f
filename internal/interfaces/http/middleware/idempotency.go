package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/logger"
	"github.com/warehouse/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader names the client supplied retry key
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength caps the header value
const MaxIdempotencyKeyLength = 255

const forgetTimeout = 2 * time.Second

// Idempotency rejects a request whose Idempotency-Key was already used on the
// same method and path within ttl, answering 409 ERR_DUPLICATE_REQUEST.
// Requests without the header pass through. When the handler answers with a
// 4xx or 5xx status the key is released so the client may retry with it.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		requestID := c.GetString("request_id")
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", requestID))
			return
		}

		scoped := c.Request.Method + " " + c.Request.URL.Path + " " + key
		fresh, err := store.MarkProcessed(c.Request.Context(), scoped, ttl)
		if err != nil {
			logger.GetGinLogger(c).Error("idempotency store unavailable", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "Idempotency check unavailable, retry later", requestID))
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed", requestID))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), forgetTimeout)
			defer cancel()
			if err := store.Forget(ctx, scoped); err != nil {
				logger.GetGinLogger(c).Warn("failed to release idempotency key", zap.Error(err))
			}
		}
	}
}
