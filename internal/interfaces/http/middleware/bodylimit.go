package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meatshop/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes. Carts, addresses and
// checkout payloads are all small JSON documents, so the limit can stay tight
// (config http.max_body_size, 1MB by default). Requests that declare an
// oversized Content-Length are refused up front; chunked uploads without a
// declared length are cut off by a limited reader instead.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
