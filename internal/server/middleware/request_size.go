// file: internal/server/middleware/request_size.go
// version: 1.1.0
// guid: 6e8a0c2d-4f7b-49e3-b5a7-9c1e3f5b7d29

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// MaxRequestBodySize rejects oversized request bodies up front and caps the
// reader for chunked requests without a Content-Length.
func MaxRequestBodySize(limitBytes int64) gin.HandlerFunc {
	if limitBytes < 1 {
		limitBytes = 1 << 20
	}

	return func(c *gin.Context) {
		if !methodHasBody(c.Request.Method) {
			c.Next()
			return
		}

		if c.Request.ContentLength > limitBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limitBytes)
		c.Next()
	}
}
