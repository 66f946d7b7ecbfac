package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID between services
const RequestIDHeader = "X-Request-ID"

const REQUEST_ID_KEY = "request_id"

// RequestID tags every request with a correlation ID so audit trails and
// access logs can be tied back to a single call. An inbound ID from an
// upstream proxy is kept, otherwise a fresh UUID is assigned. The ID is
// echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(REQUEST_ID_KEY, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the correlation ID assigned by RequestID,
// or an empty string when the middleware did not run
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(REQUEST_ID_KEY)
}
