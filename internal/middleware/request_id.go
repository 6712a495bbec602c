package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID echoes the client's request id or assigns a fresh one, so log
// lines across one request can be correlated.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIDHeader, id)
		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Next()
	}
}
