package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every webhook call with a request id and logs the
// delivery, replacing FareHarbor's lack of one.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.Printf("webhook %s %s from %s: status=%d bytes=%d duration=%s request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.ClientIP(),
			c.Writer.Status(), c.Request.ContentLength, time.Since(start), requestID)
	}
}
