package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		// Route templates keep label cardinality bounded (/windows/:id, not every id)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, duration, reqSize, respSize)
	}
}

// Timer measures operation duration
type Timer struct {
	start      time.Time
	metrics    *Metrics
	collection string
	op         string
}

// NewTimer creates a new storage operation timer
func NewTimer(metrics *Metrics, collection, op string) *Timer {
	return &Timer{
		start:      time.Now(),
		metrics:    metrics,
		collection: collection,
		op:         op,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(status string) {
	t.metrics.RecordStorageOp(t.collection, t.op, status, time.Since(t.start))
}
