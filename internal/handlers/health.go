package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CleanupCounter exposes the number of failed blob deletions.
type CleanupCounter interface {
	BlobCleanupFailures() int64
}

// Health is the liveness probe.
func Health(counter CleanupCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":              "ok",
			"timestamp":           time.Now().UTC().Format(time.RFC3339Nano),
			"blobCleanupFailures": counter.BlobCleanupFailures(),
		})
	}
}

// Event publishes the wedding date and venue capacity.
func Event(weddingDate time.Time, guestCapacity int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"weddingDate":   weddingDate.Format(time.RFC3339),
			"guestCapacity": guestCapacity,
		})
	}
}
