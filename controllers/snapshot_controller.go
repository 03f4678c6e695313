package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ops/shopfloor-scheduler-api/services"
)

// CreateSnapshot handles POST /api/v1/schedule/snapshot - archives the current
// scheduling state (schedule, unscheduled set, day pool) as a JSON object in S3
func CreateSnapshot(c *gin.Context) {
	snapshotService := services.GetSnapshotService()
	if snapshotService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SNAPSHOT_UNAVAILABLE",
				"message": "Snapshot storage is not configured",
			},
		})
		return
	}

	repo := services.GetScheduleRepository()
	entries, err := repo.LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}
	unscheduled, err := repo.LoadUnscheduled()
	if err != nil {
		respondDatabaseError(c, "Failed to load unscheduled orders")
		return
	}
	pool, err := repo.LoadDayPool()
	if err != nil {
		respondDatabaseError(c, "Failed to load day pool")
		return
	}

	payload, err := json.Marshal(gin.H{
		"taken_at":    time.Now().Format(time.RFC3339),
		"scheduled":   entries,
		"unscheduled": unscheduled,
		"day_pool":    pool,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SNAPSHOT_ERROR",
				"message": "Failed to serialize snapshot",
			},
		})
		return
	}

	key, err := snapshotService.UploadSnapshot(time.Now().Format("150405"), payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SNAPSHOT_ERROR",
				"message": "Failed to upload snapshot",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"key": key,
		},
	})
}

// GetSnapshotURL handles GET /api/v1/schedule/snapshot/url?key=... - returns a
// time-limited download URL for a stored snapshot
func GetSnapshotURL(c *gin.Context) {
	snapshotService := services.GetSnapshotService()
	if snapshotService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SNAPSHOT_UNAVAILABLE",
				"message": "Snapshot storage is not configured",
			},
		})
		return
	}

	url, err := snapshotService.GetPresignedURL(c.Query("key"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url": url,
		},
	})
}
