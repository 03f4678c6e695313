package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ops/shopfloor-scheduler-api/models"
	"github.com/atelier-ops/shopfloor-scheduler-api/services"
	"github.com/atelier-ops/shopfloor-scheduler-api/utils"
)

// StartOrder handles POST /api/v1/schedule/:rowID/start
func StartOrder(c *gin.Context) {
	applyTransition(c, func(e *models.ScheduleEntry, now time.Time) error {
		return services.StartWork(e, now)
	})
}

// StopOrder handles POST /api/v1/schedule/:rowID/stop
func StopOrder(c *gin.Context) {
	applyTransition(c, func(e *models.ScheduleEntry, now time.Time) error {
		return services.StopWork(e, now)
	})
}

// EndOrder handles POST /api/v1/schedule/:rowID/end
func EndOrder(c *gin.Context) {
	applyTransition(c, func(e *models.ScheduleEntry, now time.Time) error {
		return services.EndWork(e, now)
	})
}

// BlockOrderRequest carries the blocking reason and how long the technician
// worked before the block
type BlockOrderRequest struct {
	Reason           string  `json:"reason" binding:"required"`
	TimeSpentMinutes float64 `json:"time_spent_minutes"`
}

// BlockOrder handles POST /api/v1/schedule/:rowID/block
func BlockOrder(c *gin.Context) {
	var req BlockOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	reason, err := utils.ValidateText(req.Reason, 500, "reason")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	applyTransition(c, func(e *models.ScheduleEntry, _ time.Time) error {
		return services.BlockWork(e, reason, req.TimeSpentMinutes)
	})
}

// applyTransition loads the schedule, applies one lifecycle transition to the
// addressed entry and persists the whole table back. One timestamp is taken
// at the start and used through the transition.
func applyTransition(c *gin.Context, transition func(*models.ScheduleEntry, time.Time) error) {
	rowID := c.Param("rowID")
	repo := services.GetScheduleRepository()

	entries, err := repo.LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}

	idx := -1
	for i := range entries {
		if entries[i].RowID == rowID {
			idx = i
			break
		}
	}
	if idx == -1 {
		respondServiceError(c, &services.NotFoundError{Kind: "schedule entry", Key: rowID})
		return
	}

	now := time.Now()
	if err := transition(&entries[idx], now); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := repo.ReplaceSchedule(entries); err != nil {
		respondDatabaseError(c, "Failed to save schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries[idx],
	})
}
