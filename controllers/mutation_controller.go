package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ops/shopfloor-scheduler-api/services"
)

// ChangeTechnicianRequest selects the new assignee from the day pool
type ChangeTechnicianRequest struct {
	Matricule string `json:"matricule" binding:"required"`
}

// ChangeTechnician handles PATCH /api/v1/schedule/:rowID/technician
func ChangeTechnician(c *gin.Context) {
	var req ChangeTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tech, err := findDayTechnician(req.Matricule)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	repo := services.GetScheduleRepository()
	entries, err := repo.LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}

	if err := services.ChangeTechnician(entries, c.Param("rowID"), tech); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := repo.ReplaceSchedule(entries); err != nil {
		respondDatabaseError(c, "Failed to save schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// ChangePriorityRequest carries the new priority value; empty clears it
type ChangePriorityRequest struct {
	Priority *string `json:"priority"`
}

// ChangePriority handles PATCH /api/v1/schedule/:rowID/priority. Changing one
// row's priority resequences the whole schedule.
func ChangePriority(c *gin.Context) {
	var req ChangePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	repo := services.GetScheduleRepository()
	entries, err := repo.LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}

	updated, err := services.ChangePriority(entries, c.Param("rowID"), req.Priority)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := repo.ReplaceSchedule(updated); err != nil {
		respondDatabaseError(c, "Failed to save schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// ChangeRoutingTimeRequest carries the corrected routing time in minutes
type ChangeRoutingTimeRequest struct {
	RoutingTimeMinutes float64 `json:"routing_time_minutes" binding:"required"`
}

// ChangeRoutingTime handles PATCH /api/v1/schedule/:rowID/routing-time
func ChangeRoutingTime(c *gin.Context) {
	var req ChangeRoutingTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	repo := services.GetScheduleRepository()
	entries, err := repo.LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}

	if err := services.ChangeRoutingTime(entries, c.Param("rowID"), req.RoutingTimeMinutes); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := repo.ReplaceSchedule(entries); err != nil {
		respondDatabaseError(c, "Failed to save schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// badRequest reports a request binding failure
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}
