package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ops/shopfloor-scheduler-api/config"
	"github.com/atelier-ops/shopfloor-scheduler-api/models"
	"github.com/atelier-ops/shopfloor-scheduler-api/services"
)

// GenerateScheduleRequest carries the day's input tables: the raw orders, the
// product catalog they are classified against, and the shift exception table.
// The technician roster comes from the database.
type GenerateScheduleRequest struct {
	Orders  []services.RawOrder     `json:"orders" binding:"required"`
	Catalog []services.CatalogItem  `json:"catalog" binding:"required"`
	Shifts  []models.ShiftException `json:"shifts" binding:"required"`
}

// GenerateSchedule handles POST /api/v1/schedule/generate - classifies the
// orders, derives the day pool and runs the allocation engine, then persists
// and returns the full result
func GenerateSchedule(c *gin.Context) {
	var req GenerateScheduleRequest
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

	orders, err := services.ClassifyOrders(req.Orders, req.Catalog)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	db := config.GetDB()
	var roster []models.Technician
	if err := db.Find(&roster).Error; err != nil {
		respondDatabaseError(c, "Failed to load technician roster")
		return
	}

	pool := services.ComputeDayPool(req.Shifts, roster)
	result := services.BuildSchedule(orders, pool, time.Now())

	repo := services.GetScheduleRepository()
	if err := repo.ReplaceSchedule(result.Scheduled); err != nil {
		respondDatabaseError(c, "Failed to save schedule")
		return
	}
	if err := repo.ReplaceUnscheduled(result.Unscheduled); err != nil {
		respondDatabaseError(c, "Failed to save unscheduled orders")
		return
	}
	if err := repo.ReplaceDayPool(pool); err != nil {
		respondDatabaseError(c, "Failed to save day pool")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"scheduled":   result.Scheduled,
			"unscheduled": result.Unscheduled,
			"day_pool":    pool,
		},
	})
}

// ListSchedule handles GET /api/v1/schedule - returns the schedule, optionally
// filtered by status and/or technician name (comma-separated)
func ListSchedule(c *gin.Context) {
	entries, err := services.GetScheduleRepository().LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}

	if statuses := splitParam(c.Query("status")); len(statuses) > 0 {
		entries = services.FilterByStatus(entries, statuses)
	}
	if names := splitParam(c.Query("technician")); len(names) > 0 {
		entries = services.FilterByTechnician(entries, names)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// GetStatistics handles GET /api/v1/schedule/statistics - per-status counts
func GetStatistics(c *gin.Context) {
	entries, err := services.GetScheduleRepository().LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.Statistics(entries),
	})
}

// ListUnscheduled handles GET /api/v1/unscheduled
func ListUnscheduled(c *gin.Context) {
	orders, err := services.GetScheduleRepository().LoadUnscheduled()
	if err != nil {
		respondDatabaseError(c, "Failed to load unscheduled orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// AssignUnscheduledRequest selects an unscheduled order and a technician from
// the day pool for a manual single-row insert
type AssignUnscheduledRequest struct {
	OrderID   uint   `json:"order_id" binding:"required"`
	Matricule string `json:"matricule" binding:"required"`
}

// AssignUnscheduled handles POST /api/v1/schedule/assign - manually schedules
// an order the engine left unscheduled
func AssignUnscheduled(c *gin.Context) {
	var req AssignUnscheduledRequest
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

	repo := services.GetScheduleRepository()
	unscheduled, err := repo.LoadUnscheduled()
	if err != nil {
		respondDatabaseError(c, "Failed to load unscheduled orders")
		return
	}

	orderIdx := -1
	for i := range unscheduled {
		if unscheduled[i].ID == req.OrderID {
			orderIdx = i
			break
		}
	}
	if orderIdx == -1 {
		respondServiceError(c, &services.NotFoundError{Kind: "unscheduled order", Key: strconv.FormatUint(uint64(req.OrderID), 10)})
		return
	}

	tech, err := findDayTechnician(req.Matricule)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	entries, err := repo.LoadSchedule()
	if err != nil {
		respondDatabaseError(c, "Failed to load schedule")
		return
	}

	day := time.Now().Format("2006-01-02")
	updated, err := services.AssignUnscheduled(entries, unscheduled[orderIdx], tech, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	remaining := append(unscheduled[:orderIdx:orderIdx], unscheduled[orderIdx+1:]...)
	if err := repo.ReplaceSchedule(updated); err != nil {
		respondDatabaseError(c, "Failed to save schedule")
		return
	}
	if err := repo.ReplaceUnscheduled(remaining); err != nil {
		respondDatabaseError(c, "Failed to save unscheduled orders")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    updated,
	})
}

// ClearSchedule handles DELETE /api/v1/schedule - deletes the schedule, the
// unscheduled set and the day pool
func ClearSchedule(c *gin.Context) {
	if err := services.GetScheduleRepository().Clear(); err != nil {
		respondDatabaseError(c, "Failed to clear schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Schedule cleared",
	})
}

// ListBlockReasons handles GET /api/v1/block-reasons
func ListBlockReasons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.BlockReasons,
	})
}

// findDayTechnician loads one technician from the persisted day pool
func findDayTechnician(matricule string) (models.DayTechnician, error) {
	pool, err := services.GetScheduleRepository().LoadDayPool()
	if err != nil {
		return models.DayTechnician{}, err
	}
	for _, t := range pool {
		if t.Matricule == matricule {
			return t, nil
		}
	}
	return models.DayTechnician{}, &services.NotFoundError{Kind: "day pool technician", Key: matricule}
}

// splitParam splits a comma-separated query parameter into values
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
