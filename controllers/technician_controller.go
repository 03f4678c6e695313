package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ops/shopfloor-scheduler-api/config"
	"github.com/atelier-ops/shopfloor-scheduler-api/models"
	"github.com/atelier-ops/shopfloor-scheduler-api/services"
)

// CreateTechnicianRequest represents the request body for adding a roster entry
type CreateTechnicianRequest struct {
	Matricule      string `json:"matricule" binding:"required"`
	Name           string `json:"name" binding:"required"`
	ExpertiseLevel int    `json:"expertise_level" binding:"required,gte=1,lte=4"`
}

// CreateTechnician handles POST /api/v1/technicians - adds a technician to
// the static roster
func CreateTechnician(c *gin.Context) {
	var req CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	db := config.GetDB()

	var existing models.Technician
	if err := db.Where("matricule = ?", req.Matricule).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_MATRICULE",
				"message": "A technician with this matricule already exists",
			},
		})
		return
	}

	technician := models.Technician{
		Matricule:      req.Matricule,
		Name:           req.Name,
		ExpertiseLevel: req.ExpertiseLevel,
	}

	if err := db.Create(&technician).Error; err != nil {
		respondDatabaseError(c, "Failed to create technician")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    technician,
	})
}

// ListTechnicians handles GET /api/v1/technicians - returns the roster with
// expertise labels
func ListTechnicians(c *gin.Context) {
	db := config.GetDB()

	var technicians []models.Technician
	if err := db.Order("matricule asc").Find(&technicians).Error; err != nil {
		respondDatabaseError(c, "Failed to load technicians")
		return
	}

	type rosterEntry struct {
		models.Technician
		ExpertiseLabel string `json:"expertise_label"`
	}
	roster := make([]rosterEntry, 0, len(technicians))
	for _, t := range technicians {
		roster = append(roster, rosterEntry{
			Technician:     t,
			ExpertiseLabel: services.ExpertiseLabels[t.ExpertiseLevel],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    roster,
	})
}
