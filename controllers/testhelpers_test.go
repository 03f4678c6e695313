package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/atelier-ops/shopfloor-scheduler-api/config"
	"github.com/atelier-ops/shopfloor-scheduler-api/models"
	"github.com/atelier-ops/shopfloor-scheduler-api/services"
)

func setupControllerTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Technician{},
		&models.DayTechnician{},
		&models.ScheduleEntry{},
		&models.UnscheduledOrder{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{GoEnv: "test", DisableAuth: true})
	services.InitScheduleRepository(db)

	return db
}

// newTestRouter registers all schedule routes without auth middleware
func newTestRouter() *gin.Engine {
	router := gin.New()

	router.GET("/api/v1/schedule", ListSchedule)
	router.GET("/api/v1/schedule/statistics", GetStatistics)
	router.GET("/api/v1/unscheduled", ListUnscheduled)
	router.GET("/api/v1/technicians", ListTechnicians)
	router.GET("/api/v1/block-reasons", ListBlockReasons)
	router.POST("/api/v1/schedule/generate", GenerateSchedule)
	router.POST("/api/v1/schedule/assign", AssignUnscheduled)
	router.POST("/api/v1/schedule/:rowID/start", StartOrder)
	router.POST("/api/v1/schedule/:rowID/stop", StopOrder)
	router.POST("/api/v1/schedule/:rowID/end", EndOrder)
	router.POST("/api/v1/schedule/:rowID/block", BlockOrder)
	router.PATCH("/api/v1/schedule/:rowID/technician", ChangeTechnician)
	router.PATCH("/api/v1/schedule/:rowID/priority", ChangePriority)
	router.PATCH("/api/v1/schedule/:rowID/routing-time", ChangeRoutingTime)
	router.DELETE("/api/v1/schedule", ClearSchedule)
	router.POST("/api/v1/technicians", CreateTechnician)
	router.POST("/api/v1/schedule/snapshot", CreateSnapshot)
	router.GET("/api/v1/schedule/snapshot/url", GetSnapshotURL)

	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response should be valid JSON: %v", err)
	}
	return response
}

func seedRoster(t *testing.T, db *gorm.DB) {
	t.Helper()
	roster := []models.Technician{
		{Matricule: "M001", Name: "Amal", ExpertiseLevel: 4},
		{Matricule: "M002", Name: "Karim", ExpertiseLevel: 2},
	}
	if err := db.Create(&roster).Error; err != nil {
		t.Fatalf("Failed to seed roster: %v", err)
	}
}

// generateTestSchedule runs the generate endpoint with a small fixed data set
func generateTestSchedule(t *testing.T, router *gin.Engine) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{
		"orders": []map[string]interface{}{
			{"order_number": "O1", "sap": "S1", "description": "bracket", "priority": "A"},
			{"order_number": "O2", "sap": "S2", "description": "housing", "priority": "B"},
			{"order_number": "O3", "sap": "S3", "description": "frame"},
		},
		"catalog": []map[string]interface{}{
			{"sap": "S1", "routing_time": 100},
			{"sap": "S2", "routing_time": 350},
			{"sap": "S3", "routing_time": 900},
		},
		"shifts": []map[string]interface{}{
			{"matricule": "M001", "working": true, "transferred": false},
			{"matricule": "M002", "working": true, "transferred": false, "break_minutes": 30},
		},
	}

	w := performRequest(router, http.MethodPost, "/api/v1/schedule/generate", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to generate schedule: status %d, body %s", w.Code, w.Body.String())
	}
	return parseResponse(t, w)
}
