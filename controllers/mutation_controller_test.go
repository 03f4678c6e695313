package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// rowIDsByOrder generates a schedule and maps order numbers to row IDs
func rowIDsByOrder(t *testing.T, router *gin.Engine) map[string]string {
	t.Helper()
	response := generateTestSchedule(t, router)
	data := response["data"].(map[string]interface{})

	rows := map[string]string{}
	for _, item := range data["scheduled"].([]interface{}) {
		entry := item.(map[string]interface{})
		rows[entry["order_number"].(string)] = entry["row_id"].(string)
	}
	return rows
}

func TestChangeTechnician_HTTP(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rows := rowIDsByOrder(t, router)

	// O1 is a class-1 order; Karim (expertise 2) qualifies and is idle
	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/"+rows["O1"]+"/technician", map[string]interface{}{
		"matricule": "M002",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	for _, item := range response["data"].([]interface{}) {
		entry := item.(map[string]interface{})
		if entry["order_number"] == "O1" {
			assert.Equal(t, "M002", entry["technician_matricule"])
			assert.Equal(t, "Karim", entry["technician_name"])
		}
	}
}

func TestChangeTechnician_ExpertiseRejected(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rows := rowIDsByOrder(t, router)

	// O2 is a class-3 order; Karim only has expertise 2
	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/"+rows["O2"]+"/technician", map[string]interface{}{
		"matricule": "M002",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseResponse(t, w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestChangeTechnician_UnknownMatricule(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rows := rowIDsByOrder(t, router)

	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/"+rows["O1"]+"/technician", map[string]interface{}{
		"matricule": "M999",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangePriority_HTTP(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rows := rowIDsByOrder(t, router)

	// Raising O2 from B to Urgent must put it ahead of the A-priority O1
	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/"+rows["O2"]+"/priority", map[string]interface{}{
		"priority": "Urgent",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	entries := response["data"].([]interface{})
	first := entries[0].(map[string]interface{})
	assert.Equal(t, "O2", first["order_number"])
	assert.Equal(t, "Urgent", first["priority"])
	assert.Equal(t, float64(1), first["sequence_number"])
}

func TestChangePriority_Invalid(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rows := rowIDsByOrder(t, router)

	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/"+rows["O2"]+"/priority", map[string]interface{}{
		"priority": "Z",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePriority_UnknownRow(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rowIDsByOrder(t, router)

	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/no-such-row/priority", map[string]interface{}{
		"priority": "A",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangeRoutingTime_HTTP(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rows := rowIDsByOrder(t, router)

	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/"+rows["O1"]+"/routing-time", map[string]interface{}{
		"routing_time_minutes": 170,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	for _, item := range response["data"].([]interface{}) {
		entry := item.(map[string]interface{})
		if entry["order_number"] == "O1" {
			assert.Equal(t, float64(170), entry["routing_time"])
			assert.Equal(t, float64(170), entry["remaining_routing_time"])
			assert.Equal(t, "Medium", entry["class_label"])
			assert.Equal(t, float64(2), entry["class_code"])
		}
	}
}

func TestChangeRoutingTime_NonPositive(t *testing.T) {
	db := setupControllerTest(t)
	seedRoster(t, db)
	router := newTestRouter()
	rows := rowIDsByOrder(t, router)

	w := performRequest(router, http.MethodPatch, "/api/v1/schedule/"+rows["O1"]+"/routing-time", map[string]interface{}{
		"routing_time_minutes": -10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
