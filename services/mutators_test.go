package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelier-ops/shopfloor-scheduler-api/models"
)

func testEntries() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{RowID: "row-c", OrderNumber: "O1", Priority: strPtr(PriorityC), RoutingTime: 100, ClassCode: 1, Status: models.StatusPlanned, TechnicianMatricule: "M001", TechnicianName: "Tech M001", SequenceNumber: 1},
		{RowID: "row-a", OrderNumber: "O2", Priority: strPtr(PriorityA), RoutingTime: 200, ClassCode: 2, Status: models.StatusPlanned, TechnicianMatricule: "M002", TechnicianName: "Tech M002", SequenceNumber: 2},
		{RowID: "row-b", OrderNumber: "O3", Priority: strPtr(PriorityB), RoutingTime: 300, ClassCode: 2, Status: models.StatusPlanned, TechnicianMatricule: "M001", TechnicianName: "Tech M001", SequenceNumber: 3},
	}
}

func TestResequence(t *testing.T) {
	entries := testEntries()

	out := Resequence(entries)

	assert.Equal(t, []string{"O2", "O3", "O1"}, []string{out[0].OrderNumber, out[1].OrderNumber, out[2].OrderNumber})
	for i, e := range out {
		assert.Equal(t, i+1, e.SequenceNumber)
	}
}

func TestChangePriority_GlobalResort(t *testing.T) {
	entries := testEntries()

	// Raising the C row to Urgent must place it first and renumber 1..N
	updated, err := ChangePriority(entries, "row-c", strPtr("Urgent"))

	assert.NoError(t, err)
	assert.Equal(t, "O1", updated[0].OrderNumber)
	assert.Equal(t, PriorityUrgent, *updated[0].Priority)
	assert.Equal(t, []int{1, 2, 3}, []int{updated[0].SequenceNumber, updated[1].SequenceNumber, updated[2].SequenceNumber})
	assert.Equal(t, "O2", updated[1].OrderNumber)
	assert.Equal(t, "O3", updated[2].OrderNumber)
}

func TestChangePriority_InvalidValue(t *testing.T) {
	entries := testEntries()

	_, err := ChangePriority(entries, "row-c", strPtr("Z"))

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestChangePriority_NotPlanned(t *testing.T) {
	entries := testEntries()
	entries[0].Status = models.StatusInProgress

	_, err := ChangePriority(entries, "row-c", strPtr("A"))

	var transitionErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestChangePriority_UnknownRow(t *testing.T) {
	_, err := ChangePriority(testEntries(), "missing", strPtr("A"))

	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestChangeTechnician(t *testing.T) {
	entries := testEntries()
	tech := models.DayTechnician{Matricule: "M003", Name: "Tech M003", ExpertiseLevel: 3, AvailableMinutes: 510}

	err := ChangeTechnician(entries, "row-a", tech)

	assert.NoError(t, err)
	assert.Equal(t, "M003", entries[1].TechnicianMatricule)
	assert.Equal(t, "Tech M003", entries[1].TechnicianName)
}

func TestChangeTechnician_ExpertiseTooLow(t *testing.T) {
	entries := testEntries()
	tech := models.DayTechnician{Matricule: "M003", Name: "Tech M003", ExpertiseLevel: 1, AvailableMinutes: 510}

	err := ChangeTechnician(entries, "row-a", tech)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "M002", entries[1].TechnicianMatricule, "rejected reassignment must not mutate")
}

func TestChangeTechnician_Overcommit(t *testing.T) {
	entries := testEntries()
	// M001 already carries O1 (100) and O3 (300); 510 - 400 = 110 < 200
	tech := models.DayTechnician{Matricule: "M001", Name: "Tech M001", ExpertiseLevel: 4, AvailableMinutes: 510}

	err := ChangeTechnician(entries, "row-a", tech)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestChangeTechnician_CompletedWorkFreesCapacity(t *testing.T) {
	entries := testEntries()
	entries[2].Status = models.StatusCompleted
	// With O3 completed, M001 only has O1 (100) open: 510 - 100 >= 200
	tech := models.DayTechnician{Matricule: "M001", Name: "Tech M001", ExpertiseLevel: 4, AvailableMinutes: 510}

	err := ChangeTechnician(entries, "row-a", tech)

	assert.NoError(t, err)
}

func TestChangeTechnician_NotPlanned(t *testing.T) {
	entries := testEntries()
	entries[1].Status = models.StatusInProgress
	tech := models.DayTechnician{Matricule: "M003", ExpertiseLevel: 4, AvailableMinutes: 510}

	err := ChangeTechnician(entries, "row-a", tech)

	var transitionErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestChangeRoutingTime(t *testing.T) {
	entries := testEntries()

	err := ChangeRoutingTime(entries, "row-a", 350)

	assert.NoError(t, err)
	assert.Equal(t, 350.0, entries[1].RoutingTime)
	assert.Equal(t, 350.0, entries[1].RemainingRoutingTime)
	assert.Equal(t, 3, entries[1].ClassCode, "class follows the new routing time")
	assert.Equal(t, "High", entries[1].ClassLabel)
}

func TestChangeRoutingTime_NonPositive(t *testing.T) {
	entries := testEntries()

	err := ChangeRoutingTime(entries, "row-a", 0)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 200.0, entries[1].RoutingTime)
}

func TestChangeRoutingTime_NotPlanned(t *testing.T) {
	entries := testEntries()
	entries[1].Status = models.StatusPartiallyCompleted

	err := ChangeRoutingTime(entries, "row-a", 150)

	var transitionErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestAssignUnscheduled(t *testing.T) {
	entries := testEntries()
	order := models.UnscheduledOrder{OrderNumber: "O9", SAP: "SAP-O9", RoutingTime: 90, ClassLabel: "Low", ClassCode: 1, Priority: strPtr(PriorityUrgent)}
	tech := models.DayTechnician{Matricule: "M003", Name: "Tech M003", ExpertiseLevel: 2, AvailableMinutes: 510}

	updated, err := AssignUnscheduled(entries, order, tech, "2026-03-02")

	assert.NoError(t, err)
	assert.Len(t, updated, 4)
	assert.Equal(t, "O9", updated[0].OrderNumber, "urgent insert resequences to the front")
	assert.Equal(t, models.StatusPlanned, updated[0].Status)
	assert.NotEmpty(t, updated[0].RowID)
	for i, e := range updated {
		assert.Equal(t, i+1, e.SequenceNumber)
	}
}

func TestAssignUnscheduled_ExpertiseTooLow(t *testing.T) {
	order := models.UnscheduledOrder{OrderNumber: "O9", RoutingTime: 400, ClassCode: 3}
	tech := models.DayTechnician{Matricule: "M003", ExpertiseLevel: 1, AvailableMinutes: 510}

	_, err := AssignUnscheduled(testEntries(), order, tech, "2026-03-02")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAssignUnscheduled_Overcommit(t *testing.T) {
	order := models.UnscheduledOrder{OrderNumber: "O9", RoutingTime: 200, ClassCode: 2}
	// M001 already carries 400 minutes of open work
	tech := models.DayTechnician{Matricule: "M001", ExpertiseLevel: 4, AvailableMinutes: 510}

	_, err := AssignUnscheduled(testEntries(), order, tech, "2026-03-02")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestFilterByStatus(t *testing.T) {
	entries := testEntries()
	entries[1].Status = models.StatusCompleted

	filtered := FilterByStatus(entries, []string{models.StatusCompleted})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "O2", filtered[0].OrderNumber)

	assert.Len(t, FilterByStatus(entries, nil), 3, "empty filter keeps everything")
}

func TestFilterByTechnician(t *testing.T) {
	filtered := FilterByTechnician(testEntries(), []string{"Tech M001"})
	assert.Len(t, filtered, 2)
}

func TestStatistics(t *testing.T) {
	entries := testEntries()
	entries[0].Status = models.StatusInProgress
	entries[1].Status = models.StatusBlocked

	stats := Statistics(entries)

	assert.Equal(t, 1, stats[models.StatusPlanned])
	assert.Equal(t, 1, stats[models.StatusInProgress])
	assert.Equal(t, 1, stats[models.StatusBlocked])
	assert.Equal(t, 0, stats[models.StatusCompleted])
	assert.Equal(t, 3, stats["Total"])
}
