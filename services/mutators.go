package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/atelier-ops/shopfloor-scheduler-api/models"
)

// Resequence returns the entries sorted by (priority ordinal ascending,
// routing time descending) with sequence numbers reassigned 1..N. It is
// invoked after every engine run, manual insert and priority change; nothing
// reorders the schedule silently.
func Resequence(entries []models.ScheduleEntry) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := PriorityKey(out[i].Priority), PriorityKey(out[j].Priority)
		if ki != kj {
			return ki < kj
		}
		return out[i].RoutingTime > out[j].RoutingTime
	})
	for i := range out {
		out[i].SequenceNumber = i + 1
	}
	return out
}

// findEntry locates an entry by its row ID
func findEntry(entries []models.ScheduleEntry, rowID string) (int, error) {
	for i := range entries {
		if entries[i].RowID == rowID {
			return i, nil
		}
	}
	return -1, &NotFoundError{Kind: "schedule entry", Key: rowID}
}

// ChangeTechnician reassigns a Planned entry to another technician from the
// day pool. The new technician's expertise must cover the order's class code,
// and their remaining capacity (available minutes minus the routing minutes
// of their other unfinished entries) must cover the order's routing time.
func ChangeTechnician(entries []models.ScheduleEntry, rowID string, tech models.DayTechnician) error {
	i, err := findEntry(entries, rowID)
	if err != nil {
		return err
	}
	e := &entries[i]
	if e.Status != models.StatusPlanned {
		return &InvalidTransitionError{Action: "reassign", Status: e.Status}
	}
	if tech.ExpertiseLevel < e.ClassCode {
		return &ValidationError{
			Field:  "matricule",
			Reason: "technician expertise level is below the order's class code",
		}
	}
	committed := 0.0
	for j := range entries {
		if j == i || entries[j].TechnicianMatricule != tech.Matricule {
			continue
		}
		if entries[j].Status != models.StatusCompleted {
			committed += entries[j].RoutingTime
		}
	}
	if tech.AvailableMinutes-committed < e.RoutingTime {
		return &ValidationError{
			Field:  "matricule",
			Reason: "technician does not have enough remaining capacity for this order",
		}
	}
	e.TechnicianMatricule = tech.Matricule
	e.TechnicianName = tech.Name
	return nil
}

// ChangePriority updates a Planned entry's priority and resequences the whole
// schedule. Changing one row reorders all rows; the returned slice replaces
// the previous table.
func ChangePriority(entries []models.ScheduleEntry, rowID string, rawPriority *string) ([]models.ScheduleEntry, error) {
	priority, err := ParsePriority(rawPriority)
	if err != nil {
		return nil, err
	}
	i, err := findEntry(entries, rowID)
	if err != nil {
		return nil, err
	}
	if entries[i].Status != models.StatusPlanned {
		return nil, &InvalidTransitionError{Action: "change priority of", Status: entries[i].Status}
	}
	entries[i].Priority = priority
	return Resequence(entries), nil
}

// ChangeRoutingTime updates a Planned entry's routing time. The remaining
// routing time resets to the new value (no work has started yet) and the
// complexity class follows the new time.
func ChangeRoutingTime(entries []models.ScheduleEntry, rowID string, routingTime float64) error {
	i, err := findEntry(entries, rowID)
	if err != nil {
		return err
	}
	e := &entries[i]
	if e.Status != models.StatusPlanned {
		return &InvalidTransitionError{Action: "change routing time of", Status: e.Status}
	}
	label, code, err := Classify(routingTime)
	if err != nil {
		return err
	}
	e.RoutingTime = routingTime
	e.RemainingRoutingTime = routingTime
	e.ClassLabel = label
	e.ClassCode = code
	return nil
}

// AssignUnscheduled creates a single Planned entry for an order the engine
// left unscheduled. The same expertise and capacity rules apply as for a
// reassignment. The caller removes the order from the unscheduled set and
// persists the resequenced schedule atomically.
func AssignUnscheduled(entries []models.ScheduleEntry, order models.UnscheduledOrder, tech models.DayTechnician, day string) ([]models.ScheduleEntry, error) {
	if tech.ExpertiseLevel < order.ClassCode {
		return nil, &ValidationError{
			Field:  "matricule",
			Reason: "technician expertise level is below the order's class code",
		}
	}
	committed := 0.0
	for j := range entries {
		if entries[j].TechnicianMatricule == tech.Matricule && entries[j].Status != models.StatusCompleted {
			committed += entries[j].RoutingTime
		}
	}
	if tech.AvailableMinutes-committed < order.RoutingTime {
		return nil, &ValidationError{
			Field:  "matricule",
			Reason: "technician does not have enough remaining capacity for this order",
		}
	}
	entry := models.ScheduleEntry{
		RowID:                uuid.NewString(),
		Day:                  day,
		OrderNumber:          order.OrderNumber,
		SAP:                  order.SAP,
		Description:          order.Description,
		Priority:             order.Priority,
		RoutingTime:          order.RoutingTime,
		ClassLabel:           order.ClassLabel,
		ClassCode:            order.ClassCode,
		TechnicianMatricule:  tech.Matricule,
		TechnicianName:       tech.Name,
		Status:               models.StatusPlanned,
		RemainingRoutingTime: order.RoutingTime,
		WorkSessions:         models.WorkSessionList{},
	}
	return Resequence(append(entries, entry)), nil
}

// FilterByStatus keeps only entries whose status is in the given set. An
// empty set means no filtering.
func FilterByStatus(entries []models.ScheduleEntry, statuses []string) []models.ScheduleEntry {
	if len(statuses) == 0 {
		return entries
	}
	want := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	out := make([]models.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if want[e.Status] {
			out = append(out, e)
		}
	}
	return out
}

// FilterByTechnician keeps only entries assigned to the given technician
// names. An empty set means no filtering.
func FilterByTechnician(entries []models.ScheduleEntry, names []string) []models.ScheduleEntry {
	if len(names) == 0 {
		return entries
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := make([]models.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if want[e.TechnicianName] {
			out = append(out, e)
		}
	}
	return out
}

// Statistics returns per-status entry counts plus the total
func Statistics(entries []models.ScheduleEntry) map[string]int {
	stats := map[string]int{
		models.StatusPlanned:            0,
		models.StatusInProgress:         0,
		models.StatusPartiallyCompleted: 0,
		models.StatusCompleted:          0,
		models.StatusBlocked:            0,
	}
	for _, e := range entries {
		stats[e.Status]++
	}
	stats["Total"] = len(entries)
	return stats
}
