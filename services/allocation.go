package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-ops/shopfloor-scheduler-api/models"
)

// RemarkExpertiseWaived tags entries assigned in the final pass, where the
// expertise requirement is not honored
const RemarkExpertiseWaived = "Assigned without expertise match"

// AllocationResult is the complete partition the engine produces: every input
// order lands in exactly one of the two sets.
type AllocationResult struct {
	Scheduled   []models.ScheduleEntry    `json:"scheduled"`
	Unscheduled []models.UnscheduledOrder `json:"unscheduled"`
}

// techState tracks one technician's counters during an allocation run. The
// counters are discarded after the run; only the entries survive.
type techState struct {
	models.DayTechnician
	remaining float64
	assigned  float64
}

// BuildSchedule runs the three-phase greedy assignment of classified orders
// onto the day's technician pool.
//
// Orders are processed highest urgency first, longest routing time first
// within equal urgency, so large jobs land while slack is plentiful. Phase 1
// seeds every technician with one order so nobody starts the day idle.
// Phase 2 fills the rest preferring whoever has the least assigned work.
// Phase 3 waives the expertise requirement to use up leftover capacity.
//
// The run never fails: orders with no eligible technician come back in the
// unscheduled set.
func BuildSchedule(orders []models.Order, pool []models.DayTechnician, day time.Time) AllocationResult {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := PriorityKey(sorted[i].Priority), PriorityKey(sorted[j].Priority)
		if ki != kj {
			return ki < kj
		}
		return sorted[i].RoutingTime > sorted[j].RoutingTime
	})

	techs := make([]*techState, 0, len(pool))
	for _, t := range pool {
		techs = append(techs, &techState{DayTechnician: t, remaining: t.AvailableMinutes})
	}
	// Deterministic visiting order: most available minutes first, matricule
	// as the tie-break.
	sort.SliceStable(techs, func(i, j int) bool {
		if techs[i].remaining != techs[j].remaining {
			return techs[i].remaining > techs[j].remaining
		}
		return techs[i].Matricule < techs[j].Matricule
	})

	consumed := make([]bool, len(sorted))
	dayStr := day.Format("2006-01-02")
	var entries []models.ScheduleEntry

	assign := func(orderIdx int, t *techState, remark string) {
		o := sorted[orderIdx]
		entries = append(entries, models.ScheduleEntry{
			RowID:                uuid.NewString(),
			Day:                  dayStr,
			OrderNumber:          o.OrderNumber,
			SAP:                  o.SAP,
			Description:          o.Description,
			Priority:             o.Priority,
			RoutingTime:          o.RoutingTime,
			ClassLabel:           o.ClassLabel,
			ClassCode:            o.ClassCode,
			TechnicianMatricule:  t.Matricule,
			TechnicianName:       t.Name,
			Status:               models.StatusPlanned,
			Remark:               remark,
			RemainingRoutingTime: o.RoutingTime,
			WorkSessions:         models.WorkSessionList{},
		})
		t.remaining -= o.RoutingTime
		t.assigned += o.RoutingTime
		consumed[orderIdx] = true
	}

	// Phase 1: round-robin seeding. Each technician gets one order before
	// anyone gets a second, so the priority sort cannot starve the
	// low-expertise end of the pool.
	for _, t := range techs {
		for i := range sorted {
			if consumed[i] {
				continue
			}
			if t.ExpertiseLevel >= sorted[i].ClassCode && t.remaining >= sorted[i].RoutingTime {
				assign(i, t, "")
				break
			}
		}
	}

	// Phase 2: balanced priority fill. Among eligible technicians prefer the
	// one furthest behind in assigned minutes, then an exact expertise match,
	// then the most remaining capacity.
	for i := range sorted {
		if consumed[i] {
			continue
		}
		o := sorted[i]
		var best *techState
		for _, t := range techs {
			if t.ExpertiseLevel < o.ClassCode || t.remaining < o.RoutingTime {
				continue
			}
			if best == nil || phase2Less(t, best, o.ClassCode) {
				best = t
			}
		}
		if best != nil {
			assign(i, best, "")
		}
	}

	// Phase 3: capacity fill, expertise waived.
	for i := range sorted {
		if consumed[i] {
			continue
		}
		o := sorted[i]
		var best *techState
		for _, t := range techs {
			if t.remaining < o.RoutingTime {
				continue
			}
			if best == nil || phase3Less(t, best) {
				best = t
			}
		}
		if best != nil {
			assign(i, best, RemarkExpertiseWaived)
		}
	}

	unscheduled := make([]models.UnscheduledOrder, 0)
	for i := range sorted {
		if consumed[i] {
			continue
		}
		o := sorted[i]
		unscheduled = append(unscheduled, models.UnscheduledOrder{
			OrderNumber: o.OrderNumber,
			SAP:         o.SAP,
			Description: o.Description,
			Priority:    o.Priority,
			RoutingTime: o.RoutingTime,
			ClassLabel:  o.ClassLabel,
			ClassCode:   o.ClassCode,
		})
	}

	return AllocationResult{
		Scheduled:   Resequence(entries),
		Unscheduled: unscheduled,
	}
}

// phase2Less reports whether a should be ranked ahead of b for an order of
// the given class code
func phase2Less(a, b *techState, classCode int) bool {
	if a.assigned != b.assigned {
		return a.assigned < b.assigned
	}
	aExact, bExact := a.ExpertiseLevel == classCode, b.ExpertiseLevel == classCode
	if aExact != bExact {
		return aExact
	}
	if a.remaining != b.remaining {
		return a.remaining > b.remaining
	}
	return a.Matricule < b.Matricule
}

// phase3Less ranks candidates for the expertise-waived pass
func phase3Less(a, b *techState) bool {
	if a.assigned != b.assigned {
		return a.assigned < b.assigned
	}
	if a.remaining != b.remaining {
		return a.remaining > b.remaining
	}
	return a.Matricule < b.Matricule
}
