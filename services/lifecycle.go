package services

import (
	"fmt"
	"math"
	"time"

	"github.com/atelier-ops/shopfloor-scheduler-api/models"
)

// StartWork transitions an entry to In Progress and opens a new work session.
// Valid from Planned (first start) or Partially Completed (resume). The first
// ever start stamps FirstStartTime.
func StartWork(e *models.ScheduleEntry, now time.Time) error {
	if e.Status != models.StatusPlanned && e.Status != models.StatusPartiallyCompleted {
		return &InvalidTransitionError{Action: "start", Status: e.Status}
	}
	e.Status = models.StatusInProgress
	if e.FirstStartTime == nil {
		t := now
		e.FirstStartTime = &t
	}
	e.WorkSessions = append(e.WorkSessions, models.WorkSession{Start: now})
	return nil
}

// StopWork pauses an In Progress entry: the open session is closed and the
// accumulated time and remaining routing time are recomputed.
func StopWork(e *models.ScheduleEntry, now time.Time) error {
	if e.Status != models.StatusInProgress {
		return &InvalidTransitionError{Action: "stop", Status: e.Status}
	}
	e.Status = models.StatusPartiallyCompleted
	closeOpenSession(e, now)
	e.TotalTimeSpent = totalSessionMinutes(e.WorkSessions)
	e.RemainingRoutingTime = math.Max(0, e.RoutingTime-e.TotalTimeSpent)
	return nil
}

// EndWork completes an entry from In Progress or Partially Completed. Any open
// session is closed, the end timestamp recorded, and the remaining routing
// time forced to zero.
func EndWork(e *models.ScheduleEntry, now time.Time) error {
	if e.Status != models.StatusInProgress && e.Status != models.StatusPartiallyCompleted {
		return &InvalidTransitionError{Action: "end", Status: e.Status}
	}
	e.Status = models.StatusCompleted
	t := now
	e.EndTime = &t
	closeOpenSession(e, now)
	e.TotalTimeSpent = totalSessionMinutes(e.WorkSessions)
	e.RemainingRoutingTime = 0
	return nil
}

// BlockWork marks an entry as blocked, e.g. when a quality defect halts work.
// The reason and the caller-supplied minutes spent go into the remark; the
// remaining time is recomputed from the supplied figure rather than from the
// session history. Completed entries cannot be blocked.
func BlockWork(e *models.ScheduleEntry, reason string, timeSpent float64) error {
	if e.Status == models.StatusCompleted {
		return &InvalidTransitionError{Action: "block", Status: e.Status}
	}
	if timeSpent < 0 {
		return &ValidationError{Field: "time_spent_minutes", Reason: "must not be negative"}
	}
	e.Status = models.StatusBlocked
	e.Remark = fmt.Sprintf("Blocked: %s. Time spent: %.1f min", reason, timeSpent)
	e.RemainingRoutingTime = math.Max(0, e.RoutingTime-timeSpent)
	return nil
}

func closeOpenSession(e *models.ScheduleEntry, now time.Time) {
	if i := e.OpenSession(); i >= 0 {
		t := now
		e.WorkSessions[i].Stop = &t
	}
}

// totalSessionMinutes sums the duration of all closed sessions
func totalSessionMinutes(sessions models.WorkSessionList) float64 {
	total := 0.0
	for _, s := range sessions {
		if s.Stop != nil {
			total += s.Stop.Sub(s.Start).Minutes()
		}
	}
	return total
}
