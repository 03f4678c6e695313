package services

import (
	"github.com/atelier-ops/shopfloor-scheduler-api/models"
)

// Working time constants for a standard day
const (
	StandardWorkdayMinutes = 480
	LunchBreakMinutes      = 30
)

// ComputeDayPool derives the day's technician pool from the shift exception
// table and the static roster. Only technicians who are working today and not
// transferred to another line enter the pool. Available minutes:
//
//	480 + 30 - break + extra
//
// Missing break/extra values default to 0. Technicians absent from the roster
// are kept with expertise level 0, so they can only receive work in the
// expertise-waived pass.
func ComputeDayPool(shifts []models.ShiftException, roster []models.Technician) []models.DayTechnician {
	byMatricule := make(map[string]models.Technician, len(roster))
	for _, t := range roster {
		byMatricule[t.Matricule] = t
	}

	pool := make([]models.DayTechnician, 0, len(shifts))
	for _, s := range shifts {
		if !s.Working || s.Transferred {
			continue
		}
		breakMin := 0.0
		if s.BreakMinutes != nil {
			breakMin = *s.BreakMinutes
		}
		extraMin := 0.0
		if s.ExtraMinutes != nil {
			extraMin = *s.ExtraMinutes
		}

		dt := models.DayTechnician{
			Matricule:        s.Matricule,
			AvailableMinutes: StandardWorkdayMinutes + LunchBreakMinutes - breakMin + extraMin,
		}
		if t, ok := byMatricule[s.Matricule]; ok {
			dt.Name = t.Name
			dt.ExpertiseLevel = t.ExpertiseLevel
		} else {
			dt.Name = "Unknown"
		}
		pool = append(pool, dt)
	}
	return pool
}
