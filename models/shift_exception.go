package models

// ShiftException is one row of the daily shift table: whether a technician is
// in today, whether they were transferred to another line, and the break and
// overtime adjustments to apply to the standard day.
type ShiftException struct {
	Matricule    string   `json:"matricule" binding:"required"`
	Working      bool     `json:"working"`
	Transferred  bool     `json:"transferred"`
	BreakMinutes *float64 `json:"break_minutes"`
	ExtraMinutes *float64 `json:"extra_minutes"`
}
