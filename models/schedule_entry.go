package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Schedule entry statuses
const (
	StatusPlanned            = "Planned"
	StatusInProgress         = "In Progress"
	StatusPartiallyCompleted = "Partially Completed"
	StatusCompleted          = "Completed"
	StatusBlocked            = "Blocked"
)

// WorkSession is one contiguous start/stop interval of active work on an
// order. Stop is nil while the session is open.
type WorkSession struct {
	Start time.Time  `json:"start"`
	Stop  *time.Time `json:"stop"`
}

// WorkSessionList stores the ordered session history as a JSON text column
type WorkSessionList []WorkSession

// Value implements driver.Valuer so GORM can persist the session list
func (l WorkSessionList) Value() (driver.Value, error) {
	if l == nil {
		l = WorkSessionList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner so GORM can load the session list
func (l *WorkSessionList) Scan(value interface{}) error {
	if value == nil {
		*l = WorkSessionList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into WorkSessionList", value)
	}
	if len(data) == 0 {
		*l = WorkSessionList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// ScheduleEntry is one order-to-technician assignment with full lifecycle
// tracking across multiple work sessions
type ScheduleEntry struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	RowID  string `gorm:"uniqueIndex;not null" json:"row_id"`
	Day    string `json:"day"` // schedule date, YYYY-MM-DD

	// Originating order fields
	OrderNumber string  `gorm:"not null" json:"order_number"`
	SAP         string  `gorm:"not null" json:"sap"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
	RoutingTime float64 `gorm:"not null" json:"routing_time"`
	ClassLabel  string  `json:"class_label"`
	ClassCode   int     `json:"class_code"`

	// Assignment
	TechnicianMatricule string `gorm:"index;not null" json:"technician_matricule"`
	TechnicianName      string `json:"technician_name"`

	// Lifecycle
	Status         string `gorm:"not null;default:'Planned'" json:"status"`
	SequenceNumber int    `json:"sequence_number"`
	Remark         string `json:"remark"`

	// Session tracking
	FirstStartTime       *time.Time      `json:"first_start_time"`
	EndTime              *time.Time      `json:"end_time"`
	TotalTimeSpent       float64         `json:"total_time_spent"`
	RemainingRoutingTime float64         `json:"remaining_routing_time"`
	WorkSessions         WorkSessionList `gorm:"type:text" json:"work_sessions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ScheduleEntry model
func (ScheduleEntry) TableName() string {
	return "schedule_entries"
}

// OpenSession returns the index of the most recent open work session, or -1
func (e *ScheduleEntry) OpenSession() int {
	if n := len(e.WorkSessions); n > 0 && e.WorkSessions[n-1].Stop == nil {
		return n - 1
	}
	return -1
}
