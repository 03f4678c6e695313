package models

import (
	"time"

	"gorm.io/gorm"
)

// Technician represents a roster entry: a worker with a badge number and a
// static expertise level (1-4)
type Technician struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Matricule      string         `gorm:"uniqueIndex;not null" json:"matricule"`
	Name           string         `gorm:"not null" json:"name"`
	ExpertiseLevel int            `gorm:"not null;check:expertise_level >= 1 AND expertise_level <= 4" json:"expertise_level"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Technician model
func (Technician) TableName() string {
	return "technicians"
}

// DayTechnician is a technician admitted to the day's pool, carrying the
// available working minutes derived from the shift exception table. Rows are
// rebuilt on every schedule generation.
type DayTechnician struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Matricule        string  `gorm:"index;not null" json:"matricule"`
	Name             string  `gorm:"not null" json:"name"`
	ExpertiseLevel   int     `json:"expertise_level"`
	AvailableMinutes float64 `gorm:"not null" json:"available_minutes"`
}

// TableName specifies the table name for the DayTechnician model
func (DayTechnician) TableName() string {
	return "day_technicians"
}
