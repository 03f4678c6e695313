package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-ops/shopfloor-scheduler-api/models"
)

// ScheduleRepository is the persistence boundary for the scheduling state:
// the schedule table, the unscheduled set and the day's technician pool.
// Every mutation replaces the whole table, matching the single-editor
// copy-on-write model the engine and mutators assume.
type ScheduleRepository interface {
	ReplaceSchedule(entries []models.ScheduleEntry) error
	LoadSchedule() ([]models.ScheduleEntry, error)
	ReplaceUnscheduled(orders []models.UnscheduledOrder) error
	LoadUnscheduled() ([]models.UnscheduledOrder, error)
	ReplaceDayPool(pool []models.DayTechnician) error
	LoadDayPool() ([]models.DayTechnician, error)
	Clear() error
}

// GormScheduleRepository persists the scheduling state through GORM
type GormScheduleRepository struct {
	db *gorm.DB
}

var scheduleRepoInstance ScheduleRepository

// InitScheduleRepository initializes the repository against the given database
func InitScheduleRepository(db *gorm.DB) ScheduleRepository {
	scheduleRepoInstance = &GormScheduleRepository{db: db}
	return scheduleRepoInstance
}

// GetScheduleRepository returns the initialized repository instance
func GetScheduleRepository() ScheduleRepository {
	return scheduleRepoInstance
}

// SetScheduleRepository sets the repository instance (primarily for testing)
func SetScheduleRepository(r ScheduleRepository) {
	scheduleRepoInstance = r
}

// ReplaceSchedule overwrites the persisted schedule with the given entries
func (r *GormScheduleRepository) ReplaceSchedule(entries []models.ScheduleEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear schedule: %w", err)
		}
		for i := range entries {
			entries[i].ID = 0
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// LoadSchedule returns all schedule entries in sequence order
func (r *GormScheduleRepository) LoadSchedule() ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if err := r.db.Order("sequence_number asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceUnscheduled overwrites the persisted unscheduled set
func (r *GormScheduleRepository) ReplaceUnscheduled(orders []models.UnscheduledOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UnscheduledOrder{}).Error; err != nil {
			return fmt.Errorf("failed to clear unscheduled orders: %w", err)
		}
		for i := range orders {
			orders[i].ID = 0
		}
		if len(orders) == 0 {
			return nil
		}
		return tx.Create(&orders).Error
	})
}

// LoadUnscheduled returns the persisted unscheduled orders
func (r *GormScheduleRepository) LoadUnscheduled() ([]models.UnscheduledOrder, error) {
	var orders []models.UnscheduledOrder
	if err := r.db.Order("id asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ReplaceDayPool overwrites the persisted day pool
func (r *GormScheduleRepository) ReplaceDayPool(pool []models.DayTechnician) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.DayTechnician{}).Error; err != nil {
			return fmt.Errorf("failed to clear day pool: %w", err)
		}
		for i := range pool {
			pool[i].ID = 0
		}
		if len(pool) == 0 {
			return nil
		}
		return tx.Create(&pool).Error
	})
}

// LoadDayPool returns the persisted day pool
func (r *GormScheduleRepository) LoadDayPool() ([]models.DayTechnician, error) {
	var pool []models.DayTechnician
	if err := r.db.Order("matricule asc").Find(&pool).Error; err != nil {
		return nil, err
	}
	return pool, nil
}

// Clear deletes the schedule, the unscheduled set and the day pool
func (r *GormScheduleRepository) Clear() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UnscheduledOrder{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.DayTechnician{}).Error
	})
}
