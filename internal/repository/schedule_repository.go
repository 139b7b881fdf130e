package repository

import (
	"precinct-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository interface {
	GetByID(id uint) (*model.Schedule, error)
	GetByUserAndDate(userID uint, date string) (*model.Schedule, error)
	GetRange(start, end string, userIDs []uint) ([]model.Schedule, error)
	GetByDate(date string) ([]model.Schedule, error)
	Update(schedule *model.Schedule) error
	Delete(id uint) error
	DeleteCell(userID uint, date string) error
	DeleteByDate(date string) (int64, error)
	Upsert(schedule *model.Schedule) error
	UpsertBatch(schedules []model.Schedule) error
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db}
}

func (r *scheduleRepository) GetByID(id uint) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.Preload("User").First(&schedule, id).Error
	return &schedule, err
}

func (r *scheduleRepository) GetByUserAndDate(userID uint, date string) (*model.Schedule, error) {
	var schedule model.Schedule
	// Find + Limit(1) keeps gorm from logging "record not found"
	err := r.db.Where("user_id = ? AND date = ?", userID, date).Limit(1).Find(&schedule).Error
	if err != nil {
		return nil, err
	}
	if schedule.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &schedule, nil
}

// GetRange returns rows between start and end inclusive. Dates are stored as
// YYYY-MM-DD so string comparison orders them correctly.
func (r *scheduleRepository) GetRange(start, end string, userIDs []uint) ([]model.Schedule, error) {
	var schedules []model.Schedule
	query := r.db.Preload("User").
		Where("date >= ? AND date <= ?", start, end)

	if len(userIDs) > 0 {
		query = query.Where("user_id IN ?", userIDs)
	}

	err := query.Order("date asc").Order("user_id asc").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepository) GetByDate(date string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = schedules.user_id").
		Where("schedules.date = ? AND users.is_active = ? AND users.deleted_at IS NULL", date, true).
		Order("schedules.time_in asc").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepository) Update(schedule *model.Schedule) error {
	return r.db.Save(schedule).Error
}

func (r *scheduleRepository) Delete(id uint) error {
	return r.db.Delete(&model.Schedule{}, id).Error
}

func (r *scheduleRepository) DeleteCell(userID uint, date string) error {
	return r.db.Where("user_id = ? AND date = ?", userID, date).Delete(&model.Schedule{}).Error
}

func (r *scheduleRepository) DeleteByDate(date string) (int64, error) {
	res := r.db.Where("date = ?", date).Delete(&model.Schedule{})
	return res.RowsAffected, res.Error
}

func (r *scheduleRepository) Upsert(schedule *model.Schedule) error {
	// Look for an existing row for this officer and day, soft deleted ones included
	var existing model.Schedule
	err := r.db.Unscoped().Where("user_id = ? AND date = ?", schedule.UserID, schedule.Date).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}

	if existing.ID != 0 {
		schedule.ID = existing.ID
		schedule.CreatedAt = existing.CreatedAt

		// Map so that empty strings and deleted_at = NULL are written
		return r.db.Unscoped().Model(schedule).Updates(map[string]interface{}{
			"time_in":    schedule.TimeIn,
			"status":     schedule.Status,
			"note":       schedule.Note,
			"deleted_at": nil,
		}).Error
	}

	return r.db.Create(schedule).Error
}

func (r *scheduleRepository) UpsertBatch(schedules []model.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	// Unique constraint is (user_id, date); deleted_at is included to restore soft deleted rows
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"time_in", "status", "note", "updated_at", "deleted_at"}),
	}).CreateInBatches(&schedules, 200).Error
}
