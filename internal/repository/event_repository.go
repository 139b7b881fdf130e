package repository

import (
	"precinct-backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository interface {
	GetAll() ([]model.Event, error)
	GetUpcoming(from string, limit int) ([]model.Event, error)
	Create(event *model.Event) error
	Delete(id uint) error
	GetByID(id uint) (*model.Event, error)
	Update(event *model.Event) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db}
}

func (r *eventRepository) GetAll() ([]model.Event, error) {
	var events []model.Event
	err := r.db.Order("start_date desc").Find(&events).Error
	return events, err
}

// GetUpcoming returns events still running on or after from, soonest first.
func (r *eventRepository) GetUpcoming(from string, limit int) ([]model.Event, error) {
	var events []model.Event
	query := r.db.Where("start_date >= ? OR end_date >= ?", from, from).Order("start_date asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

func (r *eventRepository) Create(event *model.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) Delete(id uint) error {
	return r.db.Delete(&model.Event{}, id).Error
}

func (r *eventRepository) GetByID(id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.Preload("Creator").First(&event, id).Error
	return &event, err
}

func (r *eventRepository) Update(event *model.Event) error {
	return r.db.Save(event).Error
}
