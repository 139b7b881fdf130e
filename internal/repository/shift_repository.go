package repository

import (
	"fmt"
	"precinct-backend/internal/model"

	"gorm.io/gorm"
)

type ShiftRepository interface {
	GetAll() ([]model.Shift, error)
	Create(shift *model.Shift) error
	Update(shift *model.Shift) error
	Delete(id uint) error
	GetByID(id uint) (*model.Shift, error)
	FindOrCreate(timeIn, timeOut string) (*model.Shift, error)
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db}
}

func (r *shiftRepository) GetAll() ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.Order("time_in asc").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) Create(shift *model.Shift) error {
	return r.db.Create(shift).Error
}

func (r *shiftRepository) Update(shift *model.Shift) error {
	return r.db.Save(shift).Error
}

func (r *shiftRepository) Delete(id uint) error {
	return r.db.Delete(&model.Shift{}, id).Error
}

func (r *shiftRepository) GetByID(id uint) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.First(&shift, id).Error
	return &shift, err
}

func (r *shiftRepository) FindOrCreate(timeIn, timeOut string) (*model.Shift, error) {
	var shift model.Shift
	// Find + Limit(1) keeps gorm from logging "record not found"
	err := r.db.Where("time_in = ? AND time_out = ?", timeIn, timeOut).Limit(1).Find(&shift).Error
	if err != nil {
		return nil, err
	}
	if shift.ID != 0 {
		return &shift, nil
	}

	newShift := model.Shift{
		Name:    fmt.Sprintf("%s-%s", timeIn, timeOut),
		TimeIn:  timeIn,
		TimeOut: timeOut,
	}
	if err := r.db.Create(&newShift).Error; err != nil {
		return nil, err
	}
	return &newShift, nil
}
