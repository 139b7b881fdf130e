package repository

import (
	"precinct-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// RequestRepository stores one request kind. T is the pointer type, e.g.
// *model.LeaveRequest.
type RequestRepository[T model.Request] interface {
	Create(item T) error
	GetByID(id uint) (T, error)
	ListByUser(userID uint) ([]T, error)
	List(status string) ([]T, error)
	// DeletePending removes a request that is still pending. It reports false
	// when the request was answered in the meantime.
	DeletePending(id uint) (bool, error)
	// Respond moves a pending request to decision. It reports false when the
	// request was no longer pending.
	Respond(id uint, decision string, approverID uint, note string, at time.Time) (bool, error)
	// Complete moves an accepted request to completed.
	Complete(id uint, at time.Time) (bool, error)
	ListAcceptedEndingBefore(date string) ([]T, error)
	ListAcceptedOn(date string) ([]T, error)
	CountByUserAndStatus(userID uint, status string) (int64, error)
}

type requestRepository[T model.Request] struct {
	db      *gorm.DB
	newItem func() T
}

func NewRequestRepository[T model.Request](db *gorm.DB, newItem func() T) RequestRepository[T] {
	return &requestRepository[T]{db: db, newItem: newItem}
}

func NewLeaveRepository(db *gorm.DB) RequestRepository[*model.LeaveRequest] {
	return NewRequestRepository(db, func() *model.LeaveRequest { return &model.LeaveRequest{} })
}

func NewOvertimeRepository(db *gorm.DB) RequestRepository[*model.OvertimeRequest] {
	return NewRequestRepository(db, func() *model.OvertimeRequest { return &model.OvertimeRequest{} })
}

func NewTrainingRepository(db *gorm.DB) RequestRepository[*model.TrainingRequest] {
	return NewRequestRepository(db, func() *model.TrainingRequest { return &model.TrainingRequest{} })
}

func NewCourtRepository(db *gorm.DB) RequestRepository[*model.CourtRequest] {
	return NewRequestRepository(db, func() *model.CourtRequest { return &model.CourtRequest{} })
}

func (r *requestRepository[T]) Create(item T) error {
	return r.db.Create(item).Error
}

func (r *requestRepository[T]) GetByID(id uint) (T, error) {
	item := r.newItem()
	err := r.db.Preload("User").First(item, id).Error
	return item, err
}

func (r *requestRepository[T]) ListByUser(userID uint) ([]T, error) {
	var list []T
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *requestRepository[T]) List(status string) ([]T, error) {
	var list []T
	query := r.db.Preload("User").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *requestRepository[T]) DeletePending(id uint) (bool, error) {
	res := r.db.Where("id = ? AND status = ?", id, model.RequestPending).Delete(r.newItem())
	return res.RowsAffected == 1, res.Error
}

func (r *requestRepository[T]) Respond(id uint, decision string, approverID uint, note string, at time.Time) (bool, error) {
	// The status guard in WHERE makes the transition happen at most once
	res := r.db.Model(r.newItem()).
		Where("id = ? AND status = ?", id, model.RequestPending).
		Updates(map[string]interface{}{
			"status":        decision,
			"approved_by":   approverID,
			"responded_at":  at,
			"response_note": note,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *requestRepository[T]) Complete(id uint, at time.Time) (bool, error) {
	res := r.db.Model(r.newItem()).
		Where("id = ? AND status = ?", id, model.RequestAccepted).
		Updates(map[string]interface{}{
			"status":       model.RequestCompleted,
			"completed_at": at,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *requestRepository[T]) ListAcceptedEndingBefore(date string) ([]T, error) {
	var list []T
	column := r.newItem().EndColumn()
	err := r.db.Preload("User").
		Where("status = ? AND "+column+" < ?", model.RequestAccepted, date).
		Find(&list).Error
	return list, err
}

// ListAcceptedOn returns accepted requests whose span starts on date.
func (r *requestRepository[T]) ListAcceptedOn(date string) ([]T, error) {
	var list []T
	column := r.newItem().StartColumn()
	err := r.db.Preload("User").
		Where("status = ? AND "+column+" = ?", model.RequestAccepted, date).
		Find(&list).Error
	return list, err
}

func (r *requestRepository[T]) CountByUserAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(r.newItem()).Where("user_id = ? AND status = ?", userID, status).Count(&count).Error
	return count, err
}
