package repository

import (
	"precinct-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	CreateMany(list []model.Notification) error
	GetByUser(userID uint, unreadOnly bool, limit int) ([]model.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id, userID uint) (bool, error)
	MarkAllRead(userID uint) (int64, error)
	Delete(id, userID uint) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) CreateMany(list []model.Notification) error {
	if len(list) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&list, 200).Error
}

func (r *notificationRepository) GetByUser(userID uint, unreadOnly bool, limit int) ([]model.Notification, error) {
	var list []model.Notification
	query := r.db.Where("user_id = ?", userID).Order("created_at desc").Order("id desc")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

// MarkRead is scoped to the owner so one officer cannot touch another's inbox.
func (r *notificationRepository) MarkRead(id, userID uint) (bool, error) {
	var n model.Notification
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&n).Error; err != nil {
		return false, err
	}
	if n.ID == 0 {
		return false, nil
	}
	if n.IsRead {
		return true, nil
	}
	err := r.db.Model(&n).Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()}).Error
	return err == nil, err
}

func (r *notificationRepository) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) Delete(id, userID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Notification{})
	return res.RowsAffected == 1, res.Error
}
