package repository

import (
	"precinct-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByBadge(badge string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	GetAll(search string, role string) ([]model.User, error)
	GetActive() ([]model.User, error)
	GetActiveAdmins() ([]model.User, error)
	GetByIDs(ids []uint) ([]model.User, error)
	CountActive() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) FindByBadge(badge string) (*model.User, error) {
	var user model.User
	err := r.db.Where("badge_number = ?", badge).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// UpdateFields writes zero values too (is_active=false, empty phone, ...).
func (r *userRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}

func (r *userRepository) GetAll(search string, role string) ([]model.User, error) {
	var users []model.User
	query := r.db.Order("role asc").Order("name asc")

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR badge_number LIKE ?", searchPattern, searchPattern)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	err := query.Find(&users).Error
	return users, err
}

func (r *userRepository) GetActive() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("is_active = ?", true).Order("name asc").Find(&users).Error
	return users, err
}

func (r *userRepository) GetActiveAdmins() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("is_active = ? AND role = ?", true, model.RoleAdmin).Find(&users).Error
	return users, err
}

func (r *userRepository) GetByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Order("name asc").Find(&users).Error
	return users, err
}

func (r *userRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_active = ? AND role = ?", true, model.RoleEmployee).Count(&count).Error
	return count, err
}
