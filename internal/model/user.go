package model

import "gorm.io/gorm"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	BadgeNumber string `json:"badge_number" gorm:"column:badge_number;unique;not null"`
	Password    string `json:"-"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Rank        string `json:"rank"` // Officer, Sergeant, Lieutenant, ...
	Unit        string `json:"unit"` // Patrol, Investigations, Traffic, ...
	Role        string `json:"role" gorm:"default:employee;not null"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	// Relations
	Schedules []Schedule `json:"schedules,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
