package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"
const TimeLayout = "15:04"

// Schedule status codes. A day carries either a clock-in time or one of these.
const (
	StatusOff      = "OFF"
	StatusLeave    = "LEAVE"
	StatusSick     = "SICK"
	StatusTraining = "TRAINING"
	StatusCourt    = "COURT"
)

type Schedule struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_schedule_user_date"`
	Date   string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_schedule_user_date;index"` // YYYY-MM-DD
	TimeIn string `json:"time_in" gorm:"size:5"`                                                  // HH:MM, empty when Status is set
	Status string `json:"status" gorm:"size:16"`
	Note   string `json:"note"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Shift is a named clock-in preset used when generating a roster.
type Shift struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	TimeIn  string `json:"time_in" gorm:"size:5;not null"`
	TimeOut string `json:"time_out" gorm:"size:5"`
}

func ValidStatus(code string) bool {
	switch code {
	case StatusOff, StatusLeave, StatusSick, StatusTraining, StatusCourt:
		return true
	}
	return false
}

// RequestDerived reports whether the status is written by an accepted request
// rather than by roster editing.
func RequestDerived(code string) bool {
	switch code {
	case StatusLeave, StatusSick, StatusTraining, StatusCourt:
		return true
	}
	return false
}

// NormalizeStatus upper-cases and trims a code. Request-derived or unknown
// codes collapse to OFF.
func NormalizeStatus(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || RequestDerived(code) || !ValidStatus(code) {
		return StatusOff
	}
	return code
}

func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil && len(s) == 5
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
