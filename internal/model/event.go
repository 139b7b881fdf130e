package model

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date" gorm:"size:10;not null;index"` // Format YYYY-MM-DD
	EndDate     string `json:"end_date" gorm:"size:10"`
	CreatedBy   uint   `json:"created_by"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

const (
	NotifyRequestCreated   = "request_created"
	NotifyRequestResponded = "request_responded"
	NotifyRequestCompleted = "request_completed"
	NotifyEvent            = "event"
	NotifySchedule         = "schedule"
	NotifyReminder         = "reminder"
)

type Notification struct {
	gorm.Model
	UserID  uint       `json:"user_id" gorm:"not null;index"`
	Type    string     `json:"type" gorm:"size:32"`
	Title   string     `json:"title" gorm:"not null"`
	Message string     `json:"message" gorm:"type:text"`
	Link    string     `json:"link"`
	IsRead  bool       `json:"is_read" gorm:"default:false;index"`
	ReadAt  *time.Time `json:"read_at"`
}
