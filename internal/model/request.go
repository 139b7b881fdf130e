package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestDeclined  = "declined"
	RequestCompleted = "completed"
)

const (
	KindLeave    = "leave"
	KindOvertime = "overtime"
	KindTraining = "training"
	KindCourt    = "court"
)

var RequestKinds = []string{KindLeave, KindOvertime, KindTraining, KindCourt}

// Approval is embedded in every request table, so the columns are shared.
type Approval struct {
	Status       string     `json:"status" gorm:"size:16;not null;default:pending;index"`
	ApprovedBy   *uint      `json:"approved_by"`
	RespondedAt  *time.Time `json:"responded_at"`
	ResponseNote string     `json:"response_note"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// Request is implemented by the pointer types of every workflow entity.
type Request interface {
	Kind() string
	GetID() uint
	OwnerID() uint
	GetApproval() *Approval
	// Span returns the first and last roster day the request covers.
	Span() (start, end string)
	// RosterStatus is the schedule code written on acceptance, empty if none.
	RosterStatus() string
	// StartColumn and EndColumn name the columns holding the span.
	StartColumn() string
	EndColumn() string
	Summary() string
	SubmittedAt() time.Time
	Attachment() string
	SetAttachment(path string)
	Requester() *User
}

type LeaveRequest struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"not null;index"`
	LeaveType      string `json:"leave_type" gorm:"size:20;not null"` // vacation, sick, personal, bereavement
	StartDate      string `json:"start_date" gorm:"size:10;not null"`
	EndDate        string `json:"end_date" gorm:"size:10;not null"`
	Reason         string `json:"reason" gorm:"type:text"`
	AttachmentPath string `json:"attachment_path"`
	Approval       `gorm:"embedded"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type OvertimeRequest struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"not null;index"`
	Date      string  `json:"date" gorm:"size:10;not null"`
	StartTime string  `json:"start_time" gorm:"size:5;not null"`
	EndTime   string  `json:"end_time" gorm:"size:5;not null"`
	Hours     float64 `json:"hours"`
	Reason    string  `json:"reason" gorm:"type:text"`
	Approval  `gorm:"embedded"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type TrainingRequest struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"not null;index"`
	CourseName     string `json:"course_name" gorm:"not null"`
	Provider       string `json:"provider"`
	Location       string `json:"location"`
	StartDate      string `json:"start_date" gorm:"size:10;not null"`
	EndDate        string `json:"end_date" gorm:"size:10;not null"`
	Reason         string `json:"reason" gorm:"type:text"`
	AttachmentPath string `json:"attachment_path"`
	Approval       `gorm:"embedded"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type CourtRequest struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"not null;index"`
	CaseNumber     string `json:"case_number" gorm:"not null"`
	CourtName      string `json:"court_name"`
	AppearanceDate string `json:"appearance_date" gorm:"size:10;not null"`
	AppearanceTime string `json:"appearance_time" gorm:"size:5"`
	Notes          string `json:"notes" gorm:"type:text"`
	AttachmentPath string `json:"attachment_path"` // subpoena
	Approval       `gorm:"embedded"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (r *LeaveRequest) Kind() string              { return KindLeave }
func (r *LeaveRequest) GetID() uint               { return r.ID }
func (r *LeaveRequest) OwnerID() uint             { return r.UserID }
func (r *LeaveRequest) GetApproval() *Approval    { return &r.Approval }
func (r *LeaveRequest) Span() (string, string)    { return r.StartDate, r.EndDate }
func (r *LeaveRequest) StartColumn() string       { return "start_date" }
func (r *LeaveRequest) EndColumn() string         { return "end_date" }
func (r *LeaveRequest) Attachment() string        { return r.AttachmentPath }
func (r *LeaveRequest) SetAttachment(path string) { r.AttachmentPath = path }
func (r *LeaveRequest) Requester() *User          { return r.User }
func (r *LeaveRequest) SubmittedAt() time.Time    { return r.CreatedAt }

func (r *LeaveRequest) RosterStatus() string {
	if r.LeaveType == "sick" {
		return StatusSick
	}
	return StatusLeave
}

func (r *LeaveRequest) Summary() string {
	return fmt.Sprintf("%s leave %s to %s", r.LeaveType, r.StartDate, r.EndDate)
}

func (r *OvertimeRequest) Kind() string              { return KindOvertime }
func (r *OvertimeRequest) GetID() uint               { return r.ID }
func (r *OvertimeRequest) OwnerID() uint             { return r.UserID }
func (r *OvertimeRequest) GetApproval() *Approval    { return &r.Approval }
func (r *OvertimeRequest) Span() (string, string)    { return r.Date, r.Date }
func (r *OvertimeRequest) RosterStatus() string      { return "" }
func (r *OvertimeRequest) StartColumn() string       { return "date" }
func (r *OvertimeRequest) EndColumn() string         { return "date" }
func (r *OvertimeRequest) Attachment() string        { return "" }
func (r *OvertimeRequest) SetAttachment(path string) {}
func (r *OvertimeRequest) Requester() *User          { return r.User }
func (r *OvertimeRequest) SubmittedAt() time.Time    { return r.CreatedAt }

func (r *OvertimeRequest) Summary() string {
	return fmt.Sprintf("overtime %s %s-%s (%.1fh)", r.Date, r.StartTime, r.EndTime, r.Hours)
}

func (r *TrainingRequest) Kind() string              { return KindTraining }
func (r *TrainingRequest) GetID() uint               { return r.ID }
func (r *TrainingRequest) OwnerID() uint             { return r.UserID }
func (r *TrainingRequest) GetApproval() *Approval    { return &r.Approval }
func (r *TrainingRequest) Span() (string, string)    { return r.StartDate, r.EndDate }
func (r *TrainingRequest) RosterStatus() string      { return StatusTraining }
func (r *TrainingRequest) StartColumn() string       { return "start_date" }
func (r *TrainingRequest) EndColumn() string         { return "end_date" }
func (r *TrainingRequest) Attachment() string        { return r.AttachmentPath }
func (r *TrainingRequest) SetAttachment(path string) { r.AttachmentPath = path }
func (r *TrainingRequest) Requester() *User          { return r.User }
func (r *TrainingRequest) SubmittedAt() time.Time    { return r.CreatedAt }

func (r *TrainingRequest) Summary() string {
	return fmt.Sprintf("training %q %s to %s", r.CourseName, r.StartDate, r.EndDate)
}

func (r *CourtRequest) Kind() string              { return KindCourt }
func (r *CourtRequest) GetID() uint               { return r.ID }
func (r *CourtRequest) OwnerID() uint             { return r.UserID }
func (r *CourtRequest) GetApproval() *Approval    { return &r.Approval }
func (r *CourtRequest) Span() (string, string)    { return r.AppearanceDate, r.AppearanceDate }
func (r *CourtRequest) RosterStatus() string      { return StatusCourt }
func (r *CourtRequest) StartColumn() string       { return "appearance_date" }
func (r *CourtRequest) EndColumn() string         { return "appearance_date" }
func (r *CourtRequest) Attachment() string        { return r.AttachmentPath }
func (r *CourtRequest) SetAttachment(path string) { r.AttachmentPath = path }
func (r *CourtRequest) Requester() *User          { return r.User }
func (r *CourtRequest) SubmittedAt() time.Time    { return r.CreatedAt }

func (r *CourtRequest) Summary() string {
	return fmt.Sprintf("court appearance %s (case %s)", r.AppearanceDate, r.CaseNumber)
}

func ValidKind(kind string) bool {
	for _, k := range RequestKinds {
		if k == kind {
			return true
		}
	}
	return false
}
