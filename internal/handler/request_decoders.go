package handler

import (
	"fmt"
	"precinct-backend/internal/model"
	"precinct-backend/internal/usecase"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Inputs carry form tags too so multipart submissions parse the same way.

type leaveInput struct {
	LeaveType string `json:"leave_type" form:"leave_type" validate:"required,oneof=vacation sick personal bereavement"`
	StartDate string `json:"start_date" form:"start_date" validate:"required"`
	EndDate   string `json:"end_date" form:"end_date" validate:"required"`
	Reason    string `json:"reason" form:"reason" validate:"max=2000"`
}

func DecodeLeave(c *fiber.Ctx, userID uint) (*model.LeaveRequest, error) {
	var in leaveInput
	if err := bind(c, &in); err != nil {
		return nil, err
	}
	return &model.LeaveRequest{
		UserID:    userID,
		LeaveType: in.LeaveType,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Reason:    strings.TrimSpace(in.Reason),
	}, nil
}

type overtimeInput struct {
	Date      string `json:"date" form:"date" validate:"required"`
	StartTime string `json:"start_time" form:"start_time" validate:"required"`
	EndTime   string `json:"end_time" form:"end_time" validate:"required"`
	Reason    string `json:"reason" form:"reason" validate:"max=2000"`
}

func DecodeOvertime(c *fiber.Ctx, userID uint) (*model.OvertimeRequest, error) {
	var in overtimeInput
	if err := bind(c, &in); err != nil {
		return nil, err
	}
	hours, err := overtimeHours(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	return &model.OvertimeRequest{
		UserID:    userID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Hours:     hours,
		Reason:    strings.TrimSpace(in.Reason),
	}, nil
}

// overtimeHours counts an end time at or before the start as the next day.
func overtimeHours(start, end string) (float64, error) {
	from, err1 := time.Parse(model.TimeLayout, start)
	to, err2 := time.Parse(model.TimeLayout, end)
	if err1 != nil || err2 != nil || !model.ValidTime(start) || !model.ValidTime(end) {
		return 0, fmt.Errorf("%w: start_time and end_time must be HH:MM", usecase.ErrInvalidInput)
	}
	if !to.After(from) {
		to = to.Add(24 * time.Hour)
	}
	return to.Sub(from).Hours(), nil
}

type trainingInput struct {
	CourseName string `json:"course_name" form:"course_name" validate:"required,max=200"`
	Provider   string `json:"provider" form:"provider" validate:"max=200"`
	Location   string `json:"location" form:"location" validate:"max=200"`
	StartDate  string `json:"start_date" form:"start_date" validate:"required"`
	EndDate    string `json:"end_date" form:"end_date" validate:"required"`
	Reason     string `json:"reason" form:"reason" validate:"max=2000"`
}

func DecodeTraining(c *fiber.Ctx, userID uint) (*model.TrainingRequest, error) {
	var in trainingInput
	if err := bind(c, &in); err != nil {
		return nil, err
	}
	return &model.TrainingRequest{
		UserID:     userID,
		CourseName: strings.TrimSpace(in.CourseName),
		Provider:   in.Provider,
		Location:   in.Location,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Reason:     strings.TrimSpace(in.Reason),
	}, nil
}

type courtInput struct {
	CaseNumber     string `json:"case_number" form:"case_number" validate:"required,max=64"`
	CourtName      string `json:"court_name" form:"court_name" validate:"max=200"`
	AppearanceDate string `json:"appearance_date" form:"appearance_date" validate:"required"`
	AppearanceTime string `json:"appearance_time" form:"appearance_time"`
	Notes          string `json:"notes" form:"notes" validate:"max=2000"`
}

func DecodeCourt(c *fiber.Ctx, userID uint) (*model.CourtRequest, error) {
	var in courtInput
	if err := bind(c, &in); err != nil {
		return nil, err
	}
	if in.AppearanceTime != "" && !model.ValidTime(in.AppearanceTime) {
		return nil, fmt.Errorf("%w: appearance_time must be HH:MM", usecase.ErrInvalidInput)
	}
	return &model.CourtRequest{
		UserID:         userID,
		CaseNumber:     strings.TrimSpace(in.CaseNumber),
		CourtName:      in.CourtName,
		AppearanceDate: in.AppearanceDate,
		AppearanceTime: in.AppearanceTime,
		Notes:          in.Notes,
	}, nil
}
