package repository

import (
	"precinct-backend/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetAdminStats(date string) (map[string]interface{}, error)
	GetRosterBreakdown(date string) (map[string]int64, error)
	GetPendingCounts() (map[string]int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) GetAdminStats(date string) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	// 1. Active officers
	var totalOfficers int64
	if err := r.db.Model(&model.User{}).Where("is_active = ? AND role = ?", true, model.RoleEmployee).Count(&totalOfficers).Error; err != nil {
		return nil, err
	}
	stats["total_officers"] = totalOfficers

	// 2. Roster for the day
	roster, err := r.GetRosterBreakdown(date)
	if err != nil {
		return nil, err
	}
	stats["today"] = roster

	// 3. Requests waiting for a decision
	pending, err := r.GetPendingCounts()
	if err != nil {
		return nil, err
	}
	stats["pending_requests"] = pending

	return stats, nil
}

// GetRosterBreakdown counts schedule rows on date by status; rows with a
// clock-in time count as ON_DUTY.
func (r *dashboardRepository) GetRosterBreakdown(date string) (map[string]int64, error) {
	var rows []struct {
		Code  string
		Count int64
	}
	err := r.db.Table("schedules").
		Joins("JOIN users ON users.id = schedules.user_id").
		Where("schedules.date = ? AND schedules.deleted_at IS NULL AND users.is_active = ?", date, true).
		Select("CASE WHEN schedules.time_in <> '' THEN 'ON_DUTY' ELSE schedules.status END AS code, count(*) AS count").
		Group("code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := map[string]int64{
		"ON_DUTY":            0,
		model.StatusOff:      0,
		model.StatusLeave:    0,
		model.StatusSick:     0,
		model.StatusTraining: 0,
		model.StatusCourt:    0,
	}
	for _, row := range rows {
		out[row.Code] = row.Count
	}
	return out, nil
}

func (r *dashboardRepository) GetPendingCounts() (map[string]int64, error) {
	tables := map[string]interface{}{
		model.KindLeave:    &model.LeaveRequest{},
		model.KindOvertime: &model.OvertimeRequest{},
		model.KindTraining: &model.TrainingRequest{},
		model.KindCourt:    &model.CourtRequest{},
	}

	out := make(map[string]int64, len(tables))
	for kind, m := range tables {
		var count int64
		if err := r.db.Model(m).Where("status = ?", model.RequestPending).Count(&count).Error; err != nil {
			return nil, err
		}
		out[kind] = count
	}
	return out, nil
}
