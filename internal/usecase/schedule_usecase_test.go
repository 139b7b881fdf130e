package usecase_test

import (
	"precinct-backend/internal/export"
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"precinct-backend/internal/testutil"
	"precinct-backend/internal/usecase"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScheduleUsecase(t *testing.T) (*usecase.ScheduleUsecase, *gorm.DB) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	notifier := usecase.NewNotificationUsecase(repository.NewNotificationRepository(db), users, nil)
	uc := usecase.NewScheduleUsecase(repository.NewScheduleRepository(db), repository.NewShiftRepository(db), users, notifier)
	return uc, db
}

func rowsByDate(t *testing.T, db *gorm.DB, userID uint, start, end string) map[string]model.Schedule {
	var rows []model.Schedule
	require.NoError(t, db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).Find(&rows).Error)
	out := make(map[string]model.Schedule, len(rows))
	for _, row := range rows {
		out[row.Date] = row
	}
	return out
}

func TestGenerateMonthWritesOneRowPerDay(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	b := testutil.CreateUser(t, db, "1002", "Brooks", model.RoleEmployee)

	res, err := uc.GenerateMonth(usecase.GenerateMonthInput{
		UserIDs:  []uint{a.ID, b.ID},
		Year:     2024,
		Month:    2,
		TimeIn:   "07:00",
		Weekdays: []int{1, 2, 3, 4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 29, res.Days)
	assert.Equal(t, 58, res.Written)
	assert.Equal(t, 0, res.Preserved)

	for _, user := range []*model.User{a, b} {
		rows := rowsByDate(t, db, user.ID, "2024-02-01", "2024-02-29")
		require.Len(t, rows, 29)

		off := 0
		for date, row := range rows {
			d, _ := time.Parse(model.DateLayout, date)
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				assert.Equal(t, model.StatusOff, row.Status, date)
				assert.Empty(t, row.TimeIn, date)
				off++
			} else {
				assert.Equal(t, "07:00", row.TimeIn, date)
				assert.Empty(t, row.Status, date)
			}
		}
		assert.Equal(t, 8, off)
	}
}

func TestGenerateMonthKeepsRequestDays(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	require.NoError(t, db.Create(&model.Schedule{UserID: a.ID, Date: "2024-02-05", Status: model.StatusLeave}).Error)

	res, err := uc.GenerateMonth(usecase.GenerateMonthInput{UserIDs: []uint{a.ID}, Year: 2024, Month: 2, TimeIn: "07:00"})
	require.NoError(t, err)
	assert.Equal(t, 28, res.Written)
	assert.Equal(t, 1, res.Preserved)

	rows := rowsByDate(t, db, a.ID, "2024-02-01", "2024-02-29")
	assert.Len(t, rows, 29)
	assert.Equal(t, model.StatusLeave, rows["2024-02-05"].Status)
	assert.Equal(t, "07:00", rows["2024-02-06"].TimeIn)
}

func TestGenerateMonthOverwritesPreviousRoster(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	shift := model.Shift{Name: "Night", TimeIn: "22:00", TimeOut: "06:00"}
	require.NoError(t, db.Create(&shift).Error)

	_, err := uc.GenerateMonth(usecase.GenerateMonthInput{UserIDs: []uint{a.ID}, Year: 2024, Month: 4, TimeIn: "07:00"})
	require.NoError(t, err)
	_, err = uc.GenerateMonth(usecase.GenerateMonthInput{UserIDs: []uint{a.ID}, Year: 2024, Month: 4, ShiftID: shift.ID})
	require.NoError(t, err)

	var count int64
	db.Model(&model.Schedule{}).Where("user_id = ?", a.ID).Count(&count)
	assert.EqualValues(t, 30, count)

	rows := rowsByDate(t, db, a.ID, "2024-04-01", "2024-04-30")
	assert.Equal(t, "22:00", rows["2024-04-15"].TimeIn)
}

func TestGenerateMonthValidation(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)

	tests := []struct {
		name string
		in   usecase.GenerateMonthInput
	}{
		{"bad month", usecase.GenerateMonthInput{UserIDs: []uint{a.ID}, Year: 2024, Month: 13, TimeIn: "07:00"}},
		{"no users", usecase.GenerateMonthInput{Year: 2024, Month: 1, TimeIn: "07:00"}},
		{"no time", usecase.GenerateMonthInput{UserIDs: []uint{a.ID}, Year: 2024, Month: 1}},
		{"bad weekday", usecase.GenerateMonthInput{UserIDs: []uint{a.ID}, Year: 2024, Month: 1, TimeIn: "07:00", Weekdays: []int{7}}},
		{"unknown user", usecase.GenerateMonthInput{UserIDs: []uint{a.ID, 999}, Year: 2024, Month: 1, TimeIn: "07:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.GenerateMonth(tt.in)
			assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		})
	}
}

func TestCopyWeekNormalizesStatuses(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	testutil.CreateUser(t, db, "1002", "Brooks", model.RoleEmployee)

	// Source week 2024-03-04 .. 2024-03-10, written raw to bypass validation
	source := []model.Schedule{
		{UserID: a.ID, Date: "2024-03-04", TimeIn: "08:00", Note: "front desk"},
		{UserID: a.ID, Date: "2024-03-05", Status: "sick"},
		{UserID: a.ID, Date: "2024-03-06", Status: " off "},
		{UserID: a.ID, Date: "2024-03-07", Status: "VACATION"},
		{UserID: a.ID, Date: "2024-03-09", TimeIn: "16:00"},
	}
	require.NoError(t, db.Create(&source).Error)

	// Target week already has a court day and a stale shift
	require.NoError(t, db.Create(&model.Schedule{UserID: a.ID, Date: "2024-03-13", Status: model.StatusCourt}).Error)
	require.NoError(t, db.Create(&model.Schedule{UserID: a.ID, Date: "2024-03-12", TimeIn: "20:00"}).Error)

	res, err := uc.CopyWeek(usecase.CopyWeekInput{SourceDate: "2024-03-06", TargetDate: "2024-03-14"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", res.SourceWeek)
	assert.Equal(t, "2024-03-11", res.TargetWeek)
	assert.Equal(t, 1, res.Users)
	assert.Equal(t, 6, res.Written)
	assert.Equal(t, 1, res.Preserved)

	rows := rowsByDate(t, db, a.ID, "2024-03-11", "2024-03-17")
	require.Len(t, rows, 7)

	assert.Equal(t, "08:00", rows["2024-03-11"].TimeIn)
	assert.Equal(t, "front desk", rows["2024-03-11"].Note)
	assert.Equal(t, model.StatusOff, rows["2024-03-12"].Status)
	assert.Empty(t, rows["2024-03-12"].TimeIn)
	assert.Equal(t, model.StatusCourt, rows["2024-03-13"].Status)
	assert.Equal(t, model.StatusOff, rows["2024-03-14"].Status)
	assert.Equal(t, model.StatusOff, rows["2024-03-15"].Status)
	assert.Equal(t, "16:00", rows["2024-03-16"].TimeIn)
	assert.Equal(t, model.StatusOff, rows["2024-03-17"].Status)
}

func TestCopyWeekExplicitUserWithoutSourceRows(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)

	res, err := uc.CopyWeek(usecase.CopyWeekInput{SourceDate: "2024-03-04", TargetDate: "2024-03-11", UserIDs: []uint{a.ID}})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Written)

	rows := rowsByDate(t, db, a.ID, "2024-03-11", "2024-03-17")
	require.Len(t, rows, 7)
	for _, row := range rows {
		assert.Equal(t, model.StatusOff, row.Status)
	}
}

func TestCopyWeekRejectsSameWeekAndEmptySource(t *testing.T) {
	uc, _ := newScheduleUsecase(t)

	_, err := uc.CopyWeek(usecase.CopyWeekInput{SourceDate: "2024-03-04", TargetDate: "2024-03-10"})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = uc.CopyWeek(usecase.CopyWeekInput{SourceDate: "2024-03-04", TargetDate: "2024-03-11"})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = uc.CopyWeek(usecase.CopyWeekInput{SourceDate: "03/04/2024", TargetDate: "2024-03-11"})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-03-04", "2024-03-04"},
		{"2024-03-07", "2024-03-04"},
		{"2024-03-10", "2024-03-04"},
		{"2024-01-01", "2024-01-01"},
		{"2023-12-31", "2023-12-25"},
	}
	for _, tt := range tests {
		d, _ := time.Parse(model.DateLayout, tt.in)
		assert.Equal(t, tt.want, usecase.WeekStart(d).Format(model.DateLayout), tt.in)
	}
}

func TestSaveGrid(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	require.NoError(t, db.Create(&model.Schedule{UserID: a.ID, Date: "2024-05-03", TimeIn: "07:00"}).Error)

	res, err := uc.SaveGrid([]usecase.Cell{
		{UserID: a.ID, Date: "2024-05-01", TimeIn: "07:00"},
		{UserID: a.ID, Date: "2024-05-02", Status: "off"},
		{UserID: a.ID, Date: "2024-05-03"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Saved)
	assert.Equal(t, 1, res.Cleared)

	rows := rowsByDate(t, db, a.ID, "2024-05-01", "2024-05-31")
	assert.Len(t, rows, 2)
	assert.Equal(t, model.StatusOff, rows["2024-05-02"].Status)

	// A cleared day can be filled again
	_, err = uc.SaveCell(usecase.Cell{UserID: a.ID, Date: "2024-05-03", TimeIn: "09:00"})
	require.NoError(t, err)
	rows = rowsByDate(t, db, a.ID, "2024-05-01", "2024-05-31")
	assert.Equal(t, "09:00", rows["2024-05-03"].TimeIn)
}

func TestSaveGridRejectsBadCells(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)

	cells := [][]usecase.Cell{
		{{UserID: a.ID, Date: "2024-05-01", TimeIn: "07:00", Status: "OFF"}},
		{{UserID: a.ID, Date: "2024-05-01", TimeIn: "7am"}},
		{{UserID: a.ID, Date: "2024-05-01", Status: "VACATION"}},
		{{UserID: a.ID, Date: "2024/05/01", Status: "OFF"}},
	}
	for _, c := range cells {
		_, err := uc.SaveGrid(c)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	}

	var count int64
	db.Model(&model.Schedule{}).Count(&count)
	assert.Zero(t, count)
}

func TestApplyRequestStatus(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	require.NoError(t, db.Create(&model.Schedule{UserID: a.ID, Date: "2024-06-03", TimeIn: "07:00"}).Error)

	n, err := uc.ApplyRequestStatus(a.ID, "2024-06-03", "2024-06-05", model.StatusTraining, "training request #1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows := rowsByDate(t, db, a.ID, "2024-06-01", "2024-06-30")
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, model.StatusTraining, row.Status)
		assert.Empty(t, row.TimeIn)
	}

	_, err = uc.ApplyRequestStatus(a.ID, "2024-06-03", "2024-06-05", model.StatusOff, "")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestImportSkipsBadLines(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	require.NoError(t, db.Create(&model.Schedule{UserID: a.ID, Date: "2024-03-06", TimeIn: "07:00"}).Error)

	res, err := uc.Import([]export.Entry{
		{Line: 2, BadgeNumber: "1001", Date: "2024-03-04", Value: "07:00"},
		{Line: 3, BadgeNumber: "1001", Date: "2024-03-05", Value: "off"},
		{Line: 4, BadgeNumber: "9999", Date: "2024-03-05", Value: "07:00"},
		{Line: 5, BadgeNumber: "1001", Date: "2024-03-06", Value: ""},
		{Line: 6, BadgeNumber: "1001", Date: "2024-03-07", Value: "holiday"},
		{Line: 7, BadgeNumber: "1001", Value: "07:00", Err: `date "March 8" must be YYYY-MM-DD`},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Saved)
	assert.Equal(t, 1, res.Cleared)
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], "row 4")
	assert.Contains(t, res.Errors[1], "row 6")
	assert.Contains(t, res.Errors[2], "row 7")

	rows := rowsByDate(t, db, a.ID, "2024-03-01", "2024-03-31")
	assert.Len(t, rows, 2)
	assert.Equal(t, model.StatusOff, rows["2024-03-05"].Status)
}

func TestGridCoversActiveOfficers(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	testutil.CreateUser(t, db, "1002", "Brooks", model.RoleEmployee)
	require.NoError(t, db.Create(&model.Schedule{UserID: a.ID, Date: "2024-03-05", TimeIn: "07:00"}).Error)

	g, err := uc.Grid("2024-03-04", "2024-03-10", nil)
	require.NoError(t, err)
	assert.Len(t, g.Dates, 7)
	require.Len(t, g.Rows, 2)
	assert.Equal(t, "Alvarez", g.Rows[0].Name)
	assert.Equal(t, "07:00", g.Rows[0].Cells[1])

	_, err = uc.Grid("2024-01-01", "2024-12-31", nil)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestSaveGridRejectsUnknownOfficer(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)

	_, err := uc.SaveGrid([]usecase.Cell{
		{UserID: a.ID, Date: "2024-03-04", TimeIn: "07:00"},
		{UserID: 9999, Date: "2024-03-04", TimeIn: "07:00"},
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	var count int64
	db.Model(&model.Schedule{}).Count(&count)
	assert.EqualValues(t, 0, count, "nothing is written when a cell names an unknown officer")
}

func TestCopyWeekSkipsRemovedOfficers(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	kept := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	gone := testutil.CreateUser(t, db, "1002", "Brooks", model.RoleEmployee)
	retired := testutil.CreateUser(t, db, "1003", "Chandra", model.RoleEmployee)

	_, err := uc.SaveGrid([]usecase.Cell{
		{UserID: kept.ID, Date: "2024-03-04", TimeIn: "07:00"},
		{UserID: gone.ID, Date: "2024-03-04", TimeIn: "07:00"},
		{UserID: retired.ID, Date: "2024-03-04", TimeIn: "07:00"},
	})
	require.NoError(t, err)
	require.NoError(t, db.Delete(&model.User{}, gone.ID).Error)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	res, err := uc.CopyWeek(usecase.CopyWeekInput{SourceDate: "2024-03-04", TargetDate: "2024-03-11"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Users)
	assert.Len(t, rowsByDate(t, db, kept.ID, "2024-03-11", "2024-03-17"), 7)
	assert.Empty(t, rowsByDate(t, db, gone.ID, "2024-03-11", "2024-03-17"))
	assert.Empty(t, rowsByDate(t, db, retired.ID, "2024-03-11", "2024-03-17"))
}

func TestRangeLimitIsInclusive(t *testing.T) {
	uc, _ := newScheduleUsecase(t)

	// 2024-01-01 .. 2024-04-01 is 92 days counting both ends
	_, err := uc.Range("2024-01-01", "2024-04-01", nil)
	assert.NoError(t, err)
	_, err = uc.Range("2024-01-01", "2024-04-02", nil)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}
