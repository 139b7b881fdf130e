package jobs_test

import (
	"precinct-backend/internal/jobs"
	"precinct-backend/internal/model"
	"precinct-backend/internal/notify"
	"precinct-backend/internal/repository"
	"precinct-backend/internal/testutil"
	"precinct-backend/internal/usecase"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerJobs(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	notifier := usecase.NewNotificationUsecase(repository.NewNotificationRepository(db), users, nil)
	schedules := usecase.NewScheduleUsecase(repository.NewScheduleRepository(db), repository.NewShiftRepository(db), users, notifier)
	alerter := notify.NewAlerter("", "")

	leave := usecase.NewRequestUsecase(repository.NewLeaveRepository(db), users, schedules, notifier, alerter)
	court := usecase.NewRequestUsecase(repository.NewCourtRepository(db), users, schedules, notifier, alerter)

	admin := testutil.CreateUser(t, db, "9000", "Sgt. Reyes", model.RoleAdmin)
	officer := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)

	past := &model.LeaveRequest{UserID: officer.ID, LeaveType: "vacation", StartDate: "2024-07-01", EndDate: "2024-07-03"}
	running := &model.LeaveRequest{UserID: officer.ID, LeaveType: "vacation", StartDate: "2024-07-09", EndDate: "2024-07-12"}
	pending := &model.LeaveRequest{UserID: officer.ID, LeaveType: "personal", StartDate: "2024-07-02", EndDate: "2024-07-02"}
	for _, r := range []*model.LeaveRequest{past, running, pending} {
		require.NoError(t, leave.Submit(r))
	}
	for _, r := range []*model.LeaveRequest{past, running} {
		_, err := leave.Respond(r.ID, admin.ID, "accepted", "")
		require.NoError(t, err)
	}

	hearing := &model.CourtRequest{UserID: officer.ID, CaseNumber: "CR-2024-118", CourtName: "District Court", AppearanceDate: "2024-07-11", AppearanceTime: "09:30"}
	require.NoError(t, court.Submit(hearing))
	_, err := court.Respond(hearing.ID, admin.ID, "accepted", "")
	require.NoError(t, err)

	s := jobs.NewScheduler(time.UTC, map[string]jobs.Completer{
		model.KindLeave: leave,
		model.KindCourt: court,
	}, court, notifier)
	s.Now = func() time.Time { return time.Date(2024, 7, 10, 7, 0, 0, 0, time.UTC) }

	assert.Equal(t, 1, s.CompleteExpired())
	// Running again does nothing
	assert.Equal(t, 0, s.CompleteExpired())

	got, err := leave.Get(past.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestCompleted, got.Status)
	got, err = leave.Get(running.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestAccepted, got.Status)
	got, err = leave.Get(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, got.Status)

	assert.Equal(t, 1, s.RemindCourt())

	var reminders []model.Notification
	require.NoError(t, db.Where("type = ?", model.NotifyReminder).Find(&reminders).Error)
	require.Len(t, reminders, 1)
	assert.Equal(t, officer.ID, reminders[0].UserID)
	assert.Contains(t, reminders[0].Message, "CR-2024-118")
}

func TestSchedulerStartStop(t *testing.T) {
	s := jobs.NewScheduler(nil, nil, nil, nil)
	require.NoError(t, s.Start())
	s.Stop()
	assert.Equal(t, 0, s.RemindCourt())
}
