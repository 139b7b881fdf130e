package usecase

import (
	"fmt"
	"precinct-backend/internal/export"
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"strings"
	"time"
)

// maxRangeDays bounds read and export windows.
const maxRangeDays = 92

type ScheduleUsecase struct {
	repo     repository.ScheduleRepository
	shifts   repository.ShiftRepository
	users    repository.UserRepository
	notifier *NotificationUsecase
}

func NewScheduleUsecase(repo repository.ScheduleRepository, shifts repository.ShiftRepository, users repository.UserRepository, notifier *NotificationUsecase) *ScheduleUsecase {
	return &ScheduleUsecase{repo: repo, shifts: shifts, users: users, notifier: notifier}
}

// Cell is one roster entry as edited in the admin grid. A cell with neither
// TimeIn nor Status clears the day.
type Cell struct {
	UserID uint   `json:"user_id" validate:"required"`
	Date   string `json:"date" validate:"required"`
	TimeIn string `json:"time_in"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

// toSchedule validates the cell. clear is true when the cell is empty.
func (c Cell) toSchedule() (row model.Schedule, clear bool, err error) {
	if !model.ValidDate(c.Date) {
		return row, false, invalid("date %q must be YYYY-MM-DD", c.Date)
	}
	timeIn := strings.TrimSpace(c.TimeIn)
	status := strings.ToUpper(strings.TrimSpace(c.Status))

	switch {
	case timeIn == "" && status == "":
		return row, true, nil
	case timeIn != "" && status != "":
		return row, false, invalid("day %s has both a time and a status", c.Date)
	case timeIn != "" && !model.ValidTime(timeIn):
		return row, false, invalid("time_in %q must be HH:MM", timeIn)
	case status != "" && !model.ValidStatus(status):
		return row, false, invalid("unknown status %q", status)
	}

	return model.Schedule{
		UserID: c.UserID,
		Date:   c.Date,
		TimeIn: timeIn,
		Status: status,
		Note:   c.Note,
	}, false, nil
}

func (u *ScheduleUsecase) Range(start, end string, userIDs []uint) ([]model.Schedule, error) {
	if _, _, err := parseRange(start, end); err != nil {
		return nil, err
	}
	return u.repo.GetRange(start, end, userIDs)
}

// OnDate lists the roster of active officers for one day, earliest clock-in first.
func (u *ScheduleUsecase) OnDate(date string) ([]model.Schedule, error) {
	if !model.ValidDate(date) {
		return nil, invalid("date %q must be YYYY-MM-DD", date)
	}
	return u.repo.GetByDate(date)
}

func (u *ScheduleUsecase) Get(id uint) (*model.Schedule, error) {
	s, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// SaveCell upserts a single day and returns the stored row.
func (u *ScheduleUsecase) SaveCell(cell Cell) (*model.Schedule, error) {
	row, clear, err := cell.toSchedule()
	if err != nil {
		return nil, err
	}
	if clear {
		return nil, invalid("either time_in or status is required")
	}
	if _, err := u.users.FindByID(cell.UserID); err != nil {
		return nil, notFound(err)
	}
	if err := u.repo.Upsert(&row); err != nil {
		return nil, err
	}
	return u.repo.GetByUserAndDate(row.UserID, row.Date)
}

func (u *ScheduleUsecase) Update(id uint, timeIn, status, note string) (*model.Schedule, error) {
	existing, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	row, clear, err := Cell{UserID: existing.UserID, Date: existing.Date, TimeIn: timeIn, Status: status, Note: note}.toSchedule()
	if err != nil {
		return nil, err
	}
	if clear {
		return nil, invalid("either time_in or status is required")
	}

	existing.TimeIn = row.TimeIn
	existing.Status = row.Status
	existing.Note = row.Note
	existing.User = nil
	if err := u.repo.Update(existing); err != nil {
		return nil, err
	}
	return u.Get(id)
}

func (u *ScheduleUsecase) Delete(id uint) error {
	if _, err := u.Get(id); err != nil {
		return err
	}
	return u.repo.Delete(id)
}

func (u *ScheduleUsecase) DeleteByDate(date string) (int64, error) {
	if !model.ValidDate(date) {
		return 0, invalid("date %q must be YYYY-MM-DD", date)
	}
	return u.repo.DeleteByDate(date)
}

type GridResult struct {
	Saved   int `json:"saved"`
	Cleared int `json:"cleared"`
}

// SaveGrid applies inline grid edits. Every cell is validated before anything
// is written.
func (u *ScheduleUsecase) SaveGrid(cells []Cell) (GridResult, error) {
	var result GridResult
	var rows []model.Schedule
	var clears []Cell

	for _, cell := range cells {
		row, clear, err := cell.toSchedule()
		if err != nil {
			return result, err
		}
		if clear {
			clears = append(clears, cell)
			continue
		}
		rows = append(rows, row)
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	if len(ids) > 0 {
		if _, err := u.knownUsers(ids); err != nil {
			return result, err
		}
	}

	if err := u.repo.UpsertBatch(rows); err != nil {
		return result, err
	}
	for _, cell := range clears {
		if err := u.repo.DeleteCell(cell.UserID, cell.Date); err != nil {
			return result, err
		}
	}

	result.Saved = len(rows)
	result.Cleared = len(clears)
	return result, nil
}

type GenerateMonthInput struct {
	UserIDs  []uint `json:"user_ids" validate:"required,min=1"`
	Year     int    `json:"year" validate:"required,min=2000,max=2100"`
	Month    int    `json:"month" validate:"required,min=1,max=12"`
	ShiftID  uint   `json:"shift_id"`
	TimeIn   string `json:"time_in"`
	Weekdays []int  `json:"weekdays"` // 0=Sunday ... 6=Saturday, empty means every day
	Note     string `json:"note"`
}

type GenerateResult struct {
	Days      int `json:"days"`
	Written   int `json:"written"`
	Preserved int `json:"preserved"`
}

// GenerateMonth writes exactly one row per day of the month for each officer:
// working weekdays get the clock-in time, the rest are OFF. Days already
// holding a leave/training/court status keep it.
func (u *ScheduleUsecase) GenerateMonth(in GenerateMonthInput) (GenerateResult, error) {
	var result GenerateResult

	if in.Month < 1 || in.Month > 12 {
		return result, invalid("month must be between 1 and 12")
	}
	if len(in.UserIDs) == 0 {
		return result, invalid("at least one officer is required")
	}
	timeIn, err := u.resolveTimeIn(in.ShiftID, in.TimeIn)
	if err != nil {
		return result, err
	}
	workDays, err := weekdaySet(in.Weekdays)
	if err != nil {
		return result, err
	}
	userIDs, err := u.knownUsers(in.UserIDs)
	if err != nil {
		return result, err
	}

	// Last day of month = day 0 of the next month
	startDate := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)
	result.Days = endDate.Day()

	existing, err := u.existingByUser(startDate.Format(model.DateLayout), endDate.Format(model.DateLayout), userIDs)
	if err != nil {
		return result, err
	}

	var rows []model.Schedule
	for _, userID := range userIDs {
		for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
			date := d.Format(model.DateLayout)
			if cur, ok := existing[userID][date]; ok && model.RequestDerived(cur.Status) {
				result.Preserved++
				continue
			}

			row := model.Schedule{UserID: userID, Date: date, Note: in.Note}
			if workDays[d.Weekday()] {
				row.TimeIn = timeIn
			} else {
				row.Status = model.StatusOff
			}
			rows = append(rows, row)
		}
	}

	if err := u.repo.UpsertBatch(rows); err != nil {
		return result, err
	}
	result.Written = len(rows)

	u.announce(userIDs, fmt.Sprintf("Roster for %s %d published", time.Month(in.Month), in.Year))
	return result, nil
}

type CopyWeekInput struct {
	SourceDate string `json:"source_date" validate:"required"` // any day of the source week
	TargetDate string `json:"target_date" validate:"required"` // any day of the target week
	UserIDs    []uint `json:"user_ids"`                        // empty means everyone in the source week
}

type CopyWeekResult struct {
	SourceWeek string `json:"source_week"`
	TargetWeek string `json:"target_week"`
	Users      int    `json:"users"`
	Written    int    `json:"written"`
	Preserved  int    `json:"preserved"`
}

// CopyWeek repeats the Monday-Sunday pattern of the source week onto the
// target week. Each officer gets a row for all seven target days: clock-in
// times are copied, statuses are normalized and days missing in the source
// become OFF.
func (u *ScheduleUsecase) CopyWeek(in CopyWeekInput) (CopyWeekResult, error) {
	var result CopyWeekResult

	source, err := time.Parse(model.DateLayout, in.SourceDate)
	if err != nil {
		return result, invalid("source_date %q must be YYYY-MM-DD", in.SourceDate)
	}
	target, err := time.Parse(model.DateLayout, in.TargetDate)
	if err != nil {
		return result, invalid("target_date %q must be YYYY-MM-DD", in.TargetDate)
	}

	srcStart, tgtStart := WeekStart(source), WeekStart(target)
	if srcStart.Equal(tgtStart) {
		return result, invalid("source and target are the same week")
	}
	result.SourceWeek = srcStart.Format(model.DateLayout)
	result.TargetWeek = tgtStart.Format(model.DateLayout)

	userIDs := in.UserIDs
	if len(userIDs) > 0 {
		if userIDs, err = u.knownUsers(userIDs); err != nil {
			return result, err
		}
	}

	sourceRows, err := u.existingByUser(result.SourceWeek, srcStart.AddDate(0, 0, 6).Format(model.DateLayout), userIDs)
	if err != nil {
		return result, err
	}
	if len(userIDs) == 0 {
		// Officers deleted or deactivated since the source week are not rostered again
		active, err := u.users.GetActive()
		if err != nil {
			return result, err
		}
		for _, user := range active {
			if _, ok := sourceRows[user.ID]; ok {
				userIDs = append(userIDs, user.ID)
			}
		}
	}
	if len(userIDs) == 0 {
		return result, invalid("source week %s has no schedules", result.SourceWeek)
	}
	result.Users = len(userIDs)

	targetRows, err := u.existingByUser(result.TargetWeek, tgtStart.AddDate(0, 0, 6).Format(model.DateLayout), userIDs)
	if err != nil {
		return result, err
	}

	var rows []model.Schedule
	for _, userID := range userIDs {
		for i := 0; i < 7; i++ {
			srcDate := srcStart.AddDate(0, 0, i).Format(model.DateLayout)
			tgtDate := tgtStart.AddDate(0, 0, i).Format(model.DateLayout)

			if cur, ok := targetRows[userID][tgtDate]; ok && model.RequestDerived(cur.Status) {
				result.Preserved++
				continue
			}

			row := model.Schedule{UserID: userID, Date: tgtDate}
			src, ok := sourceRows[userID][srcDate]
			switch {
			case ok && src.TimeIn != "":
				row.TimeIn = src.TimeIn
				row.Note = src.Note
			case ok:
				row.Status = model.NormalizeStatus(src.Status)
			default:
				row.Status = model.StatusOff
			}
			rows = append(rows, row)
		}
	}

	if err := u.repo.UpsertBatch(rows); err != nil {
		return result, err
	}
	result.Written = len(rows)

	u.announce(userIDs, "Roster for the week of "+result.TargetWeek+" published")
	return result, nil
}

// ApplyRequestStatus stamps status on every day from start to end.
func (u *ScheduleUsecase) ApplyRequestStatus(userID uint, start, end, status, note string) (int, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return 0, err
	}
	if !model.RequestDerived(status) {
		return 0, invalid("status %q is not a request status", status)
	}

	var rows []model.Schedule
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		rows = append(rows, model.Schedule{
			UserID: userID,
			Date:   d.Format(model.DateLayout),
			Status: status,
			Note:   note,
		})
	}
	if err := u.repo.UpsertBatch(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (u *ScheduleUsecase) resolveTimeIn(shiftID uint, timeIn string) (string, error) {
	if shiftID != 0 {
		shift, err := u.shifts.GetByID(shiftID)
		if err != nil {
			return "", notFound(err)
		}
		timeIn = shift.TimeIn
	}
	if !model.ValidTime(timeIn) {
		return "", invalid("a shift or a time_in in HH:MM is required")
	}
	return timeIn, nil
}

// knownUsers drops duplicate ids and fails if any id does not exist.
func (u *ScheduleUsecase) knownUsers(ids []uint) ([]uint, error) {
	seen := make(map[uint]bool, len(ids))
	var unique []uint
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	users, err := u.users.GetByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(users) != len(unique) {
		return nil, invalid("unknown officer among %d id(s)", len(unique))
	}
	return unique, nil
}

func (u *ScheduleUsecase) existingByUser(start, end string, userIDs []uint) (map[uint]map[string]model.Schedule, error) {
	rows, err := u.repo.GetRange(start, end, userIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]map[string]model.Schedule)
	for _, row := range rows {
		if _, ok := out[row.UserID]; !ok {
			out[row.UserID] = make(map[string]model.Schedule)
		}
		out[row.UserID][row.Date] = row
	}
	return out, nil
}

func (u *ScheduleUsecase) announce(userIDs []uint, title string) {
	if u.notifier == nil {
		return
	}
	_ = u.notifier.NotifyUsers(userIDs, Message{
		Type:    model.NotifySchedule,
		Title:   title,
		Message: "Your schedule has been updated. Check the roster for details.",
		Link:    "/schedules",
	})
}

// WeekStart returns the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

func weekdaySet(days []int) (map[time.Weekday]bool, error) {
	set := make(map[time.Weekday]bool, 7)
	if len(days) == 0 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			set[d] = true
		}
		return set, nil
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, invalid("weekday %d must be between 0 (Sunday) and 6 (Saturday)", d)
		}
		set[time.Weekday(d)] = true
	}
	return set, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := time.Parse(model.DateLayout, start)
	if err != nil {
		return from, from, invalid("start %q must be YYYY-MM-DD", start)
	}
	to, err := time.Parse(model.DateLayout, end)
	if err != nil {
		return from, to, invalid("end %q must be YYYY-MM-DD", end)
	}
	if to.Before(from) {
		return from, to, invalid("end must not be before start")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxRangeDays {
		return from, to, invalid("range is limited to %d days", maxRangeDays)
	}
	return from, to, nil
}

// Grid lays the range out for export. With no userIDs every active officer
// is included.
func (u *ScheduleUsecase) Grid(start, end string, userIDs []uint) (export.Grid, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return export.Grid{}, err
	}

	var users []model.User
	if len(userIDs) > 0 {
		users, err = u.users.GetByIDs(userIDs)
	} else {
		users, err = u.users.GetActive()
	}
	if err != nil {
		return export.Grid{}, err
	}

	rows, err := u.repo.GetRange(start, end, userIDs)
	if err != nil {
		return export.Grid{}, err
	}
	return export.BuildGrid(users, rows, from, to), nil
}

type ImportResult struct {
	GridResult
	Errors []string `json:"errors,omitempty"`
}

// Import applies spreadsheet entries. A value is a clock-in time when it
// parses as HH:MM and a status code otherwise. Lines with unknown badges or
// bad values are reported and skipped; the rest are saved.
func (u *ScheduleUsecase) Import(entries []export.Entry) (ImportResult, error) {
	var result ImportResult
	if len(entries) == 0 {
		return result, invalid("the sheet has no roster lines")
	}

	ids := make(map[string]uint)
	var cells []Cell
	for _, e := range entries {
		if e.Err != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", e.Line, e.Err))
			continue
		}
		userID, ok := ids[e.BadgeNumber]
		if !ok {
			user, err := u.users.FindByBadge(e.BadgeNumber)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown badge number %q", e.Line, e.BadgeNumber))
				continue
			}
			userID = user.ID
			ids[e.BadgeNumber] = userID
		}

		cell := Cell{UserID: userID, Date: e.Date}
		if model.ValidTime(e.Value) {
			cell.TimeIn = e.Value
		} else {
			cell.Status = e.Value
		}
		if _, _, err := cell.toSchedule(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", e.Line, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")))
			continue
		}
		cells = append(cells, cell)
	}

	grid, err := u.SaveGrid(cells)
	if err != nil {
		return result, err
	}
	result.GridResult = grid
	return result, nil
}
