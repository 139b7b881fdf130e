// Package export renders rosters and request lists as CSV or XLSX and reads
// roster spreadsheets back in.
package export

import (
	"precinct-backend/internal/model"
	"time"
)

// OnDuty is the counter key for days with a clock-in time.
const OnDuty = "ON_DUTY"

// CounterKeys is the column order of the per-officer totals.
var CounterKeys = []string{OnDuty, model.StatusOff, model.StatusLeave, model.StatusSick, model.StatusTraining, model.StatusCourt}

// Grid is a roster laid out one row per officer and one column per day.
type Grid struct {
	Dates []string
	Rows  []GridRow
}

type GridRow struct {
	BadgeNumber string
	Name        string
	Cells       []string // time_in, status code or "" per date
	Counts      map[string]int
}

// BuildGrid lays rows out for users from start to end inclusive.
func BuildGrid(users []model.User, rows []model.Schedule, start, end time.Time) Grid {
	var g Grid
	index := make(map[string]int)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(model.DateLayout)
		index[date] = len(g.Dates)
		g.Dates = append(g.Dates, date)
	}

	byUser := make(map[uint]map[string]model.Schedule)
	for _, row := range rows {
		if _, ok := byUser[row.UserID]; !ok {
			byUser[row.UserID] = make(map[string]model.Schedule)
		}
		byUser[row.UserID][row.Date] = row
	}

	for _, user := range users {
		gr := GridRow{
			BadgeNumber: user.BadgeNumber,
			Name:        user.Name,
			Cells:       make([]string, len(g.Dates)),
			Counts:      make(map[string]int, len(CounterKeys)),
		}
		for date, row := range byUser[user.ID] {
			i, ok := index[date]
			if !ok {
				continue
			}
			if row.TimeIn != "" {
				gr.Cells[i] = row.TimeIn
				gr.Counts[OnDuty]++
			} else {
				gr.Cells[i] = row.Status
				gr.Counts[row.Status]++
			}
		}
		g.Rows = append(g.Rows, gr)
	}
	return g
}

func (g Grid) header() []string {
	header := append([]string{"badge_number", "name"}, g.Dates...)
	for _, k := range CounterKeys {
		header = append(header, "total_"+lower(k))
	}
	return header
}

func (r GridRow) record() []string {
	rec := append([]string{r.BadgeNumber, r.Name}, r.Cells...)
	for _, k := range CounterKeys {
		rec = append(rec, itoa(r.Counts[k]))
	}
	return rec
}
