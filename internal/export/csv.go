package export

import (
	"encoding/csv"
	"io"
	"precinct-backend/internal/model"
	"strconv"
	"strings"
	"time"
)

func WriteRosterCSV(w io.Writer, g Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(g.header()); err != nil {
		return err
	}
	for _, row := range g.Rows {
		if err := cw.Write(row.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var requestHeader = []string{
	"id", "kind", "badge_number", "name", "summary", "start", "end",
	"status", "submitted_at", "responded_at", "response_note", "completed_at",
}

// WriteRequestsCSV writes one line per request. Requests should have their
// User preloaded; a missing user leaves the badge and name blank.
func WriteRequestsCSV[T model.Request](w io.Writer, list []T) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(requestHeader); err != nil {
		return err
	}

	for _, item := range list {
		badge, name := "", ""
		if u := item.Requester(); u != nil {
			badge, name = u.BadgeNumber, u.Name
		}
		start, end := item.Span()
		a := item.GetApproval()

		rec := []string{
			strconv.FormatUint(uint64(item.GetID()), 10),
			item.Kind(),
			badge,
			name,
			item.Summary(),
			start,
			end,
			a.Status,
			formatTime(item.SubmittedAt()),
			formatTimePtr(a.RespondedAt),
			a.ResponseNote,
			formatTimePtr(a.CompletedAt),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func itoa(n int) string { return strconv.Itoa(n) }

func lower(s string) string { return strings.ToLower(s) }
