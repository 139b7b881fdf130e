package export

import (
	"errors"
	"fmt"
	"io"
	"precinct-backend/internal/model"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Roster"

// WriteRosterXLSX writes the grid to a single-sheet workbook.
func WriteRosterXLSX(w io.Writer, g Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return err
	}

	for col, value := range g.header() {
		if err := setCell(f, col, 1, value); err != nil {
			return err
		}
	}

	// Style the header row
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err == nil {
		f.SetRowStyle(rosterSheet, 1, 1, headerStyle)
	}

	for i, row := range g.Rows {
		for col, value := range row.record() {
			if err := setCell(f, col, i+2, value); err != nil {
				return err
			}
		}
	}

	f.SetColWidth(rosterSheet, "A", "A", 14)
	f.SetColWidth(rosterSheet, "B", "B", 24)
	f.SetPanes(rosterSheet, &excelize.Panes{Freeze: true, XSplit: 2, YSplit: 1, TopLeftCell: "C2", ActivePane: "bottomRight"})

	return f.Write(w)
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(rosterSheet, cell, value)
}

// Entry is one line of an imported roster sheet.
type Entry struct {
	Line        int
	BadgeNumber string
	Date        string
	Value       string // HH:MM, a status code, or empty to clear
	Err         string // set when the line cannot be read; Date is then empty
}

var ErrBadSheet = errors.New("roster sheet needs badge_number, date and value columns")

// ReadRosterXLSX reads the first sheet of a workbook with the columns
// badge_number, date and value (in any order, header on row 1). Lines with an
// unreadable date are returned with Err set so callers can report them.
func ReadRosterXLSX(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrBadSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrBadSheet
	}

	cols := map[string]int{"badge_number": -1, "date": -1, "value": -1}
	for i, h := range rows[0] {
		if _, ok := cols[normalizeHeader(h)]; ok {
			cols[normalizeHeader(h)] = i
		}
	}
	for _, idx := range cols {
		if idx < 0 {
			return nil, ErrBadSheet
		}
	}

	var entries []Entry
	for i, row := range rows[1:] {
		badge := cellValue(row, cols["badge_number"])
		rawDate := cellValue(row, cols["date"])
		if badge == "" && rawDate == "" {
			continue
		}

		entry := Entry{
			Line:        i + 2,
			BadgeNumber: badge,
			Value:       cellValue(row, cols["value"]),
		}
		if date, ok := normalizeDate(rawDate); ok {
			entry.Date = date
		} else {
			entry.Err = fmt.Sprintf("date %q must be YYYY-MM-DD", rawDate)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// normalizeDate accepts YYYY-MM-DD or an Excel date serial.
func normalizeDate(value string) (string, bool) {
	if model.ValidDate(value) {
		return value, true
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return parsed.Format(model.DateLayout), true
		}
	}
	return "", false
}
