package handler

import (
	"bytes"
	"fmt"
	"precinct-backend/internal/export"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"
	"precinct-backend/internal/usecase"
	"time"

	"github.com/gofiber/fiber/v2"
)

// maxImportBytes caps roster spreadsheet uploads.
const maxImportBytes = 5 << 20

type ScheduleHandler struct {
	usecase *usecase.ScheduleUsecase
	now     func() time.Time
}

func NewScheduleHandler(u *usecase.ScheduleUsecase) *ScheduleHandler {
	return &ScheduleHandler{usecase: u, now: time.Now}
}

// dateRange reads ?start&end, defaulting to the current month.
func (h *ScheduleHandler) dateRange(c *fiber.Ctx) (string, string) {
	now := h.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := c.Query("start", first.Format(model.DateLayout))
	end := c.Query("end", first.AddDate(0, 1, -1).Format(model.DateLayout))
	return start, end
}

func (h *ScheduleHandler) GetMine(c *fiber.Ctx) error {
	start, end := h.dateRange(c)
	list, err := h.usecase.Range(start, end, []uint{middleware.UserID(c)})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *ScheduleHandler) GetRange(c *fiber.Ctx) error {
	userIDs, err := queryIDs(c, "user_id")
	if err != nil {
		return writeError(c, err)
	}
	start, end := h.dateRange(c)

	list, err := h.usecase.Range(start, end, userIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *ScheduleHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.usecase.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": s})
}

func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var req usecase.Cell
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	s, err := h.usecase.SaveCell(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Schedule saved", "data": s})
}

func (h *ScheduleHandler) SaveGrid(c *fiber.Ctx) error {
	var req struct {
		Cells []usecase.Cell `json:"cells" validate:"required,min=1,max=5000,dive"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := h.usecase.SaveGrid(req.Cells)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Roster saved", "data": res})
}

func (h *ScheduleHandler) GenerateMonth(c *fiber.Ctx) error {
	var req usecase.GenerateMonthInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := h.usecase.GenerateMonth(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Monthly roster generated", "data": res})
}

func (h *ScheduleHandler) CopyWeek(c *fiber.Ctx) error {
	var req usecase.CopyWeekInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := h.usecase.CopyWeek(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Week copied", "data": res})
}

func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req struct {
		TimeIn string `json:"time_in"`
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	s, err := h.usecase.Update(id, req.TimeIn, req.Status, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Schedule updated", "data": s})
}

func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.usecase.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Schedule deleted"})
}

func (h *ScheduleHandler) DeleteByDate(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter 'date' is required"})
	}

	n, err := h.usecase.DeleteByDate(date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Deleted %d schedules on %s", n, date), "deleted": n})
}

func (h *ScheduleHandler) Export(c *fiber.Ctx) error {
	userIDs, err := queryIDs(c, "user_id")
	if err != nil {
		return writeError(c, err)
	}
	start, end := h.dateRange(c)

	grid, err := h.usecase.Grid(start, end, userIDs)
	if err != nil {
		return writeError(c, err)
	}

	var buf bytes.Buffer
	name := fmt.Sprintf("roster_%s_%s", start, end)
	switch c.Query("format", "csv") {
	case "csv":
		err = export.WriteRosterCSV(&buf, grid)
		name += ".csv"
		c.Set(fiber.HeaderContentType, "text/csv")
	case "xlsx":
		err = export.WriteRosterXLSX(&buf, grid)
		name += ".xlsx"
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be csv or xlsx"})
	}
	if err != nil {
		return writeError(c, err)
	}

	c.Attachment(name)
	return c.Send(buf.Bytes())
}

func (h *ScheduleHandler) Import(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An .xlsx file is required in field 'file'"})
	}
	if file.Size > maxImportBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "Spreadsheet is too large"})
	}

	f, err := file.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	entries, err := export.ReadRosterXLSX(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := h.usecase.Import(entries)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Roster imported", "data": res})
}
