package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"precinct-backend/internal/export"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"
	"precinct-backend/internal/storage"
	"precinct-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// Decoder builds a request of one kind from the body for the given officer.
type Decoder[T model.Request] func(c *fiber.Ctx, userID uint) (T, error)

// RequestHandler serves one request kind. The same code backs leave,
// overtime, training and court requests.
type RequestHandler[T model.Request] struct {
	kind        string
	usecase     *usecase.RequestUsecase[T]
	decode      Decoder[T]
	store       storage.Store
	attachments bool
	maxUploadMB int
}

func NewRequestHandler[T model.Request](kind string, u *usecase.RequestUsecase[T], decode Decoder[T], store storage.Store, attachments bool, maxUploadMB int) *RequestHandler[T] {
	return &RequestHandler[T]{
		kind:        kind,
		usecase:     u,
		decode:      decode,
		store:       store,
		attachments: attachments,
		maxUploadMB: maxUploadMB,
	}
}

func (h *RequestHandler[T]) Submit(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	item, err := h.decode(c, userID)
	if err != nil {
		return badRequest(c, err)
	}

	// Optional supporting document (multipart field "attachment")
	var key string
	if file, ferr := c.FormFile("attachment"); ferr == nil {
		if !h.attachments {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": h.kind + " requests do not take attachments"})
		}
		if err := storage.CheckUpload(file.Filename, file.Size, h.maxUploadMB); err != nil {
			return writeError(c, err)
		}
		f, err := file.Open()
		if err != nil {
			return writeError(c, err)
		}
		key, err = h.store.Save(c.UserContext(), h.kind, file.Filename, f)
		f.Close()
		if err != nil {
			return writeError(c, err)
		}
		item.SetAttachment(key)
	}

	if err := h.usecase.Submit(item); err != nil {
		if key != "" {
			h.removeAttachment(c.UserContext(), key)
		}
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Request submitted",
		"data":    item,
	})
}

func (h *RequestHandler[T]) ListMine(c *fiber.Ctx) error {
	list, err := h.usecase.ListMine(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *RequestHandler[T]) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.usecase.GetFor(id, middleware.UserID(c), middleware.UserRole(c) == model.RoleAdmin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": item})
}

func (h *RequestHandler[T]) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.usecase.Get(id)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.usecase.Cancel(id, middleware.UserID(c)); err != nil {
		return writeError(c, err)
	}
	if key := item.Attachment(); key != "" {
		h.removeAttachment(c.UserContext(), key)
	}
	return c.JSON(fiber.Map{"message": "Request cancelled"})
}

func (h *RequestHandler[T]) Attachment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.usecase.GetFor(id, middleware.UserID(c), middleware.UserRole(c) == model.RoleAdmin)
	if err != nil {
		return writeError(c, err)
	}
	key := item.Attachment()
	if key == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This request has no attachment"})
	}

	rc, err := h.store.Open(c.UserContext(), key)
	if err != nil {
		return writeError(c, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, storage.ContentType(key))
	c.Attachment(fmt.Sprintf("%s-%d%s", h.kind, id, path.Ext(key)))
	return c.Send(data)
}

// Admin

func (h *RequestHandler[T]) List(c *fiber.Ctx) error {
	list, err := h.usecase.List(c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *RequestHandler[T]) Respond(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req struct {
		Decision string `json:"decision" validate:"required,oneof=accepted declined"`
		Note     string `json:"note" validate:"max=1000"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	item, err := h.usecase.Respond(id, middleware.UserID(c), req.Decision, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request " + req.Decision, "data": item})
}

func (h *RequestHandler[T]) Complete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.usecase.Complete(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request completed", "data": item})
}

func (h *RequestHandler[T]) Export(c *fiber.Ctx) error {
	list, err := h.usecase.List(c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteRequestsCSV(&buf, list); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Attachment(h.kind + "_requests.csv")
	return c.Send(buf.Bytes())
}

func (h *RequestHandler[T]) removeAttachment(ctx context.Context, key string) {
	if err := h.store.Delete(ctx, key); err != nil {
		log.Printf("request: remove attachment %s: %v", key, err)
	}
}

func (h *RequestHandler[T]) Kind() string { return h.kind }
