// Package dochttp exposes the docgen service over HTTP using fiber.
package dochttp

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	errorslib "github.com/goliatone/go-errors"

	"github.com/goliatone/go-docgen/docgen"
)

// Handler exposes template generation, conversion, fill, and training
// endpoints.
type Handler struct {
	Service  docgen.Service
	Training *docgen.TrainingManager
	Logger   docgen.Logger
}

// NewHandler creates an HTTP handler around the service.
func NewHandler(service docgen.Service, training *docgen.TrainingManager) *Handler {
	return &Handler{Service: service, Training: training}
}

// GenerateRequest is the payload for binary page generation.
type GenerateRequest struct {
	Template docgen.Template `json:"template"`
	Data     docgen.DataMap  `json:"data"`
}

// FillRequest is the payload for placeholder fill.
type FillRequest struct {
	Data docgen.DataMap `json:"data"`
}

// TrainRequest is the payload for training runs.
type TrainRequest struct {
	Templates []docgen.Template     `json:"templates"`
	Config    docgen.TrainingConfig `json:"config"`
}

// RegisterRoutes registers all endpoints on a fiber app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)
	app.Post("/api/pdf/generate", h.Generate)
	app.Post("/api/templates/convert", h.Convert)
	app.Post("/api/templates/:name/fill", h.Fill)
	app.Post("/api/train", h.Train)
	app.Get("/api/train/status/:id", h.TrainStatus)
}

// Generate renders a PDF and returns it as a file download.
func (h *Handler) Generate(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, docgen.NewError(docgen.KindValidation, "invalid request body", err))
	}

	result, err := h.Service.Generate(c.Context(), req.Template, req.Data)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", result.Filename))
	return c.Send(result.Content)
}

// Convert assembles and persists the markup artifact for a template.
func (h *Handler) Convert(c *fiber.Ctx) error {
	var tmpl docgen.Template
	if err := c.BodyParser(&tmpl); err != nil {
		return writeError(c, docgen.NewError(docgen.KindValidation, "invalid request body", err))
	}

	ref, err := h.Service.Convert(c.Context(), tmpl)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"key":  ref.Key,
		"size": ref.Meta.Size,
	})
}

// Fill substitutes data values into a stored template artifact.
func (h *Handler) Fill(c *fiber.Ctx) error {
	var req FillRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, docgen.NewError(docgen.KindValidation, "invalid request body", err))
	}

	content, err := h.Service.Fill(c.Context(), c.Params("name"), req.Data)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, docgen.ContentTypeMarkup)
	return c.SendString(content)
}

// Train starts a training run; small batches complete synchronously.
func (h *Handler) Train(c *fiber.Ctx) error {
	if h.Training == nil {
		return writeError(c, docgen.NewError(docgen.KindNotImpl, "training not configured", nil))
	}

	var req TrainRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, docgen.NewError(docgen.KindValidation, "invalid request body", err))
	}

	record, err := h.Training.Start(c.Context(), req.Templates, req.Config)
	if err != nil {
		return writeError(c, err)
	}

	if record.State == docgen.TaskCompleted || record.State == docgen.TaskFailed {
		return c.JSON(fiber.Map{"status": "complete", "result": record})
	}
	return c.JSON(fiber.Map{
		"status":  "started",
		"task_id": record.ID,
		"message": "training started in background",
	})
}

// TrainStatus returns a training task snapshot by id.
func (h *Handler) TrainStatus(c *fiber.Ctx) error {
	if h.Training == nil {
		return writeError(c, docgen.NewError(docgen.KindNotImpl, "training not configured", nil))
	}

	record, err := h.Training.Status(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(record)
}

// Root is the service banner / liveness endpoint.
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"service": "go-docgen",
		"endpoints": fiber.Map{
			"pdf_generation":   "/api/pdf/generate",
			"template_convert": "/api/templates/convert",
			"template_fill":    "/api/templates/:name/fill",
			"training":         "/api/train",
			"training_status":  "/api/train/status/:id",
		},
	})
}

// Health reports component readiness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":           "healthy",
		"service":          "go-docgen",
		"training_enabled": h.Training != nil,
	})
}

func writeError(c *fiber.Ctx, err error) error {
	ge := docgen.AsGoError(err)
	return c.Status(statusForError(ge)).JSON(fiber.Map{
		"error": fiber.Map{
			"message": ge.Message,
			"code":    ge.TextCode,
		},
	})
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	if err.TextCode == "not_implemented" {
		return http.StatusNotImplemented
	}
	switch err.Category {
	case errorslib.CategoryValidation:
		return http.StatusBadRequest
	case errorslib.CategoryNotFound:
		return http.StatusNotFound
	case errorslib.CategoryOperation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
