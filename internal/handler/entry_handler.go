package handler

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/service"
)

type EntryHandler struct {
	logService *service.LogService
}

func NewEntryHandler(logService *service.LogService) *EntryHandler {
	return &EntryHandler{logService: logService}
}

// ListEntries GET /v1/entries?group=day
func (h *EntryHandler) ListEntries(c *fiber.Ctx) error {
	if c.Query("group") == "day" {
		return c.JSON(h.logService.GroupedByDay())
	}
	return c.JSON(h.logService.Entries())
}

// CreateEntry POST /v1/entries
func (h *EntryHandler) CreateEntry(c *fiber.Ctx) error {
	var req struct {
		ExerciseName string    `json:"exercise_name"`
		Date         time.Time `json:"date"`
		Sets         []struct {
			Reps   int      `json:"reps"`
			Weight *float64 `json:"weight"`
			Notes  string   `json:"notes"`
		} `json:"sets"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	if strings.TrimSpace(req.ExerciseName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "exercise_name must not be blank"})
	}
	if len(req.Sets) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least one set is required"})
	}

	sets := make([]domain.ExerciseSet, 0, len(req.Sets))
	for _, s := range req.Sets {
		if s.Reps < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reps must be a positive integer"})
		}
		if s.Weight != nil && *s.Weight < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "weight must not be negative"})
		}
		sets = append(sets, domain.ExerciseSet{Reps: s.Reps, Weight: s.Weight, Notes: s.Notes})
	}

	entry := domain.NewExerciseEntry(req.ExerciseName, req.Date, sets)

	// A failed save-through is logged but stays silent to the user; the
	// entry lives on in memory either way.
	if err := h.logService.AddEntry(c.UserContext(), entry); err != nil {
		log.Printf("add entry %s saved to memory only: %v", entry.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// DeleteEntry DELETE /v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.logService.DeleteByID(c.UserContext(), id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		// Save-through failed after the delete; same silent policy as add.
		log.Printf("delete entry %s applied to memory only: %v", id, err)
	}

	return c.JSON(fiber.Map{"message": "deleted"})
}

// ExportEntries POST /v1/export
func (h *EntryHandler) ExportEntries(c *fiber.Ctx) error {
	result, err := h.logService.ExportSnapshot(c.UserContext())
	if err != nil {
		// Any export failure presents as "no data to export"; the cause
		// stays in the logs.
		if !errors.Is(err, domain.ErrNothingToExport) {
			log.Printf("export failed: %v", err)
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no data to export"})
	}

	return c.JSON(result)
}
