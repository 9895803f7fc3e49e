package handlers

import (
	"errors"
	"log/slog"

	"poetry/database"
	"poetry/models"
	"poetry/services"
	"poetry/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verrs,
		})
	}
	return badRequest(c, err.Error())
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// storeError maps service and storage errors onto responses
func storeError(c *fiber.Ctx, message string, err error) error {
	var ce *database.ConstraintError

	switch {
	case errors.Is(err, database.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidAuthor), errors.Is(err, services.ErrInvalidCommenter):
		return badRequest(c, "Invalid user_id")
	case errors.Is(err, services.ErrInvalidPatch):
		return badRequest(c, err.Error())
	case errors.As(err, &ce):
		switch ce.Kind {
		case database.ConstraintUnique:
			return conflict(c, "Already exists: "+ce.Target)
		case database.ConstraintField:
			return validationError(c, ce.Err)
		case database.ConstraintForeignKey:
			return badRequest(c, "Referenced entity does not exist")
		default:
			return badRequest(c, ce.Error())
		}
	case errors.Is(err, database.ErrConnection):
		slog.Error("database unavailable", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database unavailable"})
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

// redacted returns the serializable form of each entity
func redacted[T models.Entity](items []T) []models.Entity {
	out := make([]models.Entity, 0, len(items))
	for _, e := range items {
		out = append(out, e.Redacted())
	}
	return out
}
