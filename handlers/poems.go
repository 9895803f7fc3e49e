package handlers

import (
	"poetry/app"
	"poetry/models"
	"poetry/services"

	"github.com/gofiber/fiber/v2"
)

// ListPoems returns every poem with its likers and comments
func ListPoems(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		poems, err := services.NewPoemService(a.Session()).List(c.UserContext())
		if err != nil {
			return storeError(c, "Failed to fetch poems", err)
		}

		return success(c, fiber.Map{"poems": redacted(poems)})
	}
}

func GetPoem(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		poem, err := services.NewPoemService(a.Session()).Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to fetch poem", err)
		}

		return success(c, fiber.Map{"poem": poem.Redacted()})
	}
}

func CreatePoem(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreatePoemRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		poem, err := services.NewPoemService(a.Session()).Create(c.UserContext(), req)
		if err != nil {
			return storeError(c, "Failed to create poem", err)
		}

		return created(c, fiber.Map{"poem": poem.Redacted()})
	}
}

// UpdatePoem applies a partial update. The author cannot be changed.
func UpdatePoem(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		patch, err := models.DecodePoemPatch(c.Body())
		if err != nil {
			return badRequest(c, err.Error())
		}

		if err := a.Validator.Validate(&patch); err != nil {
			return validationError(c, err)
		}

		poem, err := services.NewPoemService(a.Session()).Update(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update poem", err)
		}

		return success(c, fiber.Map{"poem": poem.Redacted()})
	}
}

func DeletePoem(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := services.NewPoemService(a.Session()).Delete(c.UserContext(), c.Params("id")); err != nil {
			return storeError(c, "Failed to delete poem", err)
		}

		return success(c, fiber.Map{"message": "Poem deleted"})
	}
}

// CreateComment adds a comment to a poem
func CreateComment(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateCommentRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		comment, err := services.NewPoemService(a.Session()).AddComment(c.UserContext(), c.Params("id"), req)
		if err != nil {
			return storeError(c, "Failed to add comment", err)
		}

		return created(c, fiber.Map{"comment": comment})
	}
}
