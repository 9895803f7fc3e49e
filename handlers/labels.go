package handlers

import (
	"poetry/app"
	"poetry/models"
	"poetry/services"

	"github.com/gofiber/fiber/v2"
)

func ListCategories(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := services.NewLabelService(a.Session()).Categories(c.UserContext())
		if err != nil {
			return storeError(c, "Failed to fetch categories", err)
		}
		return success(c, fiber.Map{"categories": categories})
	}
}

func CreateCategory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateLabelRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		category, err := services.NewLabelService(a.Session()).CreateCategory(c.UserContext(), req)
		if err != nil {
			return storeError(c, "Failed to create category", err)
		}
		return created(c, fiber.Map{"category": category})
	}
}

func ListThemes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		themes, err := services.NewLabelService(a.Session()).Themes(c.UserContext())
		if err != nil {
			return storeError(c, "Failed to fetch themes", err)
		}
		return success(c, fiber.Map{"themes": themes})
	}
}

func CreateTheme(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateLabelRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		theme, err := services.NewLabelService(a.Session()).CreateTheme(c.UserContext(), req)
		if err != nil {
			return storeError(c, "Failed to create theme", err)
		}
		return created(c, fiber.Map{"theme": theme})
	}
}
