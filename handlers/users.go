package handlers

import (
	"poetry/app"
	"poetry/models"
	"poetry/services"

	"github.com/gofiber/fiber/v2"
)

// ListUsers returns every user
func ListUsers(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := services.NewUserService(a.Session(), a.BcryptCost).List(c.UserContext())
		if err != nil {
			return storeError(c, "Failed to fetch users", err)
		}

		return success(c, fiber.Map{"users": redacted(users)})
	}
}

// GetUser returns a single user
func GetUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := services.NewUserService(a.Session(), a.BcryptCost).Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to fetch user", err)
		}

		return success(c, fiber.Map{"user": user.Redacted()})
	}
}

// CreateUser registers a new user
func CreateUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		user, err := services.NewUserService(a.Session(), a.BcryptCost).Create(c.UserContext(), req)
		if err != nil {
			return storeError(c, "Failed to create user", err)
		}

		return created(c, fiber.Map{"user": user.Redacted()})
	}
}

// UpdateUser applies a partial update. Only username, email and password may change.
func UpdateUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		patch, err := models.DecodeUserPatch(c.Body())
		if err != nil {
			return badRequest(c, err.Error())
		}

		if err := a.Validator.Validate(&patch); err != nil {
			return validationError(c, err)
		}

		user, err := services.NewUserService(a.Session(), a.BcryptCost).Update(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update user", err)
		}

		return success(c, fiber.Map{"user": user.Redacted()})
	}
}

// DeleteUser removes a user along with their poems, comments and likes
func DeleteUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := services.NewUserService(a.Session(), a.BcryptCost).Delete(c.UserContext(), c.Params("id")); err != nil {
			return storeError(c, "Failed to delete user", err)
		}

		return success(c, fiber.Map{"message": "User deleted"})
	}
}
