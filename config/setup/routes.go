package setup

import (
	"poetry/app"
	"poetry/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", handlers.Health(application))

	api := fiberApp.Group("/api")
	api.Get("/stats", handlers.GetStats(application))

	// Users
	api.Get("/users", handlers.ListUsers(application))
	api.Post("/users", handlers.CreateUser(application))
	api.Get("/users/:id", handlers.GetUser(application))
	api.Patch("/users/:id", handlers.UpdateUser(application))
	api.Delete("/users/:id", handlers.DeleteUser(application))

	// Categories and themes
	api.Get("/categories", handlers.ListCategories(application))
	api.Post("/categories", handlers.CreateCategory(application))
	api.Get("/themes", handlers.ListThemes(application))
	api.Post("/themes", handlers.CreateTheme(application))

	// Poems
	api.Get("/poems", handlers.ListPoems(application))
	api.Post("/poems", handlers.CreatePoem(application))
	api.Get("/poems/:id", handlers.GetPoem(application))
	api.Patch("/poems/:id", handlers.UpdatePoem(application))
	api.Delete("/poems/:id", handlers.DeletePoem(application))
	api.Post("/poems/:id/comments", handlers.CreateComment(application))

	// Likes
	api.Get("/poems/:id/likes", handlers.GetPoemLikes(application))
	api.Get("/poems/:id/users/:user_id/likes", handlers.GetUserLikes(application))
	api.Post("/poems/:id/users/:user_id/like", handlers.LikePoem(application))
	api.Delete("/poems/:id/users/:user_id/like", handlers.UnlikePoem(application))
}
