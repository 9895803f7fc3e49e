package handlers

import (
	"context"

	"poetry/app"
	"poetry/database"
	"poetry/models"
	"poetry/services"

	"github.com/gofiber/fiber/v2"
)

// loadPair fetches the poem and user named by the :id and :user_id params
func loadPair(ctx context.Context, a *app.App, repo *database.Repository, poemID, userID string) (*models.Poem, *models.User, error) {
	poem, err := services.NewPoemService(repo).Get(ctx, poemID)
	if err != nil {
		return nil, nil, err
	}
	user, err := services.NewUserService(repo, a.BcryptCost).Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return poem, user, nil
}

// GetPoemLikes returns the like count and the users who like a poem
func GetPoemLikes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		repo := a.Session()
		poem, err := services.NewPoemService(repo).Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to fetch poem", err)
		}

		count, err := services.NewLikeService(repo, a.Logger).Count(c.UserContext(), poem)
		if err != nil {
			return storeError(c, "Failed to count likes", err)
		}

		return success(c, fiber.Map{
			"poem_id": poem.ID,
			"count":   count,
			"users":   redacted(poem.Likes),
		})
	}
}

// GetUserLikes reports whether a user likes the poem. liked_poem_ids holds the
// poem's id when they do and is empty otherwise.
func GetUserLikes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		repo := a.Session()
		poem, user, err := loadPair(c.UserContext(), a, repo, c.Params("id"), c.Params("user_id"))
		if err != nil {
			return storeError(c, "Failed to fetch likes", err)
		}

		likes := services.NewLikeService(repo, a.Logger)
		count, err := likes.CountByUser(c.UserContext(), poem, user)
		if err != nil {
			return storeError(c, "Failed to count likes", err)
		}

		poemIDs, err := likes.LikedPoemIDs(c.UserContext(), user, poem.ID)
		if err != nil {
			return storeError(c, "Failed to fetch liked poems", err)
		}

		return success(c, fiber.Map{
			"poem_id":        poem.ID,
			"user_id":        user.ID,
			"count":          count,
			"liked_poem_ids": poemIDs,
		})
	}
}

// LikePoem records a like. Responds 201 for a new like and 200 if it already existed.
func LikePoem(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		repo := a.Session()
		poem, user, err := loadPair(c.UserContext(), a, repo, c.Params("id"), c.Params("user_id"))
		if err != nil {
			return storeError(c, "Failed to like poem", err)
		}

		liker, isNew, err := services.NewLikeService(repo, a.Logger).Like(c.UserContext(), poem, user)
		if err != nil {
			return storeError(c, "Failed to like poem", err)
		}

		body := fiber.Map{"poem_id": poem.ID, "user": liker.Redacted(), "created": isNew}
		if isNew {
			return created(c, body)
		}
		return success(c, body)
	}
}

// UnlikePoem removes a like. Responds 404 when the user does not like the poem.
func UnlikePoem(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		repo := a.Session()
		poem, user, err := loadPair(c.UserContext(), a, repo, c.Params("id"), c.Params("user_id"))
		if err != nil {
			return storeError(c, "Failed to unlike poem", err)
		}

		if err := services.NewLikeService(repo, a.Logger).Unlike(c.UserContext(), poem, user); err != nil {
			return storeError(c, "Failed to unlike poem", err)
		}

		return success(c, fiber.Map{"message": "Like removed"})
	}
}
