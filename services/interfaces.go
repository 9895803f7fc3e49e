package services

import (
	"context"

	"poetry/database"
	"poetry/models"
)

// Store defines the storage session the services work through.
// Production uses one *database.Repository per request.
type Store interface {
	All(ctx context.Context, kinds ...models.Kind) (*models.Collection, error)
	Count(ctx context.Context, kinds ...models.Kind) (int, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetPoem(ctx context.Context, id string) (*models.Poem, error)
	New(rec models.Record)
	Delete(rec models.Record)
	Touch(e models.Entity)
	Save(ctx context.Context) error
	Rollback()
}

// LikeStore adds the like association queries
type LikeStore interface {
	Store
	HasLike(ctx context.Context, poemID, userID string) (bool, error)
	CountLikes(ctx context.Context, poemID string) (int, error)
	CountUserLikes(ctx context.Context, poemID, userID string) (int, error)
	LikedPoemIDs(ctx context.Context, userID string, poemIDs ...string) ([]string, error)
}

var _ LikeStore = (*database.Repository)(nil)

// commit saves the staged changes, discarding them if the save fails
func commit(ctx context.Context, store Store) error {
	if err := store.Save(ctx); err != nil {
		store.Rollback()
		return err
	}
	return nil
}
