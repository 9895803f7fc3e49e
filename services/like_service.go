package services

import (
	"context"
	"log/slog"

	"poetry/database"
	"poetry/models"
)

// LikeService manages the like association between users and poems
type LikeService struct {
	store  LikeStore
	logger *slog.Logger
}

// NewLikeService creates a new like service
func NewLikeService(store LikeStore, logger *slog.Logger) *LikeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LikeService{
		store:  store,
		logger: logger,
	}
}

// Like records that user likes poem. It returns the user and true when a new
// like was stored, or the user and false when the pair already existed.
func (ls *LikeService) Like(ctx context.Context, poem *models.Poem, user *models.User) (*models.User, bool, error) {
	if poem == nil {
		return nil, false, ErrPoemNotFound
	}
	if user == nil {
		return nil, false, ErrUserNotFound
	}

	liked, err := ls.store.HasLike(ctx, poem.ID, user.ID)
	if err != nil {
		return nil, false, err
	}
	if liked {
		return user, false, nil
	}

	ls.store.New(models.NewLike(poem, user))
	ls.store.Touch(poem)
	if err := commit(ctx, ls.store); err != nil {
		// Another session stored the same pair between the check and the save
		if database.IsDuplicate(err, "likes") {
			ls.logger.Debug("like already stored", "poem_id", poem.ID, "user_id", user.ID)
			return user, false, nil
		}
		return nil, false, err
	}

	if !poem.LikedBy(user.ID) {
		poem.Likes = append(poem.Likes, user)
	}
	return user, true, nil
}

// Unlike removes user's like from poem. It returns ErrLikeNotFound when the
// pair does not exist.
func (ls *LikeService) Unlike(ctx context.Context, poem *models.Poem, user *models.User) error {
	if poem == nil {
		return ErrPoemNotFound
	}
	if user == nil {
		return ErrUserNotFound
	}

	liked, err := ls.store.HasLike(ctx, poem.ID, user.ID)
	if err != nil {
		return err
	}
	if !liked {
		return ErrLikeNotFound
	}

	ls.store.Delete(&models.Like{PoemID: poem.ID, UserID: user.ID})
	ls.store.Touch(poem)
	if err := commit(ctx, ls.store); err != nil {
		return err
	}

	likes := poem.Likes[:0]
	for _, u := range poem.Likes {
		if u.ID != user.ID {
			likes = append(likes, u)
		}
	}
	poem.Likes = likes
	return nil
}

// Count returns the number of users who like poem
func (ls *LikeService) Count(ctx context.Context, poem *models.Poem) (int, error) {
	if poem == nil {
		return 0, ErrPoemNotFound
	}
	return ls.store.CountLikes(ctx, poem.ID)
}

// CountByUser returns 1 when user likes poem and 0 otherwise
func (ls *LikeService) CountByUser(ctx context.Context, poem *models.Poem, user *models.User) (int, error) {
	if poem == nil {
		return 0, ErrPoemNotFound
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	return ls.store.CountUserLikes(ctx, poem.ID, user.ID)
}

// LikedPoemIDs lists the poems user likes, restricted to poemIDs when given
func (ls *LikeService) LikedPoemIDs(ctx context.Context, user *models.User, poemIDs ...string) ([]string, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}
	return ls.store.LikedPoemIDs(ctx, user.ID, poemIDs...)
}
