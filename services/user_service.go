package services

import (
	"context"
	"strings"

	"poetry/models"
)

// UserService handles business logic for users
type UserService struct {
	store      Store
	bcryptCost int
}

// NewUserService creates a new user service hashing passwords at bcryptCost
func NewUserService(store Store, bcryptCost int) *UserService {
	return &UserService{
		store:      store,
		bcryptCost: bcryptCost,
	}
}

// List retrieves all users
func (us *UserService) List(ctx context.Context) ([]*models.User, error) {
	all, err := us.store.All(ctx, models.KindUser)
	if err != nil {
		return nil, err
	}
	return all.Users, nil
}

// Get retrieves a user by id
func (us *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := us.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create registers a new user with a hashed password
func (us *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	user := models.NewUser(strings.TrimSpace(req.Username), strings.TrimSpace(req.Email))
	if err := user.SetPassword(req.Password, us.bcryptCost); err != nil {
		return nil, err
	}

	us.store.New(user)
	if err := commit(ctx, us.store); err != nil {
		return nil, err
	}

	return user, nil
}

// Update applies patch to the user with the given id
func (us *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Empty() {
		return nil, ErrInvalidPatch
	}

	user, err := us.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := patch.ApplyTo(user, us.bcryptCost); err != nil {
		return nil, err
	}

	us.store.New(user)
	if err := commit(ctx, us.store); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user together with their poems, comments and likes
func (us *UserService) Delete(ctx context.Context, id string) error {
	user, err := us.Get(ctx, id)
	if err != nil {
		return err
	}

	us.store.Delete(user)
	return commit(ctx, us.store)
}
