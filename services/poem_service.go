package services

import (
	"context"
	"strings"

	"poetry/models"
)

// PoemService handles business logic for poems and their comments
type PoemService struct {
	store Store
}

// NewPoemService creates a new poem service
func NewPoemService(store Store) *PoemService {
	return &PoemService{store: store}
}

// List retrieves all poems with their likes and comments loaded
func (ps *PoemService) List(ctx context.Context) ([]*models.Poem, error) {
	all, err := ps.store.All(ctx, models.KindPoem)
	if err != nil {
		return nil, err
	}
	return all.Poems, nil
}

// Get retrieves a poem by id
func (ps *PoemService) Get(ctx context.Context, id string) (*models.Poem, error) {
	poem, err := ps.store.GetPoem(ctx, id)
	if err != nil {
		return nil, err
	}
	if poem == nil {
		return nil, ErrPoemNotFound
	}
	return poem, nil
}

// Create stores a new poem. The author must already exist.
func (ps *PoemService) Create(ctx context.Context, req models.CreatePoemRequest) (*models.Poem, error) {
	author, err := ps.store.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrInvalidAuthor
	}

	poem := models.NewPoem(author, strings.TrimSpace(req.Title), req.Body)
	if req.CategoryID != "" {
		poem.CategoryID = &req.CategoryID
	}
	if req.ThemeID != "" {
		poem.ThemeID = &req.ThemeID
	}

	ps.store.New(poem)
	if err := commit(ctx, ps.store); err != nil {
		return nil, err
	}

	return poem, nil
}

// Update applies patch to the poem with the given id
func (ps *PoemService) Update(ctx context.Context, id string, patch models.PoemPatch) (*models.Poem, error) {
	if patch.Empty() {
		return nil, ErrInvalidPatch
	}

	poem, err := ps.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(poem)

	ps.store.New(poem)
	if err := commit(ctx, ps.store); err != nil {
		return nil, err
	}

	return poem, nil
}

// Delete removes a poem with its comments and likes
func (ps *PoemService) Delete(ctx context.Context, id string) error {
	poem, err := ps.Get(ctx, id)
	if err != nil {
		return err
	}

	ps.store.Delete(poem)
	return commit(ctx, ps.store)
}

// AddComment stores a comment on the poem with the given id
func (ps *PoemService) AddComment(ctx context.Context, poemID string, req models.CreateCommentRequest) (*models.Comment, error) {
	poem, err := ps.Get(ctx, poemID)
	if err != nil {
		return nil, err
	}

	author, err := ps.store.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrInvalidCommenter
	}

	comment := models.NewComment(poem, author, req.Body)
	ps.store.New(comment)
	if err := commit(ctx, ps.store); err != nil {
		return nil, err
	}

	poem.Comments = append(poem.Comments, comment)
	return comment, nil
}
