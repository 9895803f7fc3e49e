package services

import (
	"context"
	"strings"

	"poetry/models"
)

// LabelService manages the categories and themes poems can be filed under
type LabelService struct {
	store Store
}

func NewLabelService(store Store) *LabelService {
	return &LabelService{store: store}
}

func (ls *LabelService) Categories(ctx context.Context) ([]*models.Category, error) {
	all, err := ls.store.All(ctx, models.KindCategory)
	if err != nil {
		return nil, err
	}
	return all.Categories, nil
}

func (ls *LabelService) Themes(ctx context.Context) ([]*models.Theme, error) {
	all, err := ls.store.All(ctx, models.KindTheme)
	if err != nil {
		return nil, err
	}
	return all.Themes, nil
}

func (ls *LabelService) CreateCategory(ctx context.Context, req models.CreateLabelRequest) (*models.Category, error) {
	category := models.NewCategory(strings.TrimSpace(req.Name))
	ls.store.New(category)
	if err := commit(ctx, ls.store); err != nil {
		return nil, err
	}
	return category, nil
}

func (ls *LabelService) CreateTheme(ctx context.Context, req models.CreateLabelRequest) (*models.Theme, error) {
	theme := models.NewTheme(strings.TrimSpace(req.Name))
	ls.store.New(theme)
	if err := commit(ctx, ls.store); err != nil {
		return nil, err
	}
	return theme, nil
}
