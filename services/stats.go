package services

import (
	"context"

	"poetry/models"
)

// Stats counts the stored entities of every kind, keyed by kind name
func Stats(ctx context.Context, store Store) (map[string]int, error) {
	stats := make(map[string]int, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		n, err := store.Count(ctx, kind)
		if err != nil {
			return nil, err
		}
		stats[kind.String()] = n
	}
	return stats, nil
}
