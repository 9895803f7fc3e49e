package database

import (
	"context"
)

// ==================== LIKE OPERATIONS ====================

// HasLike reports whether userID currently likes poemID
func (r *Repository) HasLike(ctx context.Context, poemID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM likes WHERE poem_id = ? AND user_id = ?)
	`, poemID, userID).Scan(&exists)
	if err != nil {
		return false, classify(err)
	}
	return exists, nil
}

// CountLikes returns the number of distinct users who like poemID
func (r *Repository) CountLikes(ctx context.Context, poemID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE poem_id = ?`, poemID).Scan(&n)
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// CountUserLikes returns how many of userID's likes are on poemID (0 or 1)
func (r *Repository) CountUserLikes(ctx context.Context, poemID, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM likes WHERE poem_id = ? AND user_id = ?
	`, poemID, userID).Scan(&n)
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// LikedPoemIDs returns the poems userID likes, restricted to poemIDs when any are given
func (r *Repository) LikedPoemIDs(ctx context.Context, userID string, poemIDs ...string) ([]string, error) {
	query := `SELECT poem_id FROM likes WHERE user_id = ?`
	args := []any{userID}
	if len(poemIDs) > 0 {
		query += ` AND poem_id IN (` + placeholders(len(poemIDs)) + `)`
		for _, id := range poemIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify(err)
		}
		ids = append(ids, id)
	}

	return ids, classify(rows.Err())
}
