package database

import (
	"context"

	"poetry/models"
)

// relationBatch bounds the number of ids bound into one IN clause
const relationBatch = 500

// loadPoemRelations fills Likes and Comments for freshly scanned poems
func (r *Repository) loadPoemRelations(ctx context.Context, found []models.Entity) error {
	poems := make(map[string]*models.Poem, len(found))
	ids := make([]any, 0, len(found))
	for _, e := range found {
		p := e.(*models.Poem)
		poems[p.ID] = p
		ids = append(ids, p.ID)
	}

	for start := 0; start < len(ids); start += relationBatch {
		end := min(start+relationBatch, len(ids))
		batch := ids[start:end]

		if err := r.loadLikers(ctx, poems, batch); err != nil {
			return err
		}
		if err := r.loadComments(ctx, poems, batch); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) loadLikers(ctx context.Context, poems map[string]*models.Poem, ids []any) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.poem_id, u.id, u.username, u.email, u.password, u.created_at, u.updated_at
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.poem_id IN (`+placeholders(len(ids))+`)
		ORDER BY l.created_at ASC
	`, ids...)
	if err != nil {
		return classify(err)
	}
	defer rows.Close()

	for rows.Next() {
		var poemID string
		e, err := scanUser(prefixed{s: rows, head: []any{&poemID}})
		if err != nil {
			return classify(err)
		}
		user := r.track(e).(*models.User)
		if p, ok := poems[poemID]; ok {
			p.Likes = append(p.Likes, user)
		}
	}

	return classify(rows.Err())
}

func (r *Repository) loadComments(ctx context.Context, poems map[string]*models.Poem, ids []any) error {
	found, err := r.scanAll(ctx, scanComment, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE poem_id IN (`+placeholders(len(ids))+`)
		ORDER BY created_at ASC
	`, ids...)
	if err != nil {
		return err
	}

	for _, e := range found {
		comment := r.track(e).(*models.Comment)
		if p, ok := poems[comment.PoemID]; ok {
			p.Comments = append(p.Comments, comment)
		}
	}

	return nil
}
