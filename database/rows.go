package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"poetry/models"
)

type scanner interface {
	Scan(dest ...any) error
}

// prefixed lets a row scanner read leading join columns before the entity columns
type prefixed struct {
	s    scanner
	head []any
}

func (p prefixed) Scan(dest ...any) error {
	return p.s.Scan(append(p.head, dest...)...)
}

type table struct {
	name    string
	columns string
	scan    func(scanner) (models.Entity, error)
	rank    int
}

const (
	userColumns    = `id, username, email, password, created_at, updated_at`
	poemColumns    = `id, title, body, user_id, category_id, theme_id, created_at, updated_at`
	labelColumns   = `id, name, created_at, updated_at`
	commentColumns = `id, poem_id, user_id, body, created_at, updated_at`
)

// rank orders writes so parents are inserted before children
var tables = map[models.Kind]table{
	models.KindUser:     {name: "users", columns: userColumns, scan: scanUser, rank: 0},
	models.KindCategory: {name: "categories", columns: labelColumns, scan: scanCategory, rank: 1},
	models.KindTheme:    {name: "themes", columns: labelColumns, scan: scanTheme, rank: 2},
	models.KindPoem:     {name: "poems", columns: poemColumns, scan: scanPoem, rank: 3},
	models.KindComment:  {name: "comments", columns: commentColumns, scan: scanComment, rank: 4},
}

const likeRank = 5

func tableFor(kind models.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t, nil
}

func rankOf(rec models.Record) int {
	if t, ok := tables[rec.Kind()]; ok {
		return t.rank
	}
	return likeRank
}

func scanUser(s scanner) (models.Entity, error) {
	var u models.User
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanPoem(s scanner) (models.Entity, error) {
	var p models.Poem
	var categoryID, themeID sql.NullString
	if err := s.Scan(
		&p.ID, &p.Title, &p.Body, &p.UserID, &categoryID, &themeID,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.String
	}
	if themeID.Valid {
		p.ThemeID = &themeID.String
	}
	p.Likes = []*models.User{}
	p.Comments = []*models.Comment{}
	return &p, nil
}

func scanCategory(s scanner) (models.Entity, error) {
	var c models.Category
	if err := s.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanTheme(s scanner) (models.Entity, error) {
	var t models.Theme
	if err := s.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanComment(s scanner) (models.Entity, error) {
	var c models.Comment
	if err := s.Scan(&c.ID, &c.PoemID, &c.UserID, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// writeStatement builds the insert-or-update for rec. Columns that are fixed
// at creation (id, created_at, poem author, comment owners) are never updated.
func writeStatement(rec models.Record, created, updated time.Time) (string, []any, error) {
	switch v := rec.(type) {
	case *models.User:
		return `
			INSERT INTO users (id, username, email, password, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				username = excluded.username,
				email = excluded.email,
				password = excluded.password,
				updated_at = excluded.updated_at
		`, []any{v.ID, v.Username, v.Email, v.Password, created, updated}, nil

	case *models.Poem:
		return `
			INSERT INTO poems (id, title, body, user_id, category_id, theme_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				body = excluded.body,
				category_id = excluded.category_id,
				theme_id = excluded.theme_id,
				updated_at = excluded.updated_at
		`, []any{v.ID, v.Title, v.Body, v.UserID, nullable(v.CategoryID), nullable(v.ThemeID), created, updated}, nil

	case *models.Category:
		return `
			INSERT INTO categories (id, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				updated_at = excluded.updated_at
		`, []any{v.ID, v.Name, created, updated}, nil

	case *models.Theme:
		return `
			INSERT INTO themes (id, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				updated_at = excluded.updated_at
		`, []any{v.ID, v.Name, created, updated}, nil

	case *models.Comment:
		return `
			INSERT INTO comments (id, poem_id, user_id, body, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				body = excluded.body,
				updated_at = excluded.updated_at
		`, []any{v.ID, v.PoemID, v.UserID, v.Body, created, updated}, nil

	case *models.Like:
		// No conflict clause: a duplicate pair must fail loudly
		return `INSERT INTO likes (poem_id, user_id, created_at) VALUES (?, ?, ?)`,
			[]any{v.PoemID, v.UserID, created}, nil
	}

	return "", nil, fmt.Errorf("%w: %T", ErrUnknownKind, rec)
}

func deleteStatement(rec models.Record) (string, []any, error) {
	if like, ok := rec.(*models.Like); ok {
		return `DELETE FROM likes WHERE poem_id = ? AND user_id = ?`, []any{like.PoemID, like.UserID}, nil
	}

	e, ok := rec.(models.Entity)
	if !ok {
		return "", nil, fmt.Errorf("%w: %T", ErrUnknownKind, rec)
	}
	t, err := tableFor(e.Kind())
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM " + t.name + " WHERE id = ?", []any{e.Meta().ID}, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
