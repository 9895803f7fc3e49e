package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"poetry/models"
	"poetry/validator"
)

type op int

const (
	opWrite op = iota
	opRemove
	// opTouch only advances updated_at on an existing row
	opTouch
)

type change struct {
	op     op
	record models.Record
}

// Repository is the storage facade for one request or unit of work. It stages
// writes in memory until Save commits them in a single transaction, and keeps
// an identity map so a stored row is represented by one instance per session.
// A Repository is not safe for concurrent use; create one per goroutine.
type Repository struct {
	db        *DB
	validator *validator.Validator
	logger    *slog.Logger

	staged   []change
	position map[string]int
	identity identityMap
}

type Option func(*Repository)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithValidator(v *validator.Validator) Option {
	return func(r *Repository) {
		if v != nil {
			r.validator = v
		}
	}
}

func NewRepository(db *DB, opts ...Option) *Repository {
	r := &Repository{
		db:       db,
		logger:   slog.Default(),
		position: make(map[string]int),
		identity: make(identityMap),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.validator == nil {
		r.validator = validator.New()
	}
	return r
}

// ==================== READS ====================

// All returns every persisted entity of the given kinds, or of every kind when
// none are given. Staged changes are not visible until saved.
func (r *Repository) All(ctx context.Context, kinds ...models.Kind) (*models.Collection, error) {
	if len(kinds) == 0 {
		kinds = models.Kinds()
	}

	out := &models.Collection{}
	for _, kind := range kinds {
		found, err := r.query(ctx, kind, "")
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			out.Add(e)
		}
	}

	return out, nil
}

// Get returns the entity of kind with the given id, or nil if there is none
func (r *Repository) Get(ctx context.Context, kind models.Kind, id string) (models.Entity, error) {
	found, err := r.query(ctx, kind, "WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	return getAs[*models.User](ctx, r, models.KindUser, id)
}

func (r *Repository) GetPoem(ctx context.Context, id string) (*models.Poem, error) {
	return getAs[*models.Poem](ctx, r, models.KindPoem, id)
}

func (r *Repository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return getAs[*models.Category](ctx, r, models.KindCategory, id)
}

func (r *Repository) GetTheme(ctx context.Context, id string) (*models.Theme, error) {
	return getAs[*models.Theme](ctx, r, models.KindTheme, id)
}

func (r *Repository) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	return getAs[*models.Comment](ctx, r, models.KindComment, id)
}

func getAs[T models.Entity](ctx context.Context, r *Repository, kind models.Kind, id string) (T, error) {
	var zero T
	e, err := r.Get(ctx, kind, id)
	if err != nil || e == nil {
		return zero, err
	}
	return e.(T), nil
}

// Count returns the number of persisted entities of the given kinds, or of
// every kind when none are given
func (r *Repository) Count(ctx context.Context, kinds ...models.Kind) (int, error) {
	if len(kinds) == 0 {
		kinds = models.Kinds()
	}

	total := 0
	for _, kind := range kinds {
		t, err := tableFor(kind)
		if err != nil {
			return 0, err
		}
		var n int
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&n); err != nil {
			return 0, classify(err)
		}
		total += n
	}

	return total, nil
}

func (r *Repository) query(ctx context.Context, kind models.Kind, where string, args ...any) ([]models.Entity, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	found, err := r.scanAll(ctx, t.scan, "SELECT "+t.columns+" FROM "+t.name+" "+where, args...)
	if err != nil {
		return nil, err
	}

	if kind == models.KindPoem {
		if err := r.loadPoemRelations(ctx, found); err != nil {
			return nil, err
		}
	}

	for i, e := range found {
		found[i] = r.track(e)
	}
	return found, nil
}

func (r *Repository) scanAll(ctx context.Context, scan func(scanner) (models.Entity, error), query string, args ...any) ([]models.Entity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	found := make([]models.Entity, 0)
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, classify(err)
		}
		found = append(found, e)
	}

	return found, classify(rows.Err())
}

// track routes a loaded entity through the identity map
func (r *Repository) track(e models.Entity) models.Entity {
	_, staged := r.position[e.Key()]
	return r.identity.merge(e, staged)
}

// ==================== STAGING ====================

// New stages rec to be written by the next Save. Staging the same record
// again, or a different instance with the same key, replaces the earlier entry.
func (r *Repository) New(rec models.Record) {
	if isNil(rec) {
		return
	}
	r.stage(change{op: opWrite, record: rec})
	if e, ok := rec.(models.Entity); ok {
		r.identity.put(e)
	}
}

// Delete stages removal of rec. Removing a row that does not exist is a no-op.
func (r *Repository) Delete(rec models.Record) {
	if isNil(rec) {
		return
	}
	r.stage(change{op: opRemove, record: rec})
}

// Touch stages an updated_at bump for e without rewriting any other column.
// A write or removal already staged for e takes precedence.
func (r *Repository) Touch(e models.Entity) {
	if isNil(e) {
		return
	}
	if _, ok := r.position[e.Key()]; ok {
		return
	}
	r.stage(change{op: opTouch, record: e})
}

// Pending reports how many changes are staged
func (r *Repository) Pending() int {
	return len(r.staged)
}

// Rollback discards every staged change
func (r *Repository) Rollback() {
	r.staged = nil
	r.position = make(map[string]int)
}

func (r *Repository) stage(c change) {
	key := c.record.Key()
	if i, ok := r.position[key]; ok {
		r.staged[i] = c
		return
	}
	r.position[key] = len(r.staged)
	r.staged = append(r.staged, c)
}

func isNil(rec models.Record) bool {
	if rec == nil {
		return true
	}
	v := reflect.ValueOf(rec)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// ==================== COMMIT ====================

// stamp is a timestamp write-back applied only once the transaction commits
type stamp struct {
	meta    *models.Base
	like    *models.Like
	created time.Time
	updated time.Time
}

func (s stamp) settle() {
	if s.like != nil {
		s.like.CreatedAt = s.created
		return
	}
	s.meta.CreatedAt = s.created
	s.meta.UpdatedAt = s.updated
}

// Save commits every staged change in one transaction. On failure nothing is
// committed, the staged changes are kept for a retry or Rollback, and the
// in-memory entities are left untouched.
func (r *Repository) Save(ctx context.Context) error {
	if len(r.staged) == 0 {
		return nil
	}

	for _, c := range r.staged {
		if c.op != opWrite {
			continue
		}
		if err := r.validator.Validate(c.record); err != nil {
			return fieldError(c.record, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}

	now := models.Now()
	stamps := make([]stamp, 0, len(r.staged))
	for _, c := range r.ordered() {
		s, err := r.apply(ctx, tx, c, now)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Warn("rollback failed", "error", rbErr)
			}
			r.logger.Debug("save rolled back", "changes", len(r.staged), "error", err)
			return classify(err)
		}
		if s != nil {
			stamps = append(stamps, *s)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}

	for _, s := range stamps {
		s.settle()
	}
	for _, c := range r.staged {
		if c.op == opRemove {
			r.identity.forget(c.record.Key())
		}
	}

	r.logger.Debug("save committed", "changes", len(r.staged))
	r.Rollback()
	return nil
}

// ordered puts removals first, children before parents, then writes with
// parents before children
func (r *Repository) ordered() []change {
	out := append([]change(nil), r.staged...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.op == opRemove) != (b.op == opRemove) {
			return a.op == opRemove
		}
		if a.op == opRemove {
			return rankOf(a.record) > rankOf(b.record)
		}
		return rankOf(a.record) < rankOf(b.record)
	})
	return out
}

func (r *Repository) apply(ctx context.Context, tx *sql.Tx, c change, now time.Time) (*stamp, error) {
	if c.op == opRemove {
		query, args, err := deleteStatement(c.record)
		if err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return nil, err
	}

	if c.op == opTouch {
		return r.touch(ctx, tx, c.record, now)
	}

	s := &stamp{created: now, updated: now}
	switch v := c.record.(type) {
	case *models.Like:
		s.like = v
		if !v.CreatedAt.IsZero() {
			s.created = v.CreatedAt
		}
	case models.Entity:
		s.meta = v.Meta()
		if !s.meta.CreatedAt.IsZero() {
			s.created = s.meta.CreatedAt
		}
		if s.meta.UpdatedAt.After(s.updated) {
			s.updated = s.meta.UpdatedAt
		}
		if s.created.After(s.updated) {
			s.updated = s.created
		}
	}

	query, args, err := writeStatement(c.record, s.created, s.updated)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	// created_at is never rewritten, so an existing row keeps its own value
	if s.meta != nil {
		t, err := tableFor(c.record.Kind())
		if err != nil {
			return nil, err
		}
		err = tx.QueryRowContext(ctx, "SELECT created_at FROM "+t.name+" WHERE id = ?", s.meta.ID).Scan(&s.created)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *Repository) touch(ctx context.Context, tx *sql.Tx, rec models.Record, now time.Time) (*stamp, error) {
	e, ok := rec.(models.Entity)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, rec)
	}
	t, err := tableFor(e.Kind())
	if err != nil {
		return nil, err
	}

	meta := e.Meta()
	updated := now
	if meta.UpdatedAt.After(updated) {
		updated = meta.UpdatedAt
	}

	res, err := tx.ExecContext(ctx, "UPDATE "+t.name+" SET updated_at = ? WHERE id = ?", updated, meta.ID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}
	return &stamp{meta: meta, created: meta.CreatedAt, updated: updated}, nil
}

func fieldError(rec models.Record, err error) error {
	target := rec.Kind().String()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		target += "." + verrs[0].Field
	}
	return &ConstraintError{Kind: ConstraintField, Target: target, Err: err}
}
