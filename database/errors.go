package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound marks a write against a row that does not exist.
	// Reads report absence as nil or zero instead.
	ErrNotFound = errors.New("not found")

	ErrConstraintViolation = errors.New("constraint violation")
	ErrConnection          = errors.New("database connection failure")
	ErrUnknownKind         = errors.New("unknown entity kind")
)

type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintCheck      ConstraintKind = "check"
	// ConstraintField is a field rejected by validation before the database is touched
	ConstraintField ConstraintKind = "field"
)

// ConstraintError is returned by Save when a staged change breaks an integrity rule.
// errors.Is(err, ErrConstraintViolation) holds for every ConstraintError.
type ConstraintError struct {
	Kind ConstraintKind
	// Target is the offending table/column list when the database names it,
	// e.g. "likes.poem_id, likes.user_id" or "Poem.title"
	Target string
	Err    error
}

func (e *ConstraintError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s constraint violation on %s: %v", e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s constraint violation: %v", e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// IsDuplicate reports whether err is a uniqueness violation on table
func IsDuplicate(err error, table string) bool {
	var ce *ConstraintError
	if !errors.As(err, &ce) || ce.Kind != ConstraintUnique {
		return false
	}
	return table == "" || strings.HasPrefix(ce.Target, table+".")
}

// classify maps driver errors onto the package taxonomy
func classify(err error) error {
	if err == nil {
		return nil
	}

	var ce *ConstraintError
	if errors.As(err, &ce) {
		return err
	}

	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code {
		case sqlite3.ErrConstraint:
			return &ConstraintError{
				Kind:   constraintKind(se.ExtendedCode),
				Target: constraintTarget(se.Error()),
				Err:    err,
			}
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return fmt.Errorf("%w: %w", ErrConnection, err)
		}
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return err
}

func constraintKind(code sqlite3.ErrNoExtended) ConstraintKind {
	switch code {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return ConstraintUnique
	case sqlite3.ErrConstraintForeignKey:
		return ConstraintForeignKey
	case sqlite3.ErrConstraintNotNull:
		return ConstraintNotNull
	default:
		return ConstraintCheck
	}
}

// "UNIQUE constraint failed: likes.poem_id, likes.user_id" -> "likes.poem_id, likes.user_id"
func constraintTarget(msg string) string {
	_, target, found := strings.Cut(msg, "failed: ")
	if !found {
		return ""
	}
	return strings.TrimSpace(target)
}
