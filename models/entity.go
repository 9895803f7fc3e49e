package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind names a persisted record type
type Kind string

const (
	KindUser     Kind = "User"
	KindPoem     Kind = "Poem"
	KindCategory Kind = "Category"
	KindTheme    Kind = "Theme"
	KindComment  Kind = "Comment"
	KindLike     Kind = "Like"
)

// Kinds returns every entity kind the repository can list, in dependency order.
// Like is an association and is not listed on its own.
func Kinds() []Kind {
	return []Kind{KindUser, KindCategory, KindTheme, KindPoem, KindComment}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range append(Kinds(), KindLike) {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

func (k Kind) String() string {
	return string(k)
}

// KeyOf builds the composite "Kind.id" key
func KeyOf(kind Kind, id string) string {
	return string(kind) + "." + id
}

// Record is anything the repository can stage for writing
type Record interface {
	Kind() Kind
	Key() string
}

// Entity is a record with its own surrogate identity
type Entity interface {
	Record
	Meta() *Base
	// Redacted returns a copy that is safe to hand to external callers
	Redacted() Entity
}

// Base holds the attributes shared by every entity
type Base struct {
	ID        string    `json:"id" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) Meta() *Base {
	return b
}

func newBase() Base {
	now := Now()
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Now is the clock used for every stored timestamp.
// SQLite round-trips UTC times without the monotonic reading.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
