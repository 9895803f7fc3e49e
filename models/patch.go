package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidPatch = errors.New("invalid patch")

// UserPatch lists the user fields a caller may change.
// id, created_at and updated_at are not patchable.
type UserPatch struct {
	Username *string `json:"username" validate:"omitnil,username,max=64"`
	Email    *string `json:"email" validate:"omitnil,email,max=254"`
	Password *string `json:"password" validate:"omitnil,min=8,max=72"`
}

func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil
}

// ApplyTo copies the set fields onto u, hashing a new password
func (p UserPatch) ApplyTo(u *User, cost int) error {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		if err := u.SetPassword(*p.Password, cost); err != nil {
			return err
		}
	}
	return nil
}

// PoemPatch lists the poem fields a caller may change. The author is fixed at
// creation. An empty category_id or theme_id clears the reference.
type PoemPatch struct {
	Title      *string `json:"title" validate:"omitnil,nonblank,max=200"`
	Body       *string `json:"body" validate:"omitnil,nonblank"`
	CategoryID *string `json:"category_id" validate:"omitnil,max=36"`
	ThemeID    *string `json:"theme_id" validate:"omitnil,max=36"`
}

func (p PoemPatch) Empty() bool {
	return p.Title == nil && p.Body == nil && p.CategoryID == nil && p.ThemeID == nil
}

func (p PoemPatch) ApplyTo(poem *Poem) {
	if p.Title != nil {
		poem.Title = *p.Title
	}
	if p.Body != nil {
		poem.Body = *p.Body
	}
	if p.CategoryID != nil {
		poem.CategoryID = optionalRef(*p.CategoryID)
	}
	if p.ThemeID != nil {
		poem.ThemeID = optionalRef(*p.ThemeID)
	}
}

func optionalRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// DecodeUserPatch parses a JSON patch, rejecting any field UserPatch does not name
func DecodeUserPatch(data []byte) (UserPatch, error) {
	var p UserPatch
	err := decodeStrict(data, &p)
	return p, err
}

// DecodePoemPatch parses a JSON patch, rejecting any field PoemPatch does not name
func DecodePoemPatch(data []byte) (PoemPatch, error) {
	var p PoemPatch
	err := decodeStrict(data, &p)
	return p, err
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected trailing data", ErrInvalidPatch)
	}
	return nil
}
