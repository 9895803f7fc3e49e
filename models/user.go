package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	Base
	Username string `json:"username" validate:"required,username,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	// Password is the bcrypt hash, never the plain text
	Password string `json:"password,omitempty" validate:"required"`
}

// NewUser builds a user with a fresh id. The password must be set before saving.
func NewUser(username, email string) *User {
	return &User{
		Base:     newBase(),
		Username: username,
		Email:    email,
	}
}

func (u *User) Kind() Kind {
	return KindUser
}

func (u *User) Key() string {
	return KeyOf(KindUser, u.ID)
}

func (u *User) Redacted() Entity {
	c := *u
	c.Password = ""
	return &c
}

// SetPassword hashes plain and stores the hash
func (u *User) SetPassword(plain string, cost int) error {
	hash, err := HashPassword(plain, cost)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// CheckPassword compares plain against the stored hash
func (u *User) CheckPassword(plain string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// HashPassword hashes the plain text password using bcrypt.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
