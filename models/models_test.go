package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindUser, KindCategory, KindTheme, KindPoem, KindComment}, Kinds())

	k, err := ParseKind("Poem")
	require.NoError(t, err)
	assert.Equal(t, KindPoem, k)

	_, err = ParseKind("Stanza")
	assert.Error(t, err)

	assert.Equal(t, "User.42", KeyOf(KindUser, "42"))
}

func TestNewEntities(t *testing.T) {
	author := NewUser("ada", "ada@x.io")
	poem := NewPoem(author, "T", "B")
	like := NewLike(poem, author)

	assert.NotEmpty(t, author.ID)
	assert.NotEqual(t, author.ID, poem.ID)
	assert.Equal(t, author.ID, poem.UserID)
	assert.Equal(t, author.CreatedAt.Location(), poem.CreatedAt.Location())
	assert.Equal(t, "Poem."+poem.ID, poem.Key())
	assert.Equal(t, "Like."+poem.ID+"."+author.ID, like.Key())
	assert.NotNil(t, poem.Likes)
	assert.NotNil(t, poem.Comments)
}

func TestPasswords(t *testing.T) {
	u := NewUser("ada", "ada@x.io")
	assert.False(t, u.CheckPassword(""), "unset password never matches")

	require.NoError(t, u.SetPassword("secret-pass", bcrypt.MinCost))
	assert.NotEqual(t, "secret-pass", u.Password)
	assert.True(t, u.CheckPassword("secret-pass"))
	assert.False(t, u.CheckPassword("wrong"))

	hash, err := HashPassword("secret-pass", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestRedacted(t *testing.T) {
	ada := NewUser("ada", "ada@x.io")
	ada.Password = "hash"
	bob := NewUser("bob", "bob@x.io")
	bob.Password = "hash"
	poem := NewPoem(ada, "T", "B")
	poem.Likes = append(poem.Likes, bob)

	u := ada.Redacted().(*User)
	assert.Empty(t, u.Password)
	assert.Equal(t, "hash", ada.Password, "original is untouched")

	p := poem.Redacted().(*Poem)
	require.Len(t, p.Likes, 1)
	assert.Empty(t, p.Likes[0].Password)
	assert.Equal(t, "hash", bob.Password)

	c := &Collection{}
	c.Add(ada)
	c.Add(poem)
	for _, e := range c.Redacted().Entities() {
		if ru, ok := e.(*User); ok {
			assert.Empty(t, ru.Password)
		}
	}
}

func TestCollection(t *testing.T) {
	ada := NewUser("ada", "ada@x.io")
	poem := NewPoem(ada, "T", "B")
	category := NewCategory("Odes")

	c := &Collection{}
	c.Add(poem)
	c.Add(category)
	c.Add(ada)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{ada.Key(), category.Key(), poem.Key()}, c.Keys())
	assert.Same(t, poem, c.Index()[poem.Key()])
}

func TestDecodeUserPatch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, p UserPatch)
	}{
		{
			name: "Email only",
			body: `{"email":"ada@poems.io"}`,
			check: func(t *testing.T, p UserPatch) {
				require.NotNil(t, p.Email)
				assert.Equal(t, "ada@poems.io", *p.Email)
				assert.Nil(t, p.Username)
				assert.False(t, p.Empty())
			},
		},
		{
			name:  "Empty object",
			body:  `{}`,
			check: func(t *testing.T, p UserPatch) { assert.True(t, p.Empty()) },
		},
		{name: "Id is not patchable", body: `{"id":"x"}`, wantErr: true},
		{name: "Timestamps are not patchable", body: `{"created_at":"2024-01-01T00:00:00Z"}`, wantErr: true},
		{name: "Trailing data", body: `{"email":"a@b.io"} {}`, wantErr: true},
		{name: "Not JSON", body: `email=x`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeUserPatch([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPatch)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestPoemPatch(t *testing.T) {
	ada := NewUser("ada", "ada@x.io")
	poem := NewPoem(ada, "T", "B")
	category := "cat-1"
	poem.CategoryID = &category

	_, err := DecodePoemPatch([]byte(`{"user_id":"someone-else"}`))
	assert.ErrorIs(t, err, ErrInvalidPatch)

	p, err := DecodePoemPatch([]byte(`{"title":"New","category_id":"","theme_id":"theme-1"}`))
	require.NoError(t, err)
	p.ApplyTo(poem)

	assert.Equal(t, "New", poem.Title)
	assert.Equal(t, "B", poem.Body)
	assert.Nil(t, poem.CategoryID)
	require.NotNil(t, poem.ThemeID)
	assert.Equal(t, "theme-1", *poem.ThemeID)
	assert.Equal(t, ada.ID, poem.UserID)
}

func TestUserPatchApply(t *testing.T) {
	u := NewUser("ada", "ada@x.io")
	require.NoError(t, u.SetPassword("first-pass", bcrypt.MinCost))

	name := "ada_l"
	password := "second-pass"
	require.NoError(t, UserPatch{Username: &name, Password: &password}.ApplyTo(u, bcrypt.MinCost))

	assert.Equal(t, "ada_l", u.Username)
	assert.Equal(t, "ada@x.io", u.Email)
	assert.True(t, u.CheckPassword("second-pass"))
	assert.False(t, u.CheckPassword("first-pass"))
}
