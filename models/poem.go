package models

import "time"

type Poem struct {
	Base
	Title      string  `json:"title" validate:"required,nonblank,max=200"`
	Body       string  `json:"body" validate:"required,nonblank"`
	UserID     string  `json:"user_id" validate:"required"`
	CategoryID *string `json:"category_id,omitempty"`
	ThemeID    *string `json:"theme_id,omitempty"`

	// Loaded by the repository; never written through the poem row
	Likes    []*User    `json:"likes" validate:"-"`
	Comments []*Comment `json:"comments" validate:"-"`
}

func NewPoem(author *User, title, body string) *Poem {
	return &Poem{
		Base:     newBase(),
		Title:    title,
		Body:     body,
		UserID:   author.ID,
		Likes:    []*User{},
		Comments: []*Comment{},
	}
}

func (p *Poem) Kind() Kind {
	return KindPoem
}

func (p *Poem) Key() string {
	return KeyOf(KindPoem, p.ID)
}

func (p *Poem) Redacted() Entity {
	c := *p
	c.Likes = make([]*User, 0, len(p.Likes))
	for _, u := range p.Likes {
		c.Likes = append(c.Likes, u.Redacted().(*User))
	}
	c.Comments = append([]*Comment{}, p.Comments...)
	return &c
}

// LikedBy reports whether userID is in the loaded like collection
func (p *Poem) LikedBy(userID string) bool {
	for _, u := range p.Likes {
		if u.ID == userID {
			return true
		}
	}
	return false
}

type Category struct {
	Base
	Name string `json:"name" validate:"required,nonblank,max=100"`
}

func NewCategory(name string) *Category {
	return &Category{Base: newBase(), Name: name}
}

func (c *Category) Kind() Kind { return KindCategory }

func (c *Category) Key() string { return KeyOf(KindCategory, c.ID) }

func (c *Category) Redacted() Entity {
	cp := *c
	return &cp
}

type Theme struct {
	Base
	Name string `json:"name" validate:"required,nonblank,max=100"`
}

func NewTheme(name string) *Theme {
	return &Theme{Base: newBase(), Name: name}
}

func (t *Theme) Kind() Kind { return KindTheme }

func (t *Theme) Key() string { return KeyOf(KindTheme, t.ID) }

func (t *Theme) Redacted() Entity {
	cp := *t
	return &cp
}

type Comment struct {
	Base
	PoemID string `json:"poem_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Body   string `json:"body" validate:"required,nonblank"`
}

func NewComment(poem *Poem, author *User, body string) *Comment {
	return &Comment{
		Base:   newBase(),
		PoemID: poem.ID,
		UserID: author.ID,
		Body:   body,
	}
}

func (c *Comment) Kind() Kind { return KindComment }

func (c *Comment) Key() string { return KeyOf(KindComment, c.ID) }

func (c *Comment) Redacted() Entity {
	cp := *c
	return &cp
}

// Like records that a user likes a poem. The pair is its only identity.
type Like struct {
	PoemID    string    `json:"poem_id" validate:"required"`
	UserID    string    `json:"user_id" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLike(poem *Poem, user *User) *Like {
	return &Like{PoemID: poem.ID, UserID: user.ID, CreatedAt: Now()}
}

func (l *Like) Kind() Kind { return KindLike }

func (l *Like) Key() string {
	return KeyOf(KindLike, l.PoemID+"."+l.UserID)
}
