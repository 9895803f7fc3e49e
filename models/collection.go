package models

// Collection is a type-indexed result set. Each kind keeps its own typed slice,
// so mixed listings never go through an untyped map.
type Collection struct {
	Users      []*User     `json:"users,omitempty"`
	Poems      []*Poem     `json:"poems,omitempty"`
	Categories []*Category `json:"categories,omitempty"`
	Themes     []*Theme    `json:"themes,omitempty"`
	Comments   []*Comment  `json:"comments,omitempty"`
}

func (c *Collection) Add(e Entity) {
	switch v := e.(type) {
	case *User:
		c.Users = append(c.Users, v)
	case *Poem:
		c.Poems = append(c.Poems, v)
	case *Category:
		c.Categories = append(c.Categories, v)
	case *Theme:
		c.Themes = append(c.Themes, v)
	case *Comment:
		c.Comments = append(c.Comments, v)
	}
}

func (c *Collection) Len() int {
	return len(c.Users) + len(c.Poems) + len(c.Categories) + len(c.Themes) + len(c.Comments)
}

// Entities flattens the collection in dependency order
func (c *Collection) Entities() []Entity {
	out := make([]Entity, 0, c.Len())
	for _, u := range c.Users {
		out = append(out, u)
	}
	for _, cat := range c.Categories {
		out = append(out, cat)
	}
	for _, t := range c.Themes {
		out = append(out, t)
	}
	for _, p := range c.Poems {
		out = append(out, p)
	}
	for _, cm := range c.Comments {
		out = append(out, cm)
	}
	return out
}

// Keys returns the "Kind.id" key of every entity
func (c *Collection) Keys() []string {
	keys := make([]string, 0, c.Len())
	for _, e := range c.Entities() {
		keys = append(keys, e.Key())
	}
	return keys
}

// Index maps "Kind.id" keys to entities
func (c *Collection) Index() map[string]Entity {
	idx := make(map[string]Entity, c.Len())
	for _, e := range c.Entities() {
		idx[e.Key()] = e
	}
	return idx
}

// Redacted returns a copy in which every entity is redacted
func (c *Collection) Redacted() *Collection {
	out := &Collection{}
	for _, e := range c.Entities() {
		out.Add(e.Redacted())
	}
	return out
}
