package database

import "poetry/models"

// identityMap keeps one in-memory representation per "Kind.id" key for the
// lifetime of a Repository
type identityMap map[string]models.Entity

// merge returns the canonical instance for e. A clean instance is refreshed
// with the loaded values; a staged one keeps its pending in-memory changes.
func (m identityMap) merge(e models.Entity, staged bool) models.Entity {
	key := e.Key()
	current, ok := m[key]
	if !ok {
		m[key] = e
		return e
	}
	if !staged {
		overwrite(current, e)
	}
	return current
}

func (m identityMap) put(e models.Entity) {
	m[e.Key()] = e
}

func (m identityMap) forget(key string) {
	delete(m, key)
}

func overwrite(dst, src models.Entity) {
	switch d := dst.(type) {
	case *models.User:
		*d = *src.(*models.User)
	case *models.Poem:
		*d = *src.(*models.Poem)
	case *models.Category:
		*d = *src.(*models.Category)
	case *models.Theme:
		*d = *src.(*models.Theme)
	case *models.Comment:
		*d = *src.(*models.Comment)
	}
}
