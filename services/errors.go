package services

import (
	"errors"
	"fmt"

	"poetry/database"
	"poetry/models"
)

// Common service-level errors
var (
	// Lookup errors; errors.Is(err, database.ErrNotFound) holds for each
	ErrUserNotFound = fmt.Errorf("user %w", database.ErrNotFound)
	ErrPoemNotFound = fmt.Errorf("poem %w", database.ErrNotFound)
	ErrLikeNotFound = fmt.Errorf("like %w", database.ErrNotFound)

	// Reference errors; errors.Is(err, database.ErrConstraintViolation) holds for each
	ErrInvalidAuthor error = &database.ConstraintError{
		Kind:   database.ConstraintForeignKey,
		Target: "poems.user_id",
		Err:    errInvalidUserID,
	}
	ErrInvalidCommenter error = &database.ConstraintError{
		Kind:   database.ConstraintForeignKey,
		Target: "comments.user_id",
		Err:    errInvalidUserID,
	}

	ErrInvalidPatch = models.ErrInvalidPatch
)

var errInvalidUserID = errors.New("invalid user_id")
