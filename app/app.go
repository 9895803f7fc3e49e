package app

import (
	"log/slog"

	"poetry/database"
	"poetry/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	DB         *database.DB
	Validator  *validator.Validator
	Logger     *slog.Logger
	BcryptCost int
}

// New creates a new App instance with all dependencies
func New(db *database.DB, logger *slog.Logger, bcryptCost int) *App {
	return &App{
		DB:         db,
		Validator:  validator.New(),
		Logger:     logger,
		BcryptCost: bcryptCost,
	}
}

// Session opens a storage session for one request. Sessions are cheap and
// must not be shared between requests.
func (a *App) Session() *database.Repository {
	return database.NewRepository(a.DB,
		database.WithLogger(a.Logger),
		database.WithValidator(a.Validator),
	)
}
