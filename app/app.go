package app

import (
	"github.com/jmoiron/sqlx"
	"github.com/mbolis/formpilot/auth"
	"github.com/mbolis/formpilot/config"
	"github.com/mbolis/formpilot/database"
)

type App struct {
	DB        *sqlx.DB
	Auth      *auth.Service
	Tokens    *auth.Tokens
	Forms     *database.FormRepository
	Responses *database.ResponseRepository
	config.Config
}

// New builds the services and repositories backed by db.
func New(db *sqlx.DB, cfg config.Config) (App, error) {
	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)
	authService, err := auth.NewService(database.NewUserRepository(db), tokens, cfg.BcryptCost)
	if err != nil {
		return App{}, err
	}

	return App{
		DB:        db,
		Auth:      authService,
		Tokens:    tokens,
		Forms:     database.NewFormRepository(db),
		Responses: database.NewResponseRepository(db),
		Config:    cfg,
	}, nil
}
