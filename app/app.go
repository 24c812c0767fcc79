package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/dmaretti/quick-forms/config"
	"github.com/dmaretti/quick-forms/forms"
	"github.com/dmaretti/quick-forms/store"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Store *store.Store
	Forms forms.Service
}
