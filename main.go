package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmaretti/quick-forms/app"
	"github.com/dmaretti/quick-forms/config"
	"github.com/dmaretti/quick-forms/database"
	"github.com/dmaretti/quick-forms/forms"
	"github.com/dmaretti/quick-forms/httpx"
	"github.com/dmaretti/quick-forms/log"
	"github.com/dmaretti/quick-forms/routes"
	"github.com/dmaretti/quick-forms/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	st := store.New(db)

	app := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Store:        st,
		Forms: forms.Service{
			Questions: st,
			State:     st,
			Responses: st,
		},
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
