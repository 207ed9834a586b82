// Package cli implements the interactive terminal client on top of the
// client services.
package cli

import (
	"bufio"
	"os"

	"github.com/dmitrijs2005/nearby/internal/client/api"
	"github.com/dmitrijs2005/nearby/internal/client/cache"
	"github.com/dmitrijs2005/nearby/internal/client/comments"
	"github.com/dmitrijs2005/nearby/internal/client/config"
	"github.com/dmitrijs2005/nearby/internal/client/guard"
	"github.com/dmitrijs2005/nearby/internal/client/services"
	"github.com/dmitrijs2005/nearby/internal/client/session"
	"github.com/dmitrijs2005/nearby/internal/logging"
)

// App wires the session store, the entity cache, the comment engine and the
// services together behind a REPL.
type App struct {
	config   *config.Config
	sessions *session.Store
	cache    *cache.Cache
	api      api.Client
	auth     services.AuthService
	feed     services.FeedService
	profiles services.ProfileService
	threads  *comments.Engine
	reader   *bufio.Reader
	log      logging.Logger
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	sessions := session.NewStore()
	store := cache.New()
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, sessions, cfg.RequestTimeout, log)
	g := guard.New()
	threads := comments.NewEngine(apiClient, store, sessions, g, log)

	// Logging out wipes everything scoped to the session.
	sessions.OnClear(store.Reset)
	sessions.OnClear(threads.Reset)

	return &App{
		config:   cfg,
		sessions: sessions,
		cache:    store,
		api:      apiClient,
		auth:     services.NewAuthService(apiClient, sessions, store, log),
		feed:     services.NewFeedService(apiClient, sessions, store, log),
		profiles: services.NewProfileService(apiClient, sessions, store, g, log),
		threads:  threads,
		reader:   bufio.NewReader(os.Stdin),
		log:      log,
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Token()
	return ok
}
