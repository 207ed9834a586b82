// Package services contains the application services of the Nearby client:
// authentication, the post feed, and profile viewing with privacy gating.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nearby/internal/client/api"
	"github.com/dmitrijs2005/nearby/internal/client/cache"
	"github.com/dmitrijs2005/nearby/internal/client/models"
	"github.com/dmitrijs2005/nearby/internal/client/session"
	"github.com/dmitrijs2005/nearby/internal/logging"
)

// AuthService owns the session lifecycle.
//
// Contract:
//   - Login: exchange credentials for a token and resolve the current user.
//   - Logout: clear the session; every session-scoped cache is invalidated.
//   - CurrentUser: re-resolve the authenticated user's profile.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout()
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	api      api.Client
	sessions *session.Store
	cache    *cache.Cache
	log      logging.Logger
}

func NewAuthService(c api.Client, sessions *session.Store, store *cache.Cache, log logging.Logger) AuthService {
	return &authService{api: c, sessions: sessions, cache: store, log: log.With("component", "auth")}
}

// Login authenticates and installs the session. The token is installed
// before the current-user fetch so that fetch can authenticate with it; if
// resolving the user fails the half-built session is torn down again.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", api.ErrValidation)
	}

	// A leftover session must not leak into the new one.
	a.sessions.Clear()

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.sessions.Set(token, nil)

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		a.sessions.Clear()
		return nil, fmt.Errorf("resolving current user: %w", err)
	}

	a.sessions.Set(token, user)
	a.cache.MergeUser(user)
	a.log.Info(ctx, "logged in", "user", user.ID)
	return user, nil
}

// Logout clears the session; the store's hooks wipe the entity cache and
// the comment engine. Safe to call when not logged in.
func (a *authService) Logout() {
	a.sessions.Clear()
}

// CurrentUser refetches /user/me, refreshing both the session and the cache.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, ok := a.sessions.Current()
	if !ok {
		return nil, api.ErrUnauthorized
	}
	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	a.sessions.Set(sess.Token, user)
	a.cache.MergeUser(user)
	return user, nil
}
