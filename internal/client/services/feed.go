package services

import (
	"context"

	"github.com/dmitrijs2005/nearby/internal/client/api"
	"github.com/dmitrijs2005/nearby/internal/client/cache"
	"github.com/dmitrijs2005/nearby/internal/client/models"
	"github.com/dmitrijs2005/nearby/internal/client/session"
	"github.com/dmitrijs2005/nearby/internal/logging"
)

// FeedService loads the generic post feed. The server already scopes the
// feed to what the viewer may see, so no client-side visibility filtering
// happens here; that policy applies to profile viewing only.
type FeedService interface {
	LoadFeed(ctx context.Context) ([]*models.Post, error)
	Feed() []*models.Post
}

type feedService struct {
	api      api.Client
	sessions *session.Store
	cache    *cache.Cache
	log      logging.Logger
}

func NewFeedService(c api.Client, sessions *session.Store, store *cache.Cache, log logging.Logger) FeedService {
	return &feedService{api: c, sessions: sessions, cache: store, log: log.With("component", "feed")}
}

// LoadFeed fetches the feed and merges posts and embedded authors into the
// cache. An unauthenticated session fails locally without a network call.
func (f *feedService) LoadFeed(ctx context.Context) ([]*models.Post, error) {
	if _, ok := f.sessions.Token(); !ok {
		return nil, api.ErrUnauthorized
	}
	posts, authors, err := f.api.Feed(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range authors {
		f.cache.MergeUser(u)
	}
	f.cache.SetFeed(posts)
	f.log.Debug(ctx, "feed loaded", "posts", len(posts))
	return f.cache.Feed(), nil
}

// Feed returns the cached feed in stored order.
func (f *feedService) Feed() []*models.Post {
	return f.cache.Feed()
}
