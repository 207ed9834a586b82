package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nearby/internal/client/api"
	"github.com/dmitrijs2005/nearby/internal/client/cache"
	"github.com/dmitrijs2005/nearby/internal/client/guard"
	"github.com/dmitrijs2005/nearby/internal/client/models"
	"github.com/dmitrijs2005/nearby/internal/client/session"
	"github.com/dmitrijs2005/nearby/internal/client/visibility"
	"github.com/dmitrijs2005/nearby/internal/logging"
)

// Profile is what a profile screen shows: the target user, their posts, and
// whether the post list is empty because the viewer may not see it.
type Profile struct {
	User       *models.User
	Posts      []*models.Post
	Restricted bool
}

// ProfileService composes profile viewing with the visibility policy and
// contact management.
type ProfileService interface {
	// LoadProfile fetches the target user and, when the visibility policy
	// allows it, their posts. A restricted profile yields an empty post list
	// without a posts fetch being issued at all.
	LoadProfile(ctx context.Context, userID string) (*Profile, error)

	// RequestFriend asks the target to grant contact status. A request for
	// a target that already has one in flight is rejected with ErrConflict
	// and performs nothing.
	RequestFriend(ctx context.Context, userID string) error

	// Contacts lists the users who granted contact status to the caller.
	Contacts(ctx context.Context) ([]*models.User, error)
}

type profileService struct {
	api      api.Client
	sessions *session.Store
	cache    *cache.Cache
	guard    *guard.Guard
	log      logging.Logger
}

func NewProfileService(c api.Client, sessions *session.Store, store *cache.Cache, g *guard.Guard, log logging.Logger) ProfileService {
	return &profileService{api: c, sessions: sessions, cache: store, guard: g, log: log.With("component", "profile")}
}

func (p *profileService) LoadProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", api.ErrValidation)
	}
	// The policy needs a resolved viewer, not just a token.
	sess, ok := p.sessions.Current()
	if !ok || sess.User == nil {
		return nil, api.ErrUnauthorized
	}

	target, err := p.api.UserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.cache.MergeUser(target)

	if !visibility.CanViewPosts(target, sess.User) {
		// The posts fetch is never issued for a restricted profile.
		p.cache.SetUserPosts(userID, nil)
		p.log.Debug(ctx, "profile restricted", "user", userID, "privacy", target.Privacy)
		return &Profile{User: target, Posts: []*models.Post{}, Restricted: true}, nil
	}

	posts, err := p.api.UserPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.cache.SetUserPosts(userID, posts)
	cached, _ := p.cache.UserPosts(userID)
	return &Profile{User: target, Posts: cached}, nil
}

func (p *profileService) RequestFriend(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", api.ErrValidation)
	}
	if _, ok := p.sessions.Token(); !ok {
		return api.ErrUnauthorized
	}

	key := guard.Key{Kind: guard.KindFriend, TargetID: userID}
	if !p.guard.TryAcquire(key) {
		return api.ErrConflict
	}
	defer p.guard.Release(key)

	if err := p.api.AddContact(ctx, userID); err != nil {
		return err
	}
	p.log.Info(ctx, "friend request sent", "user", userID)
	return nil
}

func (p *profileService) Contacts(ctx context.Context) ([]*models.User, error) {
	if _, ok := p.sessions.Token(); !ok {
		return nil, api.ErrUnauthorized
	}
	users, err := p.api.Contacts(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		p.cache.MergeUser(u)
	}
	return users, nil
}
