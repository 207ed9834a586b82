package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/nearby/internal/client/api"
	"github.com/dmitrijs2005/nearby/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile_PublicUserPostsVisible(t *testing.T) {
	fx := newFixture(t)
	fx.loginAs(makeUser("b", models.PrivacyPublic, false))

	fx.api.profileRet = makeUser("a", models.PrivacyPublic, false)
	fx.api.userPostsRet = []*models.Post{makePost("p1", "a")}

	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	profile, err := svc.LoadProfile(context.Background(), "a")
	require.NoError(t, err)
	require.False(t, profile.Restricted)
	require.Len(t, profile.Posts, 1)

	_, userPosts, _ := fx.api.counts()
	require.Equal(t, 1, userPosts)
}

func TestLoadProfile_PrivateNonContactShortCircuits(t *testing.T) {
	fx := newFixture(t)
	fx.loginAs(makeUser("b", models.PrivacyPublic, false))

	fx.api.profileRet = makeUser("c", models.PrivacyPrivate, false)

	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	profile, err := svc.LoadProfile(context.Background(), "c")
	require.NoError(t, err)
	require.True(t, profile.Restricted)
	require.Empty(t, profile.Posts)

	// The posts fetch is never issued for a restricted profile.
	_, userPosts, _ := fx.api.counts()
	require.Zero(t, userPosts)

	// The empty list is cached, not merely absent.
	posts, ok := fx.cache.UserPosts("c")
	require.True(t, ok)
	require.Empty(t, posts)
}

func TestLoadProfile_PrivateContactSeesPosts(t *testing.T) {
	fx := newFixture(t)
	fx.loginAs(makeUser("b", models.PrivacyPublic, false))

	fx.api.profileRet = makeUser("c", models.PrivacyPrivate, true)
	fx.api.userPostsRet = []*models.Post{makePost("p1", "c")}

	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	profile, err := svc.LoadProfile(context.Background(), "c")
	require.NoError(t, err)
	require.False(t, profile.Restricted)
	require.Len(t, profile.Posts, 1)
}

func TestLoadProfile_SelfAlwaysSeesOwnPosts(t *testing.T) {
	fx := newFixture(t)
	me := makeUser("me", models.PrivacyPrivate, false)
	fx.loginAs(me)

	fx.api.profileRet = makeUser("me", models.PrivacyPrivate, false)
	fx.api.userPostsRet = []*models.Post{makePost("p1", "me")}

	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	profile, err := svc.LoadProfile(context.Background(), "me")
	require.NoError(t, err)
	require.False(t, profile.Restricted)
	require.Len(t, profile.Posts, 1)
}

func TestLoadProfile_RequiresResolvedViewer(t *testing.T) {
	fx := newFixture(t)
	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	_, err := svc.LoadProfile(context.Background(), "a")
	require.ErrorIs(t, err, api.ErrUnauthorized)

	// A token whose user is still being resolved is not enough either:
	// the policy must never run against a placeholder viewer.
	fx.sessions.Set("tok", nil)
	_, err = svc.LoadProfile(context.Background(), "a")
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestRequestFriend_ConcurrentDuplicateRejected(t *testing.T) {
	fx := newFixture(t)
	fx.loginAs(makeUser("b", models.PrivacyPublic, false))

	block := make(chan struct{})
	fx.api.addContactBlock = block

	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	done := make(chan error, 1)
	go func() { done <- svc.RequestFriend(context.Background(), "u1") }()

	require.Eventually(t, func() bool {
		_, _, calls := fx.api.counts()
		return calls == 1
	}, time.Second, 5*time.Millisecond)

	// The duplicate is rejected synchronously, with exactly one underlying
	// mutation call.
	err := svc.RequestFriend(context.Background(), "u1")
	require.ErrorIs(t, err, api.ErrConflict)

	close(block)
	require.NoError(t, <-done)

	_, _, calls := fx.api.counts()
	require.Equal(t, 1, calls)

	// The key is released after completion; a retry goes through.
	require.NoError(t, svc.RequestFriend(context.Background(), "u1"))
}

func TestRequestFriend_ReleasesKeyOnFailure(t *testing.T) {
	fx := newFixture(t)
	fx.loginAs(makeUser("b", models.PrivacyPublic, false))
	fx.api.addContactErr = api.ErrNotFound

	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	err := svc.RequestFriend(context.Background(), "ghost")
	require.ErrorIs(t, err, api.ErrNotFound)

	// The failed attempt must not deadlock the key.
	fx.api.mu.Lock()
	fx.api.addContactErr = nil
	fx.api.mu.Unlock()
	require.NoError(t, svc.RequestFriend(context.Background(), "ghost"))
}

func TestContacts_MergesIntoCache(t *testing.T) {
	fx := newFixture(t)
	fx.loginAs(makeUser("b", models.PrivacyPublic, false))

	granted := makeUser("c", models.PrivacyPrivate, true)
	fx.api.contactsRet = []*models.User{granted}

	svc := NewProfileService(fx.api, fx.sessions, fx.cache, fx.guard, fx.log)

	users, err := svc.Contacts(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)

	cached, ok := fx.cache.User("c")
	require.True(t, ok)
	require.True(t, cached.IsContact)
}
