package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dmitrijs2005/nearby/internal/client/cache"
	"github.com/dmitrijs2005/nearby/internal/client/guard"
	"github.com/dmitrijs2005/nearby/internal/client/models"
	"github.com/dmitrijs2005/nearby/internal/client/session"
	"github.com/dmitrijs2005/nearby/internal/logging"
)

var faker = gofakeit.New(7)

// ---- fake client ----

// fakeClient implements api.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	loginToken string
	loginErr   error

	currentUserRet *models.User
	currentUserErr error

	feedPosts []*models.Post
	feedUsers []*models.User
	feedErr   error
	feedCalls int

	profileRet *models.User
	profileErr error

	userPostsRet   []*models.Post
	userPostsErr   error
	userPostsCalls int

	addContactErr   error
	addContactCalls int
	addContactBlock chan struct{}

	contactsRet []*models.User
	contactsErr error
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	return f.currentUserRet.Clone(), f.currentUserErr
}

func (f *fakeClient) Feed(ctx context.Context) ([]*models.Post, []*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedCalls++
	return f.feedPosts, f.feedUsers, f.feedErr
}

func (f *fakeClient) UserProfile(ctx context.Context, userID string) (*models.User, error) {
	return f.profileRet.Clone(), f.profileErr
}

func (f *fakeClient) UserPosts(ctx context.Context, userID string) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userPostsCalls++
	return f.userPostsRet, f.userPostsErr
}

func (f *fakeClient) Comments(ctx context.Context, postID string) ([]*models.Comment, error) {
	return nil, nil
}

func (f *fakeClient) CreateComment(ctx context.Context, postID, parentID, content string) (*models.Comment, error) {
	return nil, nil
}

func (f *fakeClient) AddContact(ctx context.Context, userID string) error {
	f.mu.Lock()
	f.addContactCalls++
	block := f.addContactBlock
	err := f.addContactErr
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return err
}

func (f *fakeClient) Contacts(ctx context.Context) ([]*models.User, error) {
	return f.contactsRet, f.contactsErr
}

func (f *fakeClient) counts() (feed, userPosts, addContact int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feedCalls, f.userPostsCalls, f.addContactCalls
}

// ---- helpers ----

type fixture struct {
	api      *fakeClient
	sessions *session.Store
	cache    *cache.Cache
	guard    *guard.Guard
	log      logging.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		api:      &fakeClient{},
		sessions: session.NewStore(),
		cache:    cache.New(),
		guard:    guard.New(),
		log:      logging.NewTextLogger(io.Discard, slog.LevelDebug),
	}
	fx.sessions.OnClear(fx.cache.Reset)
	return fx
}

func (fx *fixture) loginAs(u *models.User) {
	fx.sessions.Set("tok-"+u.ID, u)
	fx.cache.MergeUser(u)
}

func makeUser(id string, privacy models.Privacy, isContact bool) *models.User {
	return &models.User{
		ID:        id,
		FullName:  faker.Name(),
		Username:  faker.Username(),
		Privacy:   privacy,
		IsContact: isContact,
	}
}

func makePost(id, authorID string) *models.Post {
	return &models.Post{ID: id, AuthorID: authorID, Content: faker.Sentence(5)}
}
