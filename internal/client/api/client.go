package api

import (
	"context"

	"github.com/dmitrijs2005/nearby/internal/client/models"
)

// TokenSource supplies the current session token. The session store
// implements it; the transport never stores tokens itself.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the transport-agnostic contract for talking to the Nearby
// backend. The concrete implementation is HTTPClient; tests substitute fakes.
type Client interface {
	Close() error

	// Login exchanges credentials for an opaque session token.
	Login(ctx context.Context, email, password string) (string, error)

	// CurrentUser resolves the profile of the authenticated user.
	CurrentUser(ctx context.Context) (*models.User, error)

	// Feed returns the generic post feed along with the author profiles
	// embedded in the response.
	Feed(ctx context.Context) ([]*models.Post, []*models.User, error)

	// UserProfile fetches a single user by id, from the viewer's perspective.
	UserProfile(ctx context.Context, userID string) (*models.User, error)

	// UserPosts fetches the posts authored by the given user.
	UserPosts(ctx context.Context, userID string) ([]*models.Post, error)

	// Comments fetches the full two-level comment tree of a post, in server
	// order.
	Comments(ctx context.Context, postID string) ([]*models.Comment, error)

	// CreateComment posts a root comment (empty parentID) or a reply. When
	// the response carries a recognizable comment object it is returned;
	// otherwise the error is ErrMalformedResponse and the caller is expected
	// to refetch the tree.
	CreateComment(ctx context.Context, postID, parentID, content string) (*models.Comment, error)

	// AddContact asks the given user to grant contact status to the caller.
	AddContact(ctx context.Context, userID string) error

	// Contacts lists the users who granted contact status to the caller.
	Contacts(ctx context.Context) ([]*models.User, error)
}
