// Package visibility decides whether one user may see another user's posts.
package visibility

import "github.com/dmitrijs2005/nearby/internal/client/models"

// CanViewPosts reports whether viewer may see subject's posts. Owners always
// see their own posts, public profiles are visible to everyone, and
// friends-only or private profiles require the subject to have granted the
// viewer contact status.
//
// The decision depends only on the two arguments; callers must pass a fully
// resolved subject and viewer (post-fetch), never a placeholder. A nil
// argument denies access rather than guessing.
func CanViewPosts(subject, viewer *models.User) bool {
	if subject == nil || viewer == nil {
		return false
	}
	if subject.ID == viewer.ID {
		return true
	}
	if subject.Privacy == models.PrivacyPublic {
		return true
	}
	return subject.IsContact
}
