// Package models defines the entities the Nearby client works with:
// users, posts, media attachments and comment threads.
package models

// Privacy controls who may see a user's posts.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends"
	PrivacyPrivate Privacy = "private"
)

// User is a profile as seen by the current viewer. IsContact reflects
// whether this user has granted contact status to the viewing session and
// is only meaningful relative to that session; every fetch supersedes it.
type User struct {
	ID        string
	FullName  string
	Username  string
	Privacy   Privacy
	IsContact bool
	Bio       string
	Image     string
}

// Clone returns a copy that is safe to hand out without aliasing cache state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
