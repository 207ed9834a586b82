package models

// Session is the in-memory authentication state: an opaque API token and the
// resolved current user. Both are absent before login and after logout; the
// User may lag the token briefly while /user/me is being resolved.
type Session struct {
	Token string
	User  *User
}
