package models

import "time"

// MediaKind classifies a media attachment.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Media is a single attachment on a post.
type Media struct {
	ID   string
	URL  string
	Kind MediaKind
}

// Post is immutable on the client; edits and deletes are not part of the
// client surface.
type Post struct {
	ID         string
	AuthorID   string
	Content    string
	Media      []Media
	Visibility string
	CreatedAt  time.Time
}

// Clone returns a copy with its own media slice.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Media != nil {
		cp.Media = make([]Media, len(p.Media))
		copy(cp.Media, p.Media)
	}
	return &cp
}
