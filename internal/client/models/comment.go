package models

import "time"

// Comment is a node in a two-level thread. A root comment (empty ParentID)
// carries its replies; a reply never carries any. AuthorID is empty when the
// backend no longer knows the author ("unknown user").
type Comment struct {
	ID         string
	PostID     string
	AuthorID   string
	AuthorName string
	Content    string
	ParentID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Replies    []*Comment
}

// IsRoot reports whether the comment is attached directly to its post.
func (c *Comment) IsRoot() bool { return c.ParentID == "" }

// Clone returns a deep copy, replies included.
func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Replies != nil {
		cp.Replies = make([]*Comment, len(c.Replies))
		for i, r := range c.Replies {
			cp.Replies[i] = r.Clone()
		}
	}
	return &cp
}
