package api

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/nearby/internal/client/models"
)

// Wire DTOs. The backend is inconsistent about envelopes (objects arrive
// under "data", "user", "comment", "posts" or at the top level) and about
// casing of the privacy value, so everything is normalized here before it
// reaches the core.

type wireUser struct {
	ID        string `json:"_id"`
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
	Privacy   string `json:"privacy"`
	IsContact bool   `json:"isContact"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
}

func (u *wireUser) toModel() *models.User {
	if u == nil || u.ID == "" {
		return nil
	}
	return &models.User{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Privacy:   models.Privacy(strings.ToLower(u.Privacy)),
		IsContact: u.IsContact,
		Bio:       u.Bio,
		Image:     u.Image,
	}
}

type wireMedia struct {
	ID   string `json:"_id"`
	URL  string `json:"url"`
	Kind string `json:"type"`
}

type wirePost struct {
	ID         string      `json:"_id"`
	User       *wireUser   `json:"user"`
	Content    string      `json:"content"`
	Media      []wireMedia `json:"media"`
	Visibility string      `json:"visibility"`
	CreatedAt  string      `json:"createdAt"`
}

func (p *wirePost) toModel() *models.Post {
	if p == nil || p.ID == "" {
		return nil
	}
	post := &models.Post{
		ID:         p.ID,
		Content:    p.Content,
		Visibility: p.Visibility,
		CreatedAt:  parseTime(p.CreatedAt),
	}
	if p.User != nil {
		post.AuthorID = p.User.ID
	}
	for _, m := range p.Media {
		post.Media = append(post.Media, models.Media{
			ID:   m.ID,
			URL:  m.URL,
			Kind: models.MediaKind(m.Kind),
		})
	}
	return post
}

type wireComment struct {
	ID        string         `json:"_id"`
	User      *wireUser      `json:"user"`
	Content   string         `json:"content"`
	ParentID  string         `json:"parentCommentId"`
	Replies   []*wireComment `json:"replies"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

func (c *wireComment) toModel(postID string) *models.Comment {
	if c == nil || c.ID == "" {
		return nil
	}
	out := &models.Comment{
		ID:        c.ID,
		PostID:    postID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: parseTime(c.CreatedAt),
		UpdatedAt: parseTime(c.UpdatedAt),
	}
	if c.User != nil {
		out.AuthorID = c.User.ID
		out.AuthorName = c.User.FullName
	}
	for _, r := range c.Replies {
		if reply := r.toModel(postID); reply != nil {
			out.Replies = append(out.Replies, reply)
		}
	}
	return out
}

// parseTime accepts the RFC 3339 timestamps the backend emits; anything else
// yields a zero time rather than an error, timestamps being display-only.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
