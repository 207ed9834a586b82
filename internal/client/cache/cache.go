// Package cache is the in-memory holder for fetched users, posts and comment
// trees. It is the only shared mutable state of the client; every method
// leaves it structurally valid even when callers interleave.
package cache

import (
	"sync"

	"github.com/dmitrijs2005/nearby/internal/client/models"
)

// Cache stores entities by id and hands out deep copies, so callers can
// never alias its internal state. There is no eviction: the cache lives and
// dies with a browsing session.
type Cache struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	posts     map[string]*models.Post
	feed      []string
	userPosts map[string][]string
	comments  map[string][]*models.Comment
}

func New() *Cache {
	c := &Cache{}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.users = make(map[string]*models.User)
	c.posts = make(map[string]*models.Post)
	c.feed = nil
	c.userPosts = make(map[string][]string)
	c.comments = make(map[string][]*models.Comment)
}

// Reset wipes everything. Wired as a session-clear hook.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// MergeUser stores the user, replacing any prior record for the same id.
// Last write wins wholesale; in particular IsContact always reflects the
// latest fetch and never survives from an older record.
func (c *Cache) MergeUser(u *models.User) {
	if u == nil || u.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[u.ID] = u.Clone()
}

// User returns the cached user by id.
func (c *Cache) User(id string) (*models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	return u.Clone(), ok
}

// MergePost stores the post, replacing any prior record for the same id.
func (c *Cache) MergePost(p *models.Post) {
	if p == nil || p.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[p.ID] = p.Clone()
}

// MergePosts stores every post in the list.
func (c *Cache) MergePosts(posts []*models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range posts {
		if p == nil || p.ID == "" {
			continue
		}
		c.posts[p.ID] = p.Clone()
	}
}

// Post returns the cached post by id.
func (c *Cache) Post(id string) (*models.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.posts[id]
	return p.Clone(), ok
}

// SetFeed merges the posts and records the feed order.
func (c *Cache) SetFeed(posts []*models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feed = c.feed[:0]
	for _, p := range posts {
		if p == nil || p.ID == "" {
			continue
		}
		c.posts[p.ID] = p.Clone()
		c.feed = append(c.feed, p.ID)
	}
}

// Feed returns the feed posts in stored order.
func (c *Cache) Feed() []*models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.Post, 0, len(c.feed))
	for _, id := range c.feed {
		if p, ok := c.posts[id]; ok {
			out = append(out, p.Clone())
		}
	}
	return out
}

// SetUserPosts merges the posts and records their order under the author id.
// An empty list is recorded as such, which is how a visibility-restricted
// profile is represented.
func (c *Cache) SetUserPosts(userID string, posts []*models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if p == nil || p.ID == "" {
			continue
		}
		c.posts[p.ID] = p.Clone()
		ids = append(ids, p.ID)
	}
	c.userPosts[userID] = ids
}

// UserPosts returns the cached posts of the given author in stored order.
func (c *Cache) UserPosts(userID string) ([]*models.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids, ok := c.userPosts[userID]
	if !ok {
		return nil, false
	}
	out := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.posts[id]; ok {
			out = append(out, p.Clone())
		}
	}
	return out, true
}

// MergeCommentTree replaces the whole comment tree of a post with the
// server-ordered roots. The tree is normalized to exactly two levels: any
// deeper nesting the payload sneaks in is flattened onto the enclosing root,
// and every reply is stamped with the root id and post id.
func (c *Cache) MergeCommentTree(postID string, roots []*models.Comment) {
	if postID == "" {
		return
	}
	normalized := make([]*models.Comment, 0, len(roots))
	for _, r := range roots {
		if r == nil || r.ID == "" {
			continue
		}
		root := r.Clone()
		root.PostID = postID
		root.ParentID = ""
		root.Replies = flatten(postID, root.ID, r.Replies)
		normalized = append(normalized, root)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.comments[postID] = normalized
}

// flatten collects replies at any depth into a single ordered level under
// rootID, preserving traversal order.
func flatten(postID, rootID string, replies []*models.Comment) []*models.Comment {
	var out []*models.Comment
	for _, r := range replies {
		if r == nil || r.ID == "" {
			continue
		}
		reply := r.Clone()
		nested := reply.Replies
		reply.Replies = nil
		reply.PostID = postID
		reply.ParentID = rootID
		out = append(out, reply)
		out = append(out, flatten(postID, rootID, nested)...)
	}
	return out
}

// PatchCommentOptimistic applies a server-confirmed comment to the local
// tree without a refetch. It reports false whenever the patch cannot be
// applied safely, in which case the caller must refetch the full tree:
// the comment has no id, no tree is loaded for the post, or the addressed
// parent root is no longer present. Re-applying a comment that is already in
// the tree is a no-op and reports true.
func (c *Cache) PatchCommentOptimistic(postID string, comment *models.Comment) bool {
	if comment == nil || comment.ID == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	roots, ok := c.comments[postID]
	if !ok {
		return false
	}
	if containsComment(roots, comment.ID) {
		return true
	}

	patch := comment.Clone()
	patch.PostID = postID
	patch.Replies = nil

	if patch.ParentID == "" {
		c.comments[postID] = append(roots, patch)
		return true
	}
	for _, root := range roots {
		if root.ID == patch.ParentID {
			root.Replies = append(root.Replies, patch)
			return true
		}
	}
	return false
}

func containsComment(roots []*models.Comment, id string) bool {
	for _, root := range roots {
		if root.ID == id {
			return true
		}
		for _, reply := range root.Replies {
			if reply.ID == id {
				return true
			}
		}
	}
	return false
}

// Comments returns the two-level comment tree of the post in stored order;
// ok is false when no tree has been loaded yet.
func (c *Cache) Comments(postID string) ([]*models.Comment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roots, ok := c.comments[postID]
	if !ok {
		return nil, false
	}
	out := make([]*models.Comment, 0, len(roots))
	for _, r := range roots {
		out = append(out, r.Clone())
	}
	return out, true
}

// ResolveRoot maps a comment id to the id of its root: a root id maps to
// itself, a reply id to the root it hangs off. Used to flatten attempts to
// reply to a reply onto the enclosing root.
func (c *Cache) ResolveRoot(postID, commentID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, root := range c.comments[postID] {
		if root.ID == commentID {
			return root.ID, true
		}
		for _, reply := range root.Replies {
			if reply.ID == commentID {
				return root.ID, true
			}
		}
	}
	return "", false
}
