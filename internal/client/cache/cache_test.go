package cache

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dmitrijs2005/nearby/internal/client/models"
	"github.com/stretchr/testify/require"
)

var faker = gofakeit.New(1)

func makeUser(id string) *models.User {
	return &models.User{
		ID:       id,
		FullName: faker.Name(),
		Username: faker.Username(),
		Privacy:  models.PrivacyPublic,
	}
}

func makePost(id, authorID string) *models.Post {
	return &models.Post{ID: id, AuthorID: authorID, Content: faker.Sentence(5)}
}

func makeComment(id, postID, parentID string) *models.Comment {
	return &models.Comment{ID: id, PostID: postID, ParentID: parentID, Content: faker.Sentence(4)}
}

func TestMergeUser_LastWriteWins(t *testing.T) {
	c := New()

	c.MergeUser(&models.User{ID: "u1", FullName: "Alice", IsContact: true})
	c.MergeUser(&models.User{ID: "u1", FullName: "Alice Updated", IsContact: false})

	u, ok := c.User("u1")
	require.True(t, ok)
	require.Equal(t, "Alice Updated", u.FullName)
	// IsContact always reflects the latest fetch; no field-level merging.
	require.False(t, u.IsContact)
}

func TestMergeUser_HandsOutCopies(t *testing.T) {
	c := New()
	orig := makeUser("u1")
	c.MergeUser(orig)

	u, _ := c.User("u1")
	u.FullName = "changed"
	orig.FullName = "changed too"

	again, _ := c.User("u1")
	require.NotEqual(t, "changed", again.FullName)
	require.NotEqual(t, "changed too", again.FullName)
}

func TestFeed_PreservesOrder(t *testing.T) {
	c := New()
	posts := []*models.Post{makePost("p3", "u1"), makePost("p1", "u1"), makePost("p2", "u2")}
	c.SetFeed(posts)

	feed := c.Feed()
	require.Len(t, feed, 3)
	require.Equal(t, "p3", feed[0].ID)
	require.Equal(t, "p1", feed[1].ID)
	require.Equal(t, "p2", feed[2].ID)
}

func TestUserPosts_EmptyListIsRecorded(t *testing.T) {
	c := New()

	_, ok := c.UserPosts("u1")
	require.False(t, ok)

	// A restricted profile is cached as an explicitly empty list.
	c.SetUserPosts("u1", nil)
	posts, ok := c.UserPosts("u1")
	require.True(t, ok)
	require.Empty(t, posts)
}

func TestMergeCommentTree_NormalizesToTwoLevels(t *testing.T) {
	c := New()

	deep := makeComment("r1-1-1", "p1", "r1-1")
	reply := makeComment("r1-1", "p1", "r1")
	reply.Replies = []*models.Comment{deep}
	root := makeComment("r1", "p1", "")
	root.Replies = []*models.Comment{reply}

	c.MergeCommentTree("p1", []*models.Comment{root})

	roots, ok := c.Comments("p1")
	require.True(t, ok)
	require.Len(t, roots, 1)
	// The nested reply is flattened onto the root, order preserved.
	require.Len(t, roots[0].Replies, 2)
	require.Equal(t, "r1-1", roots[0].Replies[0].ID)
	require.Equal(t, "r1-1-1", roots[0].Replies[1].ID)
	for _, r := range roots[0].Replies {
		require.Equal(t, "r1", r.ParentID)
		require.Empty(t, r.Replies)
	}
}

func TestPatchCommentOptimistic_RootAppend(t *testing.T) {
	c := New()
	c.MergeCommentTree("p1", []*models.Comment{makeComment("r1", "p1", "")})

	ok := c.PatchCommentOptimistic("p1", makeComment("r2", "p1", ""))
	require.True(t, ok)

	roots, _ := c.Comments("p1")
	require.Len(t, roots, 2)
	require.Equal(t, "r2", roots[1].ID)
}

func TestPatchCommentOptimistic_ReplyUnderRoot(t *testing.T) {
	c := New()
	c.MergeCommentTree("p1", []*models.Comment{makeComment("r1", "p1", "")})

	ok := c.PatchCommentOptimistic("p1", makeComment("rep1", "p1", "r1"))
	require.True(t, ok)

	roots, _ := c.Comments("p1")
	require.Len(t, roots[0].Replies, 1)
	require.Equal(t, "rep1", roots[0].Replies[0].ID)
}

func TestPatchCommentOptimistic_FallbackCases(t *testing.T) {
	c := New()

	// No tree loaded yet.
	require.False(t, c.PatchCommentOptimistic("p1", makeComment("r1", "p1", "")))

	c.MergeCommentTree("p1", []*models.Comment{makeComment("r1", "p1", "")})

	// Missing id.
	require.False(t, c.PatchCommentOptimistic("p1", &models.Comment{Content: "x"}))
	// Parent not present locally.
	require.False(t, c.PatchCommentOptimistic("p1", makeComment("rep1", "p1", "gone")))
}

func TestPatchCommentOptimistic_DuplicateIsNoop(t *testing.T) {
	c := New()
	c.MergeCommentTree("p1", []*models.Comment{makeComment("r1", "p1", "")})

	patch := makeComment("r2", "p1", "")
	require.True(t, c.PatchCommentOptimistic("p1", patch))
	require.True(t, c.PatchCommentOptimistic("p1", patch))

	roots, _ := c.Comments("p1")
	require.Len(t, roots, 2)
}

func TestResolveRoot(t *testing.T) {
	c := New()
	root := makeComment("r1", "p1", "")
	root.Replies = []*models.Comment{makeComment("rep1", "p1", "r1")}
	c.MergeCommentTree("p1", []*models.Comment{root})

	id, ok := c.ResolveRoot("p1", "r1")
	require.True(t, ok)
	require.Equal(t, "r1", id)

	id, ok = c.ResolveRoot("p1", "rep1")
	require.True(t, ok)
	require.Equal(t, "r1", id)

	_, ok = c.ResolveRoot("p1", "nope")
	require.False(t, ok)
}

func TestReset_WipesEverything(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("u%d", i)
		c.MergeUser(makeUser(id))
		c.MergePost(makePost(fmt.Sprintf("p%d", i), id))
	}
	c.SetFeed([]*models.Post{makePost("p1", "u1")})
	c.SetUserPosts("u1", []*models.Post{makePost("p2", "u1")})
	c.MergeCommentTree("p1", []*models.Comment{makeComment("r1", "p1", "")})

	c.Reset()

	_, ok := c.User("u1")
	require.False(t, ok)
	_, ok = c.Post("p1")
	require.False(t, ok)
	require.Empty(t, c.Feed())
	_, ok = c.UserPosts("u1")
	require.False(t, ok)
	_, ok = c.Comments("p1")
	require.False(t, ok)
}
