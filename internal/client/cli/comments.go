package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/nearby/internal/client/api"
)

func (a *App) Comments(ctx context.Context, postID string) {
	a.threads.SetViewing(postID)
	if err := a.threads.Load(ctx, postID); err != nil {
		log.Printf("error loading comments: %v", err)
		return
	}
	a.printThread(postID)
}

func (a *App) Comment(ctx context.Context, postID, text string) {
	a.threads.SetViewing(postID)
	if err := a.threads.PostRoot(ctx, postID, text); err != nil {
		if errors.Is(err, api.ErrConflict) {
			fmt.Println("Another comment for this post is still being sent.")
			return
		}
		log.Printf("error posting comment: %v", err)
		return
	}
	a.printThread(postID)
}

func (a *App) Reply(ctx context.Context, postID, parentID, text string) {
	a.threads.SetViewing(postID)
	if err := a.threads.PostReply(ctx, postID, parentID, text); err != nil {
		if errors.Is(err, api.ErrConflict) {
			fmt.Println("Another comment for this post is still being sent.")
			return
		}
		log.Printf("error posting reply: %v", err)
		return
	}
	a.printThread(postID)
}

func (a *App) printThread(postID string) {
	roots, ok := a.cache.Comments(postID)
	if !ok || len(roots) == 0 {
		fmt.Println("No comments yet. Be the first!")
		return
	}
	for _, c := range roots {
		fmt.Printf("[%s] %s: %s\n", c.ID, authorLabel(c.AuthorName), c.Content)
		for _, r := range c.Replies {
			fmt.Printf("    [%s] %s: %s\n", r.ID, authorLabel(r.AuthorName), r.Content)
		}
	}
}

func authorLabel(name string) string {
	if name == "" {
		return "Unknown User"
	}
	return name
}
