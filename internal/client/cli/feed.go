package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/nearby/internal/client/models"
)

func (a *App) Feed(ctx context.Context) {
	posts, err := a.feed.LoadFeed(ctx)
	if err != nil {
		log.Printf("error loading feed: %v", err)
		return
	}
	if len(posts) == 0 {
		fmt.Println("The feed is empty.")
		return
	}
	for _, p := range posts {
		a.printPost(p)
	}
}

func (a *App) printPost(p *models.Post) {
	author := p.AuthorID
	if u, ok := a.cache.User(p.AuthorID); ok {
		author = fmt.Sprintf("%s (@%s)", u.FullName, u.Username)
	}
	fmt.Printf("[%s] %s\n", p.ID, author)
	fmt.Printf("    %s\n", p.Content)
	for _, m := range p.Media {
		fmt.Printf("    %s: %s\n", m.Kind, m.URL)
	}
}
