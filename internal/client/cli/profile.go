package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/nearby/internal/client/api"
)

func (a *App) Profile(ctx context.Context, userID string) {
	profile, err := a.profiles.LoadProfile(ctx, userID)
	if err != nil {
		log.Printf("error loading profile: %v", err)
		return
	}

	u := profile.User
	fmt.Printf("%s (@%s) [%s]\n", u.FullName, u.Username, u.Privacy)
	if u.Bio != "" {
		fmt.Println(u.Bio)
	}
	if profile.Restricted {
		fmt.Println("This profile is private.")
		return
	}
	if len(profile.Posts) == 0 {
		fmt.Println("No posts yet.")
		return
	}
	for _, p := range profile.Posts {
		a.printPost(p)
	}
}

func (a *App) AddFriend(ctx context.Context, userID string) {
	err := a.profiles.RequestFriend(ctx, userID)
	switch {
	case err == nil:
		fmt.Println("Friend request sent.")
	case errors.Is(err, api.ErrConflict):
		fmt.Println("A friend request for this user is already on its way.")
	default:
		log.Printf("error sending friend request: %v", err)
	}
}

func (a *App) Contacts(ctx context.Context) {
	users, err := a.profiles.Contacts(ctx)
	if err != nil {
		log.Printf("error loading contacts: %v", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("No contacts yet.")
		return
	}
	for _, u := range users {
		fmt.Printf("[%s] %s (@%s)\n", u.ID, u.FullName, u.Username)
	}
}
