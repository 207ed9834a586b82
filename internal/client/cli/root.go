package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	sess, ok := a.sessions.Current()
	if !ok {
		return ""
	}
	if sess.User != nil {
		return fmt.Sprintf("(%s)", sess.User.Username)
	}
	return "(logged in)"
}

// Run starts the read-eval-print loop. It exits on EOF or when the user
// types "exit" or "quit".
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	fmt.Println("Welcome to Nearby CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("nearby %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: feed, profile <user>, contacts, addfriend <user>, comments <post>, comment <post> <text>, reply <post> <comment> <text>, logout, exit")
			} else {
				fmt.Println("Available commands: login, exit")
			}

		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "feed":
			a.Feed(ctx)
		case "profile":
			if len(args) == 0 {
				fmt.Println("Usage: profile <user id>")
				continue
			}
			a.Profile(ctx, args[0])
		case "contacts":
			a.Contacts(ctx)
		case "addfriend":
			if len(args) == 0 {
				fmt.Println("Usage: addfriend <user id>")
				continue
			}
			a.AddFriend(ctx, args[0])
		case "comments":
			if len(args) == 0 {
				fmt.Println("Usage: comments <post id>")
				continue
			}
			a.Comments(ctx, args[0])
		case "comment":
			if len(args) < 2 {
				fmt.Println("Usage: comment <post id> <text>")
				continue
			}
			a.Comment(ctx, args[0], strings.Join(args[1:], " "))
		case "reply":
			if len(args) < 3 {
				fmt.Println("Usage: reply <post id> <comment id> <text>")
				continue
			}
			a.Reply(ctx, args[0], args[1], strings.Join(args[2:], " "))
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
