package cli

import (
	"context"
	"log"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "-Enter email")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}
	log.Printf("Logged in as %s (@%s)", user.FullName, user.Username)
}

func (a *App) Logout(ctx context.Context) {
	a.auth.Logout()
	log.Printf("Logged out")
}
