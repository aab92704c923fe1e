package cli

import (
	"context"
	"log"
	"os"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/common"
)

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	defer common.WipeByteArray(password)

	err = a.accounts.Login(ctx, email, password)
	if err != nil {
		if api.IsConnectivity(err) {
			log.Printf("Server unavailable, login requires a connection")
			a.setMode(ModeOffline)
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successful")
	a.userEmail = email
	a.setMode(ModeOnline)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.Logout(ctx); err != nil {
		log.Printf("Logout error: %s", err.Error())
		return err
	}
	a.userEmail = ""
	log.Println("Logged out")
	return nil
}
