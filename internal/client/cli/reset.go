package cli

import (
	"context"
	"log"
	"os"

	"github.com/orator-app/orator-cli/internal/common"
)

// ResetPassword drives the full reset flow: request a code by email, verify
// it, then submit the new password.
func (a *App) ResetPassword(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.accounts.RequestPasswordReset(ctx, email); err != nil {
		log.Printf("Could not request reset: %s", err.Error())
		return err
	}

	code, err := GetSimpleText(a.reader, "Enter the code from the email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}

	defer common.WipeByteArray(password)

	if err := a.accounts.ResetPassword(ctx, email, code, password); err != nil {
		log.Printf("Password reset unsuccessful: %s", err.Error())
		return err
	}

	log.Println("Password changed, you can log in now")
	return nil
}
