package cli

import (
	"context"
	"log"
	"os"

	"github.com/orator-app/orator-cli/internal/common"
)

func (a *App) Register(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
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

	if err := a.accounts.Signup(ctx, email, name, password); err != nil {
		log.Printf("Signup unsuccessful: %s", err.Error())
		return err
	}

	log.Println("Account created. Check your inbox and run 'verify' to confirm your email.")
	return nil
}

// VerifyEmail drives the email-confirmation flow: request a code, then
// submit it.
func (a *App) VerifyEmail(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.accounts.SendVerificationCode(ctx, email); err != nil {
		log.Printf("Could not send code: %s", err.Error())
		return err
	}

	code, err := GetSimpleText(a.reader, "Enter the code from the email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.accounts.VerifyEmail(ctx, email, code); err != nil {
		log.Printf("Verification unsuccessful: %s", err.Error())
		return err
	}

	log.Println("Email verified")
	return nil
}
