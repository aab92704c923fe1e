package services

import (
	"context"
	"fmt"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/client/auth"
	"github.com/orator-app/orator-cli/internal/logging"
)

// AccountService drives the credential flows and session state for the CLI.
//
// Contract:
//   - Login/Signup: authenticate against the server and store the returned
//     access token.
//   - SendVerificationCode/VerifyEmail: email-verification flow.
//   - RequestPasswordReset/ResetPassword: password-reset flow. ResetPassword
//     chains verify and confirm.
//   - Logout: remote logout best-effort plus local session wipe.
//   - Ping: server liveness probe for the online-status watcher.
//
// All methods honor context cancellation and timeouts.
type AccountService interface {
	Login(ctx context.Context, email string, password []byte) error
	Signup(ctx context.Context, email, name string, password []byte) error
	SendVerificationCode(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code string, newPassword []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	// SignedIn returns the signed-in email and whether the stored token is
	// still usable.
	SignedIn(ctx context.Context) (string, bool)
}

type accountService struct {
	client api.Client
	tokens *auth.Manager
	log    logging.Logger
}

func NewAccountService(client api.Client, tokens *auth.Manager, log logging.Logger) AccountService {
	return &accountService{client: client, tokens: tokens, log: log}
}

func (a *accountService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (a *accountService) Signup(ctx context.Context, email, name string, password []byte) error {
	token, err := a.client.Signup(ctx, email, name, password)
	if err != nil {
		return fmt.Errorf("signup error: %w", err)
	}
	// some deployments withhold the token until the email is verified
	if token == "" {
		return nil
	}
	if err := a.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (a *accountService) SendVerificationCode(ctx context.Context, email string) error {
	return a.client.SendCode(ctx, email)
}

func (a *accountService) VerifyEmail(ctx context.Context, email, code string) error {
	return a.client.VerifyEmail(ctx, email, code)
}

func (a *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	return a.client.RequestPasswordReset(ctx, email)
}

// ResetPassword verifies the emailed code and submits the new password with
// the short-lived reset token the verification returns.
func (a *accountService) ResetPassword(ctx context.Context, email, code string, newPassword []byte) error {
	resetToken, err := a.client.VerifyPasswordReset(ctx, email, code)
	if err != nil {
		return fmt.Errorf("verifying reset code: %w", err)
	}
	if err := a.client.ConfirmPasswordReset(ctx, resetToken, newPassword); err != nil {
		return fmt.Errorf("confirming password reset: %w", err)
	}
	return nil
}

func (a *accountService) Logout(ctx context.Context) error {
	return a.tokens.Logout(ctx)
}

func (a *accountService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *accountService) SignedIn(ctx context.Context) (string, bool) {
	token, err := a.tokens.Token(ctx)
	if err != nil || token == "" {
		return "", false
	}
	email, err := a.tokens.UserEmail(ctx)
	if err != nil {
		email = auth.Subject(token)
	}
	return email, a.tokens.IsUsable(token)
}
