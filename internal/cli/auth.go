package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekazarova/rolodex/internal/common"
)

func (a *App) isLoggedIn() bool {
	return a.auth.Current().Authenticated
}

// Login prompts for credentials and authenticates against the backend.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	_, err = a.auth.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid email or password.")
		} else {
			fmt.Fprintf(a.out, "Login failed: %v\n", err)
		}
		return err
	}

	a.userName = email
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// Logout terminates the session. The local session is gone either way; a
// backend failure is only reported.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.userName = ""
	if err != nil {
		fmt.Fprintf(a.out, "Logout reported an error (local session cleared): %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// ResetPassword prompts for an email and requests a reset message.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.auth.ResetPassword(ctx, email); err != nil {
		fmt.Fprintf(a.out, "Password reset failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Password reset email requested.")
	return nil
}
