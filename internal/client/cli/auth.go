package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account via the
// AuthService; a successful registration leaves the user signed in. The
// password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := &api.RegisterRequest{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}
	if err := a.auth.Register(ctx, req); err != nil {
		printlnFn(serverText(err))
		return err
	}

	printlnFn("Welcome,", email)
	return nil
}

// Login prompts for credentials and authenticates against the server. On
// success the credential pair lands in the token store and the prompt
// picks up the signed-in identity. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		printlnFn(serverText(err))
		return err
	}

	printlnFn("Logged in as", email)
	return nil
}

// Logout drops the local session. The server keeps no session state to
// invalidate.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}

// serverText renders an error for the user, preferring the server's own
// message when there is one.
func serverText(err error) string {
	var serr *api.ServerError
	if errors.As(err, &serr) {
		return serr.UserMessage()
	}
	return err.Error()
}
