package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
)

// Profile shows the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.profile.Get(ctx)
	if err != nil {
		printlnFn(serverText(err))
		return err
	}
	printlnFn("Name: ", p.FirstName, p.LastName)
	printlnFn("Email:", p.Email)
	printlnFn("Phone:", p.Phone)
	return nil
}

// EditProfile prompts for each profile field and submits the update. An
// empty answer keeps the current value.
func (a *App) EditProfile(ctx context.Context) error {
	current, err := a.profile.Get(ctx)
	if err != nil {
		printlnFn(serverText(err))
		return err
	}

	updated := &api.Profile{Email: current.Email}
	if updated.FirstName, err = promptKeeping(a, "First name", current.FirstName); err != nil {
		return err
	}
	if updated.LastName, err = promptKeeping(a, "Last name", current.LastName); err != nil {
		return err
	}
	if updated.Phone, err = promptKeeping(a, "Phone", current.Phone); err != nil {
		return err
	}

	if err := a.profile.Update(ctx, updated); err != nil {
		printlnFn(serverText(err))
		return err
	}
	printlnFn("Profile updated")
	return nil
}

func promptKeeping(a *App, label, current string) (string, error) {
	answer, err := getSimpleText(a.reader, label+" ["+current+"]", os.Stdout)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// DeleteAccount deletes the account after an explicit confirmation and
// drops the local session.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account? This cannot be undone (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.profile.Delete(ctx); err != nil {
		printlnFn(serverText(err))
		return err
	}
	printlnFn("Account deleted")
	return nil
}
