package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/mediguide/storefront-client/internal/session"
)

func (a *app) runLogin(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("login", flag.ExitOnError)
	username := flags.String("username", "", "account username")
	password := flags.String("password", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	profile, err := a.session.Login(ctx, session.Credentials{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", profile.Username)
	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("register", flag.ExitOnError)
	username := flags.String("username", "", "account username")
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	profile, err := a.session.Register(ctx, session.RegisterInput{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("account created, signed in as %s\n", profile.Username)
	return nil
}

func (a *app) runChangePassword(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("change-password", flag.ExitOnError)
	current := flags.String("current", "", "current password")
	next := flags.String("new", "", "new password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := a.session.ChangePassword(ctx, *current, *next); err != nil {
		return err
	}
	fmt.Println("password changed")
	return nil
}

func (a *app) runLogout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (a *app) runWhoami(ctx context.Context) error {
	profile, ok := a.session.CurrentUser(ctx)
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", profile.Username, profile.Email)
	return nil
}
