package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/rentalauth/internal/client/tables"
	"github.com/dmitrijs2005/rentalauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

// Login prompts for a username and password and hands them to the manager.
// A rejected login is reported to the user, not returned as an error.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.auth.Login(ctx, userName, string(password)) {
		fmt.Fprintln(a.out, "Invalid username or password")
	}
	return nil
}

// Logout ends the session and removes the stored token.
func (a *App) Logout(ctx context.Context) error {
	return a.auth.Logout(ctx)
}

// Status prints the derived session state with its claims.
func (a *App) Status(ctx context.Context) error {
	p, err := a.auth.State(ctx)
	if err != nil {
		return err
	}
	if !p.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", p)
	claims := p.Claims()
	for _, k := range slices.Sorted(maps.Keys(claims)) {
		fmt.Fprintf(a.out, "  %s: %s\n", k, claims[k])
	}
	return nil
}

// SetToken adopts raw as the session token.
func (a *App) SetToken(ctx context.Context, raw string) error {
	return a.auth.MarkAuthenticated(ctx, raw)
}

// Users lists the records of the users table matching filter (all when
// empty). Only available with a session.
func (a *App) Users(ctx context.Context, filter string) error {
	if !a.isLoggedIn(ctx) {
		return errNotLoggedIn
	}

	res := a.tables.QueryEntities(ctx, a.config.Tables.UsersTable, filter)
	if res.Failed() {
		return res.Err
	}
	if res.Empty() {
		fmt.Fprintln(a.out, "No users found")
		return nil
	}

	users, err := tables.Decode[tables.UserRecord](res)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email != "" {
			fmt.Fprintf(a.out, "%s <%s>\n", u.PartitionKey, u.Email)
		} else {
			fmt.Fprintln(a.out, u.PartitionKey)
		}
	}
	return nil
}
