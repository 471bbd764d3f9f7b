package cli

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ANITHAC1201/joicy/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register asks for a username, an email and the password twice, checks the
// form and creates the account. It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if username == "" || email == "" || len(password) == 0 || len(confirm) == 0 {
		return common.ErrEmptyField
	}
	if n := utf8.RuneCountInString(username); n < common.MinUsernameLen || n > common.MaxUsernameLen {
		return common.ErrInvalidUsernameLen
	}
	if !bytes.Equal(password, confirm) {
		return errPasswordMismatch
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.accounts.Register(ctx, username, email, password); err != nil {
		return err
	}

	printlnFn("Registration successful. You can now login.")
	return nil
}

// Login authenticates with a username or email. A successful login replaces
// any identity held before.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Username or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if identifier == "" || len(password) == 0 {
		return common.ErrEmptyField
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	identity, err := a.accounts.Login(ctx, identifier, password)
	if err != nil {
		a.logger.Debug(ctx, "login failed", "error", err)
		return err
	}

	a.identity = identity
	printlnFn("Login successful")
	return nil
}

// Logout clears the held identity. The local identity is dropped even when
// the server could not be told.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := a.accounts.Logout(ctx)
	a.identity = nil
	if err != nil {
		a.logger.Warn(ctx, "logout failed", "error", err)
	}

	printlnFn("Logged out")
	return nil
}

// WhoAmI asks the account service for the current identity, so a session
// revoked elsewhere (the user was deleted, say) is noticed and dropped.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	identity, err := a.accounts.WhoAmI(ctx)
	if err != nil {
		if sessionLost(err) {
			a.identity = nil
		}
		return err
	}
	a.identity = identity

	printlnFn(fmt.Sprintf("You are logged in as @%s · %s (%s)", a.identity.Username, a.identity.Email, a.identity.Role))
	return nil
}
