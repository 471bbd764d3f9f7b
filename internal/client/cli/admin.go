package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/users"
)

const listTimeLayout = "2006-01-02 15:04"

func (a *App) requireAdmin() error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if !a.isAdmin() {
		return common.ErrForbidden
	}
	return nil
}

// parseUsersArgs splits "users" arguments into a sort order and a search
// term. Everything that is not -sort/--sort and its value is search text.
func parseUsersArgs(args []string) (SortOrder, string, error) {
	var (
		sortArg string
		terms   []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-sort" || arg == "--sort":
			if i+1 >= len(args) {
				return "", "", errors.New("-sort needs a value")
			}
			sortArg = args[i+1]
			i++
		case strings.HasPrefix(arg, "-sort="), strings.HasPrefix(arg, "--sort="):
			_, sortArg, _ = strings.Cut(arg, "=")
		default:
			terms = append(terms, arg)
		}
	}

	order, err := ParseSortOrder(sortArg)
	if err != nil {
		return "", "", err
	}
	return order, strings.Join(terms, " "), nil
}

// Users lists registered users, optionally filtered and sorted.
func (a *App) Users(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	order, term, err := parseUsersArgs(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	list, err := a.accounts.ListUsers(ctx)
	if err != nil {
		return err
	}

	list = SortUsers(FilterUsers(list, term), order)
	if len(list) == 0 {
		printlnFn("No users found matching your search criteria.")
		return nil
	}

	return writeUsers(a, list)
}

func writeUsers(a *App, list []users.Summary) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tJOINED")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.CreatedAt.Format(listTimeLayout))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d user(s)", len(list)))
	return nil
}

// Delete removes a user by id after the operator types the username back.
func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: delete <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	lookupCtx, cancel := a.withTimeout(ctx)
	list, err := a.accounts.ListUsers(lookupCtx)
	cancel()
	if err != nil {
		return err
	}

	var target *users.Summary
	for i := range list {
		if list[i].ID == id {
			target = &list[i]
			break
		}
	}
	if target == nil {
		return common.ErrUserNotFound
	}

	printlnFn(fmt.Sprintf("This action cannot be undone. The user %s will be permanently deleted.", target.Username))
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Type %q to confirm", target.Username), a.out)
	if err != nil {
		return err
	}
	if answer != target.Username {
		return errDeleteCancelled
	}

	deleteCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	deleted, err := a.accounts.DeleteUser(deleteCtx, id)
	if err != nil {
		return err
	}
	if !deleted {
		printlnFn(fmt.Sprintf("User %s was already deleted", target.Username))
		return nil
	}

	a.logger.Info(ctx, "user deleted", "id", id, "username", target.Username)
	printlnFn(fmt.Sprintf("User %s has been deleted successfully!", target.Username))

	if a.identity != nil && a.identity.ID == id {
		a.identity = nil
		printlnFn("Your own account was deleted; you have been logged out")
	}
	return nil
}

// Stats prints registration counters.
func (a *App) Stats(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	st, err := a.accounts.Stats(ctx)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Total users: %d", st.Total))
	printlnFn(fmt.Sprintf("Registered today: %d", st.Today))
	printlnFn(fmt.Sprintf("Registered this week: %d", st.ThisWeek))
	return nil
}
