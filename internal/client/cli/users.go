package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ANITHAC1201/joicy/internal/users"
)

// SortOrder selects how the admin user list is ordered.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortAZ     SortOrder = "az"
	SortZA     SortOrder = "za"
)

// ParseSortOrder accepts newest, oldest, az and za (case-insensitive). An
// empty string means newest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortAZ, SortZA:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want newest, oldest, az or za)", s)
	}
}

// FilterUsers keeps the users whose username or email contains term,
// ignoring case. An empty term keeps everyone.
func FilterUsers(list []users.Summary, term string) []users.Summary {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]users.Summary, 0, len(list))
	for _, u := range list {
		if term == "" ||
			strings.Contains(strings.ToLower(u.Username), term) ||
			strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out
}

// SortUsers returns a sorted copy of list. Oldest is the exact reverse of
// newest; the username orders are case-insensitive and stable.
func SortUsers(list []users.Summary, order SortOrder) []users.Summary {
	out := slices.Clone(list)

	slices.SortStableFunc(out, func(a, b users.Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	switch order {
	case SortOldest:
		slices.Reverse(out)
	case SortAZ:
		slices.SortStableFunc(out, func(a, b users.Summary) int {
			return strings.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username))
		})
	case SortZA:
		slices.SortStableFunc(out, func(a, b users.Summary) int {
			return strings.Compare(strings.ToLower(b.Username), strings.ToLower(a.Username))
		})
	}
	return out
}
