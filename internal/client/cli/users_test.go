package cli

import (
	"testing"
	"time"

	"github.com/ANITHAC1201/joicy/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUsers() []users.Summary {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []users.Summary{
		{ID: 4, Username: "dave", Email: "dave@corp.io", CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, Username: "Carol", Email: "carol@x.com", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, Username: "bob", Email: "bob@corp.io", CreatedAt: base},
		{ID: 1, Username: "alice", Email: "alice@x.com", CreatedAt: base},
	}
}

func ids(list []users.Summary) []int64 {
	out := make([]int64, 0, len(list))
	for _, u := range list {
		out = append(out, u.ID)
	}
	return out
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{"": SortNewest, "NEWEST": SortNewest, "oldest": SortOldest, "az": SortAZ, " za ": SortZA} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortOrder("random")
	require.Error(t, err)
}

func TestSortUsers(t *testing.T) {
	list := sampleUsers()

	assert.Equal(t, []int64{4, 3, 2, 1}, ids(SortUsers(list, SortNewest)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(SortUsers(list, SortOldest)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(SortUsers(list, SortAZ)))
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(SortUsers(list, SortZA)))

	assert.Equal(t, []int64{4, 3, 2, 1}, ids(list), "input must not be reordered")
}

func TestFilterUsers(t *testing.T) {
	list := sampleUsers()

	assert.Equal(t, []int64{4, 2}, ids(FilterUsers(list, "CORP")))
	assert.Equal(t, []int64{3}, ids(FilterUsers(list, "carol")))
	assert.Len(t, FilterUsers(list, "  "), 4)
	assert.Empty(t, FilterUsers(list, "nobody"))
}

func TestParseUsersArgs(t *testing.T) {
	order, term, err := parseUsersArgs([]string{"corp", "-sort", "za"})
	require.NoError(t, err)
	assert.Equal(t, SortZA, order)
	assert.Equal(t, "corp", term)

	order, term, err = parseUsersArgs([]string{"--sort=oldest"})
	require.NoError(t, err)
	assert.Equal(t, SortOldest, order)
	assert.Empty(t, term)

	_, _, err = parseUsersArgs([]string{"-sort"})
	require.Error(t, err)

	_, _, err = parseUsersArgs([]string{"-sort", "sideways"})
	require.Error(t, err)
}
