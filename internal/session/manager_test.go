package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// count reports the number of stored sessions, expired ones included.
func (s *MemoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

var alice = users.Identity{ID: 1, Username: "alice", Email: "alice@x.com", Role: common.RoleUser}

func newTestManager() (*Manager, *MemoryStore) {
	store := NewMemoryStore()
	return NewManager(store, []byte("secret"), time.Hour), store
}

func TestManager_IssueResolveRevoke(t *testing.T) {
	m, store := newTestManager()
	ctx := context.Background()

	tok, err := m.Issue(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, store.count())

	got, err := m.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	require.NoError(t, m.Revoke(ctx, tok))
	_, err = m.Resolve(ctx, tok)
	require.ErrorIs(t, err, common.ErrSessionNotFound)

	// second logout is a no-op
	require.NoError(t, m.Revoke(ctx, tok))
}

func TestManager_TokensAreIndependent(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	t1, err := m.Issue(ctx, alice)
	require.NoError(t, err)
	t2, err := m.Issue(ctx, alice)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)

	require.NoError(t, m.Revoke(ctx, t1))

	_, err = m.Resolve(ctx, t2)
	require.NoError(t, err)
}

func TestManager_RevokeUser(t *testing.T) {
	m, store := newTestManager()
	ctx := context.Background()

	bob := users.Identity{ID: 2, Username: "bob", Email: "bob@x.com", Role: common.RoleUser}

	a1, _ := m.Issue(ctx, alice)
	a2, _ := m.Issue(ctx, alice)
	b1, _ := m.Issue(ctx, bob)

	require.NoError(t, m.RevokeUser(ctx, alice.ID))

	for _, tok := range []string{a1, a2} {
		_, err := m.Resolve(ctx, tok)
		require.ErrorIs(t, err, common.ErrSessionNotFound)
	}
	_, err := m.Resolve(ctx, b1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.count())
}

func TestManager_ExpiredToken(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := m.Issue(ctx, alice)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)

	require.NoError(t, m.Revoke(ctx, tok))
}

func TestManager_ForeignToken(t *testing.T) {
	m, _ := newTestManager()
	other := NewManager(NewMemoryStore(), []byte("other"), time.Hour)
	ctx := context.Background()

	tok, err := other.Issue(ctx, alice)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
	require.ErrorIs(t, m.Revoke(ctx, tok), common.ErrInvalidToken)
}

func TestManager_SubjectMismatch(t *testing.T) {
	m, store := newTestManager()
	ctx := context.Background()

	tok, err := GenerateToken("sess-x", 99, m.secret, time.Now(), time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "sess-x", alice, time.Hour))

	_, err = m.Resolve(ctx, tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "s1", alice, time.Minute))

	_, err := store.Load(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Load(ctx, "s1")
	require.ErrorIs(t, err, common.ErrSessionNotFound)
	assert.Equal(t, 0, store.count())
}

func TestMemoryStore_DeleteUnknown(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Delete(context.Background(), "nope"))
	require.NoError(t, store.DeleteUser(context.Background(), 5))
}

type countingStore struct {
	*MemoryStore
	loads atomic.Int32
	gate  chan struct{}
}

func (s *countingStore) Load(ctx context.Context, id string) (users.Identity, error) {
	s.loads.Add(1)
	<-s.gate
	return s.MemoryStore.Load(ctx, id)
}

func TestManager_ConcurrentResolve(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore(), gate: make(chan struct{})}
	m := NewManager(store, []byte("secret"), time.Hour)
	ctx := context.Background()

	tok, err := m.Issue(ctx, alice)
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Resolve(ctx, tok)
			if err == nil && got != alice {
				err = fmt.Errorf("got %+v", got)
			}
			errs <- err
		}()
	}

	close(store.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	loads := store.loads.Load()
	assert.GreaterOrEqual(t, loads, int32(1))
	assert.LessOrEqual(t, loads, int32(n))
}

// cancelAwareStore fails loads whose ctx has ended by the time the gate opens.
type cancelAwareStore struct {
	*MemoryStore
	started chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func (s *cancelAwareStore) Load(ctx context.Context, id string) (users.Identity, error) {
	s.once.Do(func() { close(s.started) })
	<-s.gate
	if err := ctx.Err(); err != nil {
		return users.Identity{}, err
	}
	return s.MemoryStore.Load(ctx, id)
}

func TestManager_ResolveCancelledCallerDoesNotFailOthers(t *testing.T) {
	store := &cancelAwareStore{
		MemoryStore: NewMemoryStore(),
		started:     make(chan struct{}),
		gate:        make(chan struct{}),
	}
	m := NewManager(store, []byte("secret"), time.Hour)

	tok, err := m.Issue(context.Background(), alice)
	require.NoError(t, err)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := m.Resolve(firstCtx, tok)
		firstErr <- err
	}()
	<-store.started

	type result struct {
		id  users.Identity
		err error
	}
	second := make(chan result, 1)
	go func() {
		id, err := m.Resolve(context.Background(), tok)
		second <- result{id, err}
	}()

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(store.gate)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, alice, got.id)
}
