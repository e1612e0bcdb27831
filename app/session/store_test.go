package session

import (
	"path/filepath"
	"testing"
	"time"

	"simpleblog/app/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func setupTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open("", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreLifecycle(t *testing.T) {
	store := setupTestStore(t, time.Hour)

	token, err := store.Create("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	principal, err := store.Lookup(token)
	require.NoError(t, err)
	assert.Equal(t, auth.Principal{Username: "admin"}, principal)
	assert.True(t, principal.IsAuthenticated())

	require.NoError(t, store.Delete(token))

	principal, err = store.Lookup(token)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, principal.IsAuthenticated())
}

func TestStoreTokensAreUnique(t *testing.T) {
	store := setupTestStore(t, time.Hour)

	a, err := store.Create("admin")
	require.NoError(t, err)
	b, err := store.Create("admin")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStoreRejectsEmptyInput(t *testing.T) {
	store := setupTestStore(t, time.Hour)

	_, err := store.Create("")
	assert.Error(t, err)

	_, err = store.Lookup("")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Lookup("not-a-token")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete("not-a-token"))
}

func TestStoreExpiry(t *testing.T) {
	store := setupTestStore(t, time.Second)

	token, err := store.Create("admin")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := store.Lookup(token)
		return err == ErrNotFound
	}, 5*time.Second, 100*time.Millisecond)
}

func TestStorePersistsOnDisk(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreCurrent(),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	dir := filepath.Join(t.TempDir(), "sessions")

	store, err := Open(dir, time.Hour)
	require.NoError(t, err)
	token, err := store.Create("admin")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(dir, time.Hour)
	require.NoError(t, err)
	principal, err := reopened.Lookup(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
	require.NoError(t, reopened.Close())
}
