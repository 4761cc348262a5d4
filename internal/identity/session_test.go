package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goabroadai/goabroad/internal/store"
)

func openRepo(t *testing.T) store.StateRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "id.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.StateRepo()
}

func TestLoad_Empty(t *testing.T) {
	sess, err := Load(context.Background(), openRepo(t))
	require.NoError(t, err)
	assert.Zero(t, sess.UserID())
	assert.False(t, sess.HasIdentity())
}

func TestRememberPersists(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	sess, err := Load(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, sess.Remember(ctx, 42))
	assert.Equal(t, int64(42), sess.UserID())

	raw, ok, err := repo.Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "42", raw)

	reloaded, err := Load(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, int64(42), reloaded.UserID())
}

func TestRemember_RejectsNonPositive(t *testing.T) {
	sess, err := Load(context.Background(), openRepo(t))
	require.NoError(t, err)
	assert.Error(t, sess.Remember(context.Background(), 0))
	assert.False(t, sess.HasIdentity())
}

func TestLoad_IgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.Set(ctx, Key, "not-a-number"))

	sess, err := Load(ctx, repo)
	require.NoError(t, err)
	assert.Zero(t, sess.UserID())
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.Set(ctx, Key, "7"))

	sess, err := Load(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, int64(7), sess.UserID())

	require.NoError(t, sess.Forget(ctx))
	assert.Zero(t, sess.UserID())
	_, ok, err := repo.Get(ctx, Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingRepo struct{ store.StateRepo }

func (failingRepo) Set(context.Context, string, string) error { return errors.New("read-only") }

func TestRemember_WriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	sess, err := Load(ctx, openRepo(t))
	require.NoError(t, err)
	sess.repo = failingRepo{sess.repo}

	require.Error(t, sess.Remember(ctx, 9))
	assert.Zero(t, sess.UserID())
}
