package localdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDatabase_MigratesAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "civichub.db")

	repos, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repos.Metadata.Set(ctx, "k", []byte("v")))
	require.NoError(t, repos.Close())

	repos, err = InitDatabase(ctx, path)
	require.NoError(t, err)
	defer repos.Close()

	v, err := repos.Metadata.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}

func TestInitDatabase_InMemory(t *testing.T) {
	repos, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	defer repos.Close()

	v, err := repos.Metadata.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, v)
}
