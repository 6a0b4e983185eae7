package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingwander/weddingwander/internal/config"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "absent")
		assert.ErrorIs(t, err, ErrMissing)

		ok, err := Exists(ctx, s, "absent")
		require.NoError(t, err)
		assert.False(t, ok)

		records, err := ReadCollection[record](ctx, s, "absent")
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("collection round trip", func(t *testing.T) {
		in := []record{{ID: "a", Count: 1}, {ID: "b", Count: 2}}
		require.NoError(t, WriteCollection(ctx, s, "records", in))

		out, err := ReadCollection[record](ctx, s, "records")
		require.NoError(t, err)
		assert.Equal(t, in, out)

		require.NoError(t, WriteCollection(ctx, s, "records", []record{{ID: "c"}}))
		out, err = ReadCollection[record](ctx, s, "records")
		require.NoError(t, err)
		assert.Equal(t, []record{{ID: "c"}}, out)
	})

	t.Run("nil collection is stored as empty", func(t *testing.T) {
		require.NoError(t, WriteCollection[record](ctx, s, "empty", nil))
		ok, err := Exists(ctx, s, "empty")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("document round trip and remove", func(t *testing.T) {
		_, found, err := ReadDocument[record](ctx, s, "doc")
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, WriteDocument(ctx, s, "doc", record{ID: "x", Count: 7}))
		doc, found, err := ReadDocument[record](ctx, s, "doc")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, record{ID: "x", Count: 7}, doc)

		require.NoError(t, s.Remove(ctx, "doc"))
		_, found, err = ReadDocument[record](ctx, s, "doc")
		require.NoError(t, err)
		assert.False(t, found)

		// Removing an absent key is not an error.
		require.NoError(t, s.Remove(ctx, "doc"))
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	value := []byte(`[1]`)
	require.NoError(t, s.Set(ctx, "k", value))
	value[1] = '2'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

func TestCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, CollectionWeddings, []byte(`{not json`)))

	_, err := ReadCollection[record](ctx, s, CollectionWeddings)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, _, err = ReadDocument[record](ctx, s, CollectionWeddings)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, WriteCollection(ctx, s, "records", []record{{ID: "kept"}}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	out, err := ReadCollection[record](ctx, s, "records")
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "kept"}}, out)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "test:")
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)

	require.NoError(t, WriteCollection(context.Background(), s, CollectionUsers, []record{{ID: "u"}}))
	assert.True(t, mr.Exists("test:users"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	mr := miniredis.RunT(t)
	s, err = Open(ctx, config.StorageConfig{Driver: "redis", Redis: config.RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.StorageConfig{Driver: "etcd"})
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("WANDER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("WANDER_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := newPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	s, err := newPostgresStore(ctx, pool)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	for _, k := range []string{"absent", "records", "empty", "doc"} {
		require.NoError(t, s.Remove(ctx, k))
	}
	exerciseStore(t, s)
}
