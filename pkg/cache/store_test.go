package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestStable(t *testing.T) {
	a := Digest([]byte("contract bytes"))
	b := Digest([]byte("contract bytes"))
	assert.Equal(t, a, b, "digest must be stable")
	assert.Len(t, a, 64, "expected hex sha256")
	assert.NotEqual(t, a, Digest([]byte("other")), "distinct inputs collided")
}

func TestKeyNamespacing(t *testing.T) {
	d := Digest([]byte("doc"))
	assert.NotEqual(t, Key("summarize", d), Key("risks", d),
		"summarize and risks keys must not collide")
}

func TestQAKeyTrimsQuestion(t *testing.T) {
	d := Digest([]byte("doc"))
	assert.Equal(t, QAKey(d, "what?"), QAKey(d, "  what?  "), "question not normalized")
	assert.NotEqual(t, QAKey(d, "a"), QAKey(d, "b"), "distinct questions collided")
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok, "expected clean miss")

	require.NoError(t, s.Put(ctx, "k", []byte("v1")))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	// Last write wins.
	require.NoError(t, s.Put(ctx, "k", []byte("v2")))
	v, _, _ = s.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), v)
	assert.Equal(t, 1, s.Len())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok, "expected clean miss")

	require.NoError(t, s.Put(ctx, "k", []byte("payload")))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), v)

	require.NoError(t, s.Put(ctx, "k", []byte("replaced")))
	v, _, _ = s.Get(ctx, "k")
	assert.Equal(t, []byte("replaced"), v)
}
