package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_PutThenGet(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("metadata:alpha:*", []byte(`{"name":"alpha"}`)))

	v, ok, err := s.Get("metadata:alpha:*")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"name":"alpha"}`, string(v))
}

func TestStore_MissOnUnknownKey(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("metadata:missing:*")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_HitRateTracksAccesses(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, 0.0, s.HitRate())

	_, _, _ = s.Get("artifact:alpha:1.0")
	require.NoError(t, s.Put("artifact:alpha:1.0", []byte("blob")))
	_, _, _ = s.Get("artifact:alpha:1.0")

	require.InDelta(t, 0.5, s.HitRate(), 0.001)
}

func TestStore_L2SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Put("metadata:beta:*", []byte("payload")))
	require.NoError(t, s1.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get("metadata:beta:*")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "payload", string(v))
}

func TestStore_Clear(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("metadata:alpha:*", []byte("x")))
	require.NoError(t, s.Clear())

	_, ok, err := s.Get("metadata:alpha:*")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0.0, s.HitRate())
}
