package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("guidance")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("guidance", `{"streaks":{}}`))
	v, ok, err := s.Get("guidance")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"streaks":{}}`, v)

	// Overwrite wins.
	require.NoError(t, s.Set("guidance", `{}`))
	v, _, err = s.Get("guidance")
	require.NoError(t, err)
	assert.Equal(t, `{}`, v)
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	keys, err := s2.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestMemoryKV(t *testing.T) {
	s := NewMemoryKV()
	require.NoError(t, s.Set("a", "1"))
	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
