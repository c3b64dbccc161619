package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Storage {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "db", "storage.db"))
	require.NoError(t, err)

	out := map[string]Storage{
		"file":   NewFileStorage(filepath.Join(dir, "nested", "storage.yml")),
		"sqlite": sq,
		"memory": NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range out {
			s.Close()
		}
	})
	return out
}

func TestStorageContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.GetItem("user")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem("user", `{"id":"1"}`))
			require.NoError(t, s.SetItem("user", `{"id":"2"}`))
			v, ok, err := s.GetItem("user")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"id":"2"}`, v)

			require.NoError(t, s.SetItem("other", "x"))
			require.NoError(t, s.RemoveItem("user"))
			_, ok, err = s.GetItem("user")
			require.NoError(t, err)
			assert.False(t, ok)

			v, ok, _ = s.GetItem("other")
			assert.True(t, ok)
			assert.Equal(t, "x", v)

			require.NoError(t, s.RemoveItem("never-set"))
		})
	}
}

func TestFileStoragePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.yml")
	require.NoError(t, NewFileStorage(path).SetItem("user", "value: with colon"))

	v, ok, err := NewFileStorage(path).GetItem("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value: with colon", v)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind")
}

func TestFileStorageCorruptReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.yml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0600))

	s := NewFileStorage(path)
	_, ok, err := s.GetItem("user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem("user", "fresh"))
	v, _, _ := s.GetItem("user")
	assert.Equal(t, "fresh", v)
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem("user", "abc"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.GetItem("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", filepath.Join(dir, "a.yml"))
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	s, err = Open(BackendSQLite, filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, s)
	s.Close()

	s, err = Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open("redis", "")
	assert.Error(t, err)
}
