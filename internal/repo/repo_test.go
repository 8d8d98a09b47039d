package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "qgate.db", DBFileName(""))
	assert.Equal(t, "qgate-staging.db", DBFileName("staging"))
	assert.Equal(t, "custom.db", DBFileName("custom.db"))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Init(false, "", false, dir))
	assert.FileExists(t, filepath.Join(dir, Dir, DBFile))
	assert.FileExists(t, filepath.Join(dir, Dir, ".gitignore"))

	err := Init(false, "", false, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(true, "", false, dir), "force reinitialises")
}

func TestInitLocal(t *testing.T) {
	dir := t.TempDir()
	qdir := filepath.Join(dir, Dir)

	require.NoError(t, Init(false, "", false, dir))
	require.NoError(t, Init(false, "scratch", true, dir))

	ignored, err := IsIgnored("scratch", qdir)
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = IsIgnored("", qdir)
	require.NoError(t, err)
	assert.False(t, ignored)

	dbs, err := ListDBs(qdir)
	require.NoError(t, err)
	require.Len(t, dbs, 2)
	byName := map[string]DBInfo{}
	for _, d := range dbs {
		byName[d.Name] = d
	}
	assert.False(t, byName[""].Local)
	assert.True(t, byName["scratch"].Local)
	assert.Equal(t, "qgate-scratch.db", byName["scratch"].File)

	require.NoError(t, UnignoreDB("scratch", qdir))
	ignored, err = IsIgnored("scratch", qdir)
	require.NoError(t, err)
	assert.False(t, ignored)

	data, err := os.ReadFile(filepath.Join(qdir, ".gitignore"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), localDBHeader)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(false, "", false, root))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	p, err := Discover("")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(root, Dir, DBFile))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Discover("missing")
	assert.ErrorIs(t, err, ErrNotInitialised)

	d, err := DiscoverDir()
	require.NoError(t, err)
	assert.Equal(t, Dir, filepath.Base(d))
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir, "")
	assert.ErrorIs(t, err, ErrNotInitialised)

	require.NoError(t, Init(false, "staging", false, dir))
	path, err := Locate(dir, "staging")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir, "qgate-staging.db"), path)

	_, err = Locate(dir, "")
	assert.ErrorIs(t, err, ErrNotInitialised, "only the named database exists")
}
