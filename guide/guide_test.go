package guide

import (
	"io/fs"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	index, err := Get("")
	require.NoError(t, err)
	assert.NotEmpty(t, index)

	same, err := Get("guide")
	require.NoError(t, err)
	assert.Equal(t, index, same)

	check, err := Get("check")
	require.NoError(t, err)
	for _, alt := range []string{"CHECK", " check ", "qgate check"} {
		got, err := Get(alt)
		require.NoError(t, err, alt)
		assert.Equal(t, check, got, alt)
	}

	_, err = Get("nope")
	assert.ErrorIs(t, err, ErrUnknownTopic)
	assert.Contains(t, err.Error(), "check, detect")
}

func TestGet_Install(t *testing.T) {
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
	default:
		t.Skip("no install page for " + runtime.GOOS)
	}
	got, err := Get("install")
	require.NoError(t, err)
	want, err := files.ReadFile("install-" + runtime.GOOS + ".md")
	require.NoError(t, err)
	assert.Equal(t, string(want), got)
}

// Every embedded page belongs to a group and every grouped topic resolves.
func TestGroupsCoverPages(t *testing.T) {
	listed := map[string]bool{}
	for _, name := range List() {
		assert.False(t, listed[name], "topic %s listed twice", name)
		listed[name] = true
		if name == "install" {
			continue
		}
		_, err := Get(name)
		assert.NoError(t, err, name)
	}

	pages, err := fs.Glob(files, "*.md")
	require.NoError(t, err)
	for _, p := range pages {
		name := strings.TrimSuffix(p, ".md")
		switch {
		case name == "guide":
		case strings.HasPrefix(name, "install-"):
			assert.True(t, listed["install"])
		default:
			assert.True(t, listed[name], "page %s is not in any group", name)
		}
	}
}

func TestGroups_Copy(t *testing.T) {
	g := Groups()
	g[0].Topics[0] = "changed"
	assert.Equal(t, "check", Groups()[0].Topics[0])
}
