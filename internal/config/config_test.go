package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, int64(DefaultMaxContent), c.MaxContent())
	assert.Equal(t, DefaultMaxPosts, c.MaxPosts())
	assert.Equal(t, DefaultSamenessThreshold, c.SamenessThreshold())
	for _, k := range ValidKeys() {
		assert.False(t, c.IsSet(k), k)
	}
}

func TestSetGet(t *testing.T) {
	var c Config

	tests := []struct {
		key, value string
	}{
		{"author.name", "Ada"},
		{"author.email", "ada@example.com"},
		{"limits.max_content", "2048"},
		{"limits.max_posts", "50"},
		{"gate.sameness_threshold", "0.75"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
			assert.True(t, c.IsSet(tt.key))
			assert.Equal(t, tt.value, c.All()[tt.key])
		})
	}
}

func TestSetInvalid(t *testing.T) {
	var c Config

	tests := []struct {
		key, value string
	}{
		{"limits.max_content", "0"},
		{"limits.max_content", "abc"},
		{"limits.max_content", "999999999999"},
		{"limits.max_posts", "-1"},
		{"limits.max_posts", "2000000"},
		{"gate.sameness_threshold", "0"},
		{"gate.sameness_threshold", "1.5"},
		{"gate.sameness_threshold", "high"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, c.Set(tt.key, tt.value), ErrInvalidValue)
			assert.False(t, c.IsSet(tt.key))
		})
	}

	assert.ErrorIs(t, c.Set("sync.files", "true"), ErrUnknownKey)
	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c, err := loadFile(path, ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, c.Set("author.name", "Ada"))
	require.NoError(t, c.Set("limits.max_posts", "25"))
	require.NoError(t, c.Set("gate.sameness_threshold", "0.8"))
	require.NoError(t, c.Save())

	back, err := loadFile(path, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, "Ada", back.Author.Name)
	assert.Equal(t, 25, back.MaxPosts())
	assert.Equal(t, 0.8, back.SamenessThreshold())
	assert.False(t, back.IsSet("limits.max_content"))
	assert.Equal(t, ScopeLocal, back.Scope())
}

func TestLoadRejectsOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gate:\n  sameness_threshold: 2\n"), 0644))

	_, err := loadFile(path, ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("author: [unclosed"), 0644))

	_, err := loadFile(path, ScopeLocal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}
