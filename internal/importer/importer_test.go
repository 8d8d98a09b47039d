package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "just one post\n", []string{"just one post"}},
		{"separated", "first\n---\nsecond\n", []string{"first", "second"}},
		{"multiline post", "line one\nline two\n---\nnext", []string{"line one\nline two", "next"}},
		{"blank posts dropped", "---\n\n---\nonly\n---\n", []string{"only"}},
		{"crlf", "a\r\n---\r\nb\r\n", []string{"a", "b"}},
		{"padded separator", "a\n  ---  \nb", []string{"a", "b"}},
		{"dashes inside a line", "a --- b", []string{"a --- b"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestParse_JSON(t *testing.T) {
	t.Run("document", func(t *testing.T) {
		b, err := Parse([]byte(`{"name":"launch","platform":"X","posts":[
			{"id":"p1","content":"hello world"},
			{"content":"second","platform":"linkedin"}]}`), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "launch", b.Name)
		require.Len(t, b.Posts, 2)
		assert.Equal(t, platform.Twitter, b.Posts[0].Platform, "batch platform applies to posts without one")
		assert.Equal(t, platform.LinkedIn, b.Posts[1].Platform)
		assert.Equal(t, "p1", b.Posts[0].ID)
	})

	t.Run("array of posts", func(t *testing.T) {
		b, err := Parse([]byte(`[{"content":"a b c","platform":"facebook"}]`), FormatJSON)
		require.NoError(t, err)
		require.Len(t, b.Posts, 1)
		assert.Equal(t, platform.Facebook, b.Posts[0].Platform)
	})

	t.Run("array of strings", func(t *testing.T) {
		b, err := Parse([]byte(`["one", "two three"]`), FormatJSON)
		require.NoError(t, err)
		require.Len(t, b.Posts, 2)
		assert.Equal(t, "two three", b.Posts[1].Content)
	})

	t.Run("empty", func(t *testing.T) {
		b, err := Parse([]byte("  "), FormatJSON)
		require.NoError(t, err)
		assert.Empty(t, b.Posts)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Parse([]byte(`[1, 2]`), FormatJSON)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding json")
	})
}

func TestParse_YAML(t *testing.T) {
	b, err := Parse([]byte(`name: newsletter
platform: Newsletter
posts:
  - id: issue-1
    content: |
      Dear reader,
      this week we shipped.
  - content: short
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "newsletter", b.Name)
	require.Len(t, b.Posts, 2)
	assert.Equal(t, platform.Email, b.Posts[0].Platform)
	assert.Equal(t, 6, b.Posts[0].WordCount())

	b, err = Parse([]byte("- first post\n- second post\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, b.Posts, 2)
	assert.Equal(t, "second post", b.Posts[1].Content)

	b, err = Parse([]byte("- content: a\n  platform: blog\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, platform.Blog, b.Posts[0].Platform)

	_, err = Parse([]byte("just a scalar"), FormatYAML)
	assert.Error(t, err)
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse([]byte("x"), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFor(t *testing.T) {
	for name, want := range map[string]string{
		"posts.json": FormatJSON,
		"posts.YAML": FormatYAML,
		"posts.yml":  FormatYAML,
		"posts.md":   FormatText,
		"posts.txt":  FormatText,
	} {
		got, err := FormatFor(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := FormatFor("posts.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSniff(t *testing.T) {
	assert.Equal(t, FormatJSON, Sniff([]byte("  [\"a\"]")))
	assert.Equal(t, FormatJSON, Sniff([]byte("{}")))
	assert.Equal(t, FormatText, Sniff([]byte("hello\n---\nworld")))
	assert.Equal(t, FormatText, Sniff(nil))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "posts.md", "first post here\n---\nsecond post\n")

	b, err := Load(path, nil, Options{Platform: platform.Twitter, Name: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, "weekly", b.Name)
	require.Len(t, b.Posts, 2)
	for _, p := range b.Posts {
		assert.Equal(t, platform.Twitter, p.Platform)
		assert.Equal(t, post.DeriveID(p.Content), p.ID)
	}

	_, err = Load(filepath.Join(dir, "missing.md"), nil, Options{})
	assert.Error(t, err)

	csv := writeFile(t, dir, "posts.csv", "a,b")
	_, err = Load(csv, nil, Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	b, err = Load(csv, nil, Options{Format: FormatText})
	require.NoError(t, err, "explicit format overrides the extension")
	assert.Len(t, b.Posts, 1)
}

func TestLoad_Stdin(t *testing.T) {
	b, err := Load(Stdin, strings.NewReader(`["one two", "three"]`), Options{})
	require.NoError(t, err)
	assert.Len(t, b.Posts, 2)

	b, err = Load(Stdin, strings.NewReader("one\n---\ntwo\n---\nthree"), Options{})
	require.NoError(t, err)
	assert.Len(t, b.Posts, 3)

	_, err = Load(Stdin, strings.NewReader(strings.Repeat("x", 20)), Options{MaxSize: 10})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoad_Dir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "campaign")
	writeFile(t, dir, "b.md", "second post\n")
	writeFile(t, dir, "a.txt", "first post")
	writeFile(t, dir, "nested/c.md", "third")
	writeFile(t, dir, ".draft.md", "hidden")
	writeFile(t, dir, "notes.json", `["ignored"]`)

	b, err := Load(dir, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "campaign", b.Name)
	require.Len(t, b.Posts, 3)
	assert.Equal(t, "a", b.Posts[0].ID)
	assert.Equal(t, "b", b.Posts[1].ID)
	assert.Equal(t, "second post", b.Posts[1].Content)
	assert.Equal(t, "nested/c", b.Posts[2].ID)

	b, err = Load(dir, nil, Options{Hidden: true})
	require.NoError(t, err)
	assert.Len(t, b.Posts, 4)
}
