package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Run("passing batch is recorded", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.write("drafts.md", textBatch(12, 18, 25, 9))

		out := env.run("check", f, "-p", "twitter", "--name", "launch")
		env.contains(out, "PASS")
		env.contains(out, "3/4 posts in optimal range (12-30 words for twitter)")
		env.contains(out, "Recorded report")
		env.contains(out, "new batch")
	})

	t.Run("failing batch lists issues", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.write("drafts.md", textBatch(3, 18, 60))

		out := env.run("check", f, "-p", "x")
		env.contains(out, "FAIL")
		env.contains(out, "issues (2)")
		env.contains(out, "below minimum of 5 for twitter")
		env.contains(out, "above maximum of 50 for twitter")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.write("drafts.md", textBatch(12, 18, 25))

		var res checkJSON
		env.runJSON(&res, "check", f, "-p", "twitter")
		assert.True(t, res.Passed)
		assert.Equal(t, "twitter", res.Platform)
		assert.Equal(t, 3, res.Posts)
		assert.Equal(t, 3, res.OptimalCount)
		assert.NotEmpty(t, res.Batch)
		assert.NotEmpty(t, res.Report)
		assert.True(t, res.NewBatch)
		assert.Equal(t, map[string]int{"0-10": 0, "10-15": 1, "15-20": 1, "20-30": 1, "30+": 0}, res.Distribution)
	})

	t.Run("identical batch reuses stored batch", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.write("drafts.md", textBatch(12, 18, 25))

		var first, second checkJSON
		env.runJSON(&first, "check", f, "-p", "twitter")
		env.runJSON(&second, "check", f, "-p", "twitter")
		assert.Equal(t, first.Batch, second.Batch)
		assert.NotEqual(t, first.Report, second.Report)
		assert.False(t, second.NewBatch)
	})

	t.Run("dry run records nothing", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.write("drafts.md", textBatch(12, 18))

		var res checkJSON
		env.runJSON(&res, "check", f, "-p", "twitter", "--dry-run")
		assert.True(t, res.DryRun)
		assert.Empty(t, res.Report)

		_, err := env.runErr("history")
		assert.Error(t, err, "no reports recorded")
	})

	t.Run("stdin", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.runStdin(textBatch(12, 18), "check", "-", "-p", "twitter")
		env.contains(out, "PASS")
	})

	t.Run("JSON input with per-post platforms", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.write("posts.json", `{"name": "weekly", "posts": [
			{"id": "a", "content": "`+words(150)+`", "platform": "linkedin"},
			{"id": "b", "content": "`+words(220)+`"}
		]}`)

		var res checkJSON
		env.runJSON(&res, "check", f)
		assert.Equal(t, "linkedin", res.Platform)
		assert.True(t, res.Passed)
	})

	t.Run("uniform lengths warn", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.write("drafts.md", textBatch(20, 20, 20, 20))

		var res checkJSON
		env.runJSON(&res, "check", f, "-p", "twitter")
		assert.True(t, res.Passed, "a warning does not fail the batch")
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "suspiciously uniform")
	})
}

func TestCheck_Strict(t *testing.T) {
	env := newTestEnv(t)
	pass := env.write("pass.md", textBatch(12, 18))
	fail := env.write("fail.md", textBatch(2, 18))

	env.run("check", pass, "-p", "twitter", "--strict")

	out, err := env.runErr("check", fail, "-p", "twitter", "--strict")
	require.Error(t, err)
	env.contains(out, "FAIL")
	env.contains(out, "length gate failed")

	// Without --strict a failing batch still exits 0
	env.run("check", fail, "-p", "twitter")
}

func TestCheck_NoStore(t *testing.T) {
	env := newBareEnv(t)
	f := env.write("drafts.md", textBatch(12, 18))

	out := env.run("check", f, "-p", "twitter")
	env.contains(out, "no qgate store found")
	env.contains(out, "Dry run: nothing recorded")
}

func TestCheck_Errors(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("drafts.md", textBatch(12))

	_, err := env.runErr("check", f, "-p", "myspace")
	assert.Error(t, err)

	_, err = env.runErr("check", "missing.md")
	assert.Error(t, err)

	bad := env.write("posts.csv", "a,b")
	out, err := env.runErr("check", bad)
	assert.Error(t, err)
	env.contains(out, "unknown input format")
}

func TestDetect(t *testing.T) {
	env := newBareEnv(t)
	f := env.write("posts.json", `[{"content": "hello there", "platform": "newsletter"}]`)

	out := env.run("detect", f)
	env.contains(out, "Platform: email")
	env.contains(out, "75-600")

	var res struct {
		Platform string   `json:"platform"`
		Known    bool     `json:"known"`
		Buckets  []string `json:"buckets"`
	}
	other := env.write("plain.md", "just some words")
	env.runJSON(&res, "detect", other)
	assert.Equal(t, "unknown", res.Platform)
	assert.False(t, res.Known)
	assert.Equal(t, []string{"0-50", "50-100", "100-150", "150-200", "200-300", "300+"}, res.Buckets)
}

func TestCount(t *testing.T) {
	env := newBareEnv(t)
	f := env.write("drafts.md", textBatch(3, 12, 12, 40))

	var res struct {
		Posts        int            `json:"posts"`
		Distribution map[string]int `json:"distribution"`
	}
	env.runJSON(&res, "count", f, "-p", "twitter")
	assert.Equal(t, 4, res.Posts)
	assert.Equal(t, 1, res.Distribution["0-10"])
	assert.Equal(t, 2, res.Distribution["10-15"])
	assert.Equal(t, 1, res.Distribution["30+"])
}

func TestPlatformsAndBuckets(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("platforms")
	env.contains(out, "twitter")
	env.contains(out, "unknown")

	var specs []map[string]any
	env.runJSON(&specs, "platforms")
	require.Len(t, specs, 6)
	assert.Equal(t, "twitter", specs[0]["platform"])
	assert.EqualValues(t, 5, specs[0]["min_words"])

	out = env.run("buckets", "x")
	env.contains(out, "twitter: 0-10, 10-15, 15-20, 20-30, 30+")

	var all map[string][]string
	env.runJSON(&all, "buckets")
	assert.Len(t, all, 6)

	_, err := env.runErr("buckets", "myspace")
	assert.Error(t, err)
}
