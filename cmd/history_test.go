package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordTwice checks the same batch twice, changing the config in between
// so the two reports differ, and returns both results.
func recordTwice(env *testEnv) (checkJSON, checkJSON) {
	f := env.write("drafts.md", textBatch(20, 21, 22))

	var first, second checkJSON
	env.runJSON(&first, "check", f, "-p", "twitter", "--name", "launch")
	env.run("config", "--local", "gate.sameness_threshold", "0.5")
	env.runJSON(&second, "recheck", "launch")
	return first, second
}

func TestHistory(t *testing.T) {
	t.Run("lists reports newest first", func(t *testing.T) {
		env := newTestEnv(t)
		first, second := recordTwice(env)

		out := env.run("history", "launch")
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], second.Report))
		assert.True(t, strings.HasPrefix(lines[1], first.Report))
	})

	t.Run("limit", func(t *testing.T) {
		env := newTestEnv(t)
		_, second := recordTwice(env)

		var reports []map[string]any
		env.runJSON(&reports, "history", "launch", "-n", "1")
		require.Len(t, reports, 1)
		assert.Equal(t, second.Report, reports[0]["key"])
	})

	t.Run("with diff", func(t *testing.T) {
		env := newTestEnv(t)
		recordTwice(env)

		out := env.run("history", "launch", "--diff")
		env.contains(out, "===")
		env.contains(out, "+ ")
	})

	t.Run("since", func(t *testing.T) {
		env := newTestEnv(t)
		recordTwice(env)

		var reports []map[string]any
		env.runJSON(&reports, "history", "--since", "1h")
		assert.Len(t, reports, 2)

		_, err := env.runErr("history", "--since", "soon")
		assert.Error(t, err)
	})

	t.Run("unknown batch", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("history", "nope")
		assert.Error(t, err)
	})

	t.Run("needs a store", func(t *testing.T) {
		env := newBareEnv(t)
		out, err := env.runErr("history")
		assert.Error(t, err)
		env.contains(out, "qgate init")
	})
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)
	first, second := recordTwice(env)

	out := env.run("show", first.Report)
	env.contains(out, "Report "+first.Report)
	env.contains(out, "**Result:** passed")

	// A batch name shows the latest report
	out = env.run("show", "launch", "--raw")
	env.contains(out, "Report "+second.Report)

	var report map[string]any
	env.runJSON(&report, "show", second.Report)
	assert.Equal(t, second.Batch, report["batch"])
	assert.Equal(t, true, report["passed"])

	_, err := env.runErr("show", "zzzzzzzz")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	env := newTestEnv(t)
	first, second := recordTwice(env)

	out := env.run("diff", "launch")
	env.contains(out, "--- ")
	env.contains(out, "+++ ")
	env.contains(out, "suspiciously uniform")

	var d struct {
		Old     string `json:"old"`
		New     string `json:"new"`
		Changed bool   `json:"changed"`
	}
	env.runJSON(&d, "diff", first.Report, second.Report)
	assert.True(t, d.Changed)

	env.runJSON(&d, "diff", first.Report+":"+second.Report)
	assert.True(t, d.Changed)

	env.runJSON(&d, "diff", "--batch", "launch")
	assert.True(t, d.Changed)

	env.runJSON(&d, "diff", first.Report, first.Report)
	assert.False(t, d.Changed)

	_, err := env.runErr("diff", "a:")
	assert.Error(t, err)
	_, err = env.runErr("diff", "--batch", "launch", first.Report)
	assert.Error(t, err)
}
