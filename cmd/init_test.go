package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("basic init", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init")
		env.contains(out, "Initialised qgate store in .qgate/qgate.db")

		assert.FileExists(t, filepath.Join(env.dir, ".qgate", "qgate.db"))
		assert.NoFileExists(t, filepath.Join(env.dir, ".qgate", "config.yaml"))
	})

	t.Run("already initialised", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("init")
		assert.Error(t, err)
	})

	t.Run("force recreates the store", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("check", env.write("d.md", textBatch(12, 18)), "-p", "twitter")

		env.run("init", "--force")
		_, err := env.runErr("history")
		assert.Error(t, err, "reports are gone after a forced init")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newBareEnv(t)
		var res struct {
			Path  string `json:"path"`
			Local bool   `json:"local"`
		}
		env.runJSON(&res, "init", "--local")
		assert.Equal(t, ".qgate/qgate.db", res.Path)
		assert.True(t, res.Local)
	})
}

func TestInit_Dir(t *testing.T) {
	env := newBareEnv(t)
	target := t.TempDir()

	env.run("init", "--dir", target)
	assert.FileExists(t, filepath.Join(target, ".qgate", "qgate.db"))
	assert.NoFileExists(t, filepath.Join(env.dir, ".qgate", "qgate.db"))

	// Checks against --dir are recorded there
	var res checkJSON
	env.runJSON(&res, "check", env.write("d.md", textBatch(12, 18)), "-p", "twitter", "--dir", target)
	assert.NotEmpty(t, res.Report)

	var reports []map[string]any
	env.runJSON(&reports, "history", "--dir", target)
	assert.Len(t, reports, 1)

	out, err := env.runErr("init", "--dir", target, "--local")
	assert.Error(t, err)
	env.contains(out, "cannot use --local with --dir")
}

func TestInit_DB(t *testing.T) {
	t.Run("named database", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init", "--db", "staging")
		env.contains(out, "qgate-staging.db")
		assert.FileExists(t, filepath.Join(env.dir, ".qgate", "qgate-staging.db"))
	})

	t.Run("databases are independent", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("init", "--db", "staging")

		env.run("check", env.write("d.md", textBatch(12, 18)), "-p", "twitter", "--db", "staging")

		var reports []map[string]any
		env.runJSON(&reports, "history", "--db", "staging")
		assert.Len(t, reports, 1)

		_, err := env.runErr("history")
		assert.Error(t, err, "default database has no reports")
	})

	t.Run("QGATE_DB env var", func(t *testing.T) {
		env := newBareEnv(t)
		cmd := env.command("init")
		cmd.Env = append(cmd.Env, "QGATE_DB=env-test")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "init with QGATE_DB failed: %s", out)
		assert.FileExists(t, filepath.Join(env.dir, ".qgate", "qgate-env-test.db"))
	})
}

func TestDB(t *testing.T) {
	env := newTestEnv(t)
	env.run("init", "--db", "staging")

	out := env.run("db")
	env.contains(out, "qgate.db")
	env.contains(out, "qgate-staging.db")

	out = env.run("db", "staging", "--local")
	env.contains(out, "qgate-staging.db marked as local")

	data, err := os.ReadFile(filepath.Join(env.dir, ".qgate", ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "qgate-staging.db")

	out = env.run("db", "staging", "--share")
	env.contains(out, "marked as shared")
}
