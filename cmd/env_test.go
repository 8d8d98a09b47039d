// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> service layer -> store layer -> SQLite.
//
// The binary is built once and run in a temp directory per test. HOME points
// at a second temp directory so global config and the audit log never touch
// the developer's machine.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the qgate binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "qgate-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "qgate"
		if os.PathSeparator == '\\' {
			binaryName = "qgate.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates a temporary directory without a store.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates a temporary directory with an initialised qgate store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "QGATE_DB=", "QGATE_DIR=")
	return cmd
}

// run executes qgate with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("qgate %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes qgate and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes qgate with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("qgate %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes qgate with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runJSON executes qgate with -o json and decodes stdout into v. Stderr is
// kept out of the decoded stream.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	cmd := e.command(append(args, "-o", "json")...)
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = string(ee.Stderr)
		}
		e.t.Fatalf("qgate %v failed: %v\nstdout: %s\nstderr: %s", args, err, out, stderr)
	}
	require.NoError(e.t, json.Unmarshal(out, v), "decoding %s", out)
}

// write creates a file in the test directory and returns its name.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return name
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// words returns n distinct-enough words.
func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// textBatch joins posts of the given word counts with --- separators.
func textBatch(counts ...int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = words(n)
	}
	return strings.Join(parts, "\n---\n") + "\n"
}

// checkJSON mirrors the fields of "qgate check -o json" used by tests.
type checkJSON struct {
	Passed       bool           `json:"passed"`
	Platform     string         `json:"platform"`
	Posts        int            `json:"posts"`
	OptimalCount int            `json:"optimal_count"`
	Distribution map[string]int `json:"distribution"`
	Issues       []string       `json:"issues"`
	Warnings     []string       `json:"warnings"`
	Metric       string         `json:"metric"`
	Batch        string         `json:"batch"`
	Report       string         `json:"report"`
	NewBatch     bool           `json:"new_batch"`
	DryRun       bool           `json:"dry_run"`
}
