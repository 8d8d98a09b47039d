package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchJSON struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Posts    int    `json:"posts"`
	Deleted  bool   `json:"deleted"`
}

// seed records one twitter and one linkedin batch.
func seed(env *testEnv) (tweets, linkedin checkJSON) {
	env.runJSON(&tweets, "check", env.write("t.md", textBatch(12, 18)), "-p", "twitter", "--name", "tweets")
	env.runJSON(&linkedin, "check", env.write("l.md", textBatch(150, 200)), "-p", "linkedin", "--name", "posts")
	return tweets, linkedin
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	tweets, linkedin := seed(env)

	out := env.run("ls")
	env.contains(out, tweets.Batch+"  tweets")
	env.contains(out, linkedin.Batch+"  posts")

	out = env.run("ls", "-l")
	env.contains(out, "PLATFORM")
	env.contains(out, "linkedin")

	var batches []batchJSON
	env.runJSON(&batches, "ls", "--platform", "x")
	require.Len(t, batches, 1)
	assert.Equal(t, "tweets", batches[0].Name)
	assert.Equal(t, 2, batches[0].Posts)

	env.runJSON(&batches, "ls", "--sort", "name")
	require.Len(t, batches, 2)
	assert.Equal(t, "posts", batches[0].Name)

	env.runJSON(&batches, "ls", "--sort", "name", "-r")
	assert.Equal(t, "tweets", batches[0].Name)

	_, err := env.runErr("ls", "--sort", "size")
	assert.Error(t, err)
}

func TestRmRestore(t *testing.T) {
	env := newTestEnv(t)
	tweets, _ := seed(env)

	out := env.run("rm", "tweets")
	env.contains(out, "Removed "+tweets.Batch+" (tweets)")

	var batches []batchJSON
	env.runJSON(&batches, "ls")
	assert.Len(t, batches, 1)

	env.runJSON(&batches, "ls", "--deleted")
	require.Len(t, batches, 1)
	assert.True(t, batches[0].Deleted)

	_, err := env.runErr("history", "tweets")
	assert.Error(t, err, "removed batches are hidden from history")

	out = env.run("restore", tweets.Batch)
	env.contains(out, "Restored "+tweets.Batch)
	env.run("history", "tweets")

	_, err = env.runErr("restore", "tweets")
	assert.Error(t, err, "batch is not removed")

	_, err = env.runErr("rm", "nope")
	assert.Error(t, err)
}

func TestRecheck(t *testing.T) {
	env := newTestEnv(t)
	tweets, _ := seed(env)

	var res checkJSON
	env.runJSON(&res, "recheck", "tweets")
	assert.Equal(t, tweets.Batch, res.Batch)
	assert.Equal(t, "twitter", res.Platform, "the recorded platform is kept")
	assert.NotEqual(t, tweets.Report, res.Report)

	env.runJSON(&res, "recheck", "tweets", "-p", "linkedin", "--dry-run")
	assert.Equal(t, "linkedin", res.Platform)
	assert.False(t, res.Passed)
	assert.True(t, res.DryRun)

	_, err := env.runErr("recheck", "tweets", "-p", "linkedin", "--strict")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	seed(env)
	env.run("check", env.write("f.md", textBatch(2)), "-p", "twitter")

	out := env.run("stats")
	env.contains(out, "batches:   3 (0 deleted)")
	env.contains(out, "reports:   3 (2 passed, 1 failed)")

	var s struct {
		Batches    int64            `json:"batches"`
		Posts      int64            `json:"posts"`
		ByPlatform map[string]int64 `json:"by_platform"`
	}
	env.runJSON(&s, "stats")
	assert.EqualValues(t, 3, s.Batches)
	assert.EqualValues(t, 5, s.Posts)
	assert.EqualValues(t, 2, s.ByPlatform["twitter"])
}

func TestVacuum(t *testing.T) {
	env := newTestEnv(t)
	tweets, _ := seed(env)
	env.run("rm", "tweets")

	var preview struct {
		Deleted int      `json:"deleted"`
		Batches []string `json:"batches"`
	}
	env.runJSON(&preview, "vacuum", "--dry-run")
	assert.Equal(t, 1, preview.Deleted)
	assert.Equal(t, []string{tweets.Batch}, preview.Batches)

	out := env.runStdin("n\n", "vacuum")
	env.contains(out, "Cancelled")

	env.run("vacuum", "--force")

	var batches []batchJSON
	env.runJSON(&batches, "ls", "--deleted")
	assert.Empty(t, batches)
	_, err := env.runErr("restore", tweets.Batch)
	assert.Error(t, err)
}
