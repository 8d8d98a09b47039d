package vacuum_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/qgate/internal/check"
	"github.com/jpl-au/qgate/internal/gate"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/jpl-au/qgate/internal/repo"
	"github.com/jpl-au/qgate/internal/vacuum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gate.Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, gate.Init(false, "", false, dir))
	svc, err := gate.Open(filepath.Join(dir, repo.Dir, repo.DBFile), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func removed(t *testing.T, svc *gate.Service, name, content string) string {
	t.Helper()
	ctx := context.Background()
	b := post.Batch{Name: name, Posts: []post.Post{{Content: content, Platform: platform.Twitter}}}
	res, err := svc.Check(ctx, b, check.Options{})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, res.Batch))
	return res.Batch
}

func TestRun_DryRun(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	key := removed(t, svc, "old", "one two three four five six")

	var buf bytes.Buffer
	res, err := vacuum.Run(ctx, &buf, svc, vacuum.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, []string{key}, res.Batches)
	assert.Contains(t, buf.String(), "Would delete: "+key+" old, 1 post(s)")

	// Nothing was purged.
	trash, err := svc.ListBatches(ctx, false, true)
	require.NoError(t, err)
	assert.Len(t, trash, 1)

	// A recent deletion is kept by --older-than.
	week := 7 * 24 * time.Hour
	buf.Reset()
	res, err = vacuum.Run(ctx, &buf, svc, vacuum.Options{DryRun: true, OlderThan: &week})
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)
	assert.Contains(t, buf.String(), "No batches to vacuum")
}

func TestRun(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	removed(t, svc, "old", "one two three four five six")

	var buf bytes.Buffer
	res, err := vacuum.Run(ctx, &buf, svc, vacuum.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Deleted, "post, report and batch rows")
	assert.Contains(t, buf.String(), "Vacuumed 3 row(s)")

	buf.Reset()
	res, err = vacuum.Run(ctx, &buf, svc, vacuum.Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)
	assert.Contains(t, buf.String(), "No batches to vacuum")
}
