package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/qgate/internal/check"
	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/diff"
	"github.com/jpl-au/qgate/internal/gate"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/jpl-au/qgate/internal/repo"
	"github.com/jpl-au/qgate/internal/service"
)

// tempStore creates a temporary qgate store for examples.
func tempStore() (service.Service, func()) {
	dir, err := os.MkdirTemp("", "qgate-example-*")
	if err != nil {
		panic(err)
	}
	if err := gate.Init(false, "", false, dir); err != nil {
		panic(err)
	}
	svc, err := gate.Open(filepath.Join(dir, repo.Dir, repo.DBFile), &config.Config{})
	if err != nil {
		panic(err)
	}
	cleanup := func() {
		svc.Close()
		os.RemoveAll(dir)
	}
	return svc, cleanup
}

func tweet(words int) post.Post {
	return post.Post{
		Content:  strings.TrimSpace(strings.Repeat("word ", words)),
		Platform: platform.Twitter,
	}
}

func Example_basicUsage() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := context.Background()

	// Check a batch; the batch and its report are recorded
	b := post.Batch{Name: "launch", Posts: []post.Post{tweet(8), tweet(12), tweet(16), tweet(22), tweet(35)}}
	res, err := svc.Check(ctx, b, check.Options{Author: "alice"})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Passed)
	fmt.Println(res.Metric)
	fmt.Println(res.NewBatch)
	// Output:
	// true
	// 3/5 posts in optimal range (12-30 words for twitter)
	// true
}

func Example_history() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := context.Background()

	b := post.Batch{Name: "weekly", Posts: []post.Post{tweet(3), tweet(14)}}
	if _, err := svc.Check(ctx, b, check.Options{}); err != nil {
		panic(err)
	}
	// Checking the same posts again reuses the batch
	again, err := svc.Check(ctx, b, check.Options{})
	if err != nil {
		panic(err)
	}
	fmt.Println(again.NewBatch)

	reports, err := svc.History(ctx, "weekly", 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(reports))
	fmt.Println(len(reports[0].Issues))
	// Output:
	// false
	// 2
	// 1
}

func Example_diff() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := context.Background()

	before, err := svc.Check(ctx, post.Batch{Posts: []post.Post{tweet(3)}}, check.Options{})
	if err != nil {
		panic(err)
	}
	after, err := svc.Check(ctx, post.Batch{Posts: []post.Post{tweet(13)}}, check.Options{})
	if err != nil {
		panic(err)
	}

	r, err := svc.Diff(ctx, diff.Options{Old: before.Report, New: after.Report})
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Changed())
	// Output:
	// true
}

func Example_removeRestore() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.Check(ctx, post.Batch{Name: "old", Posts: []post.Post{tweet(12)}}, check.Options{}); err != nil {
		panic(err)
	}

	if err := svc.Remove(ctx, "old"); err != nil {
		panic(err)
	}
	trash, _ := svc.ListBatches(ctx, false, true)
	fmt.Println(len(trash))

	if err := svc.Restore(ctx, "old"); err != nil {
		panic(err)
	}
	active, _ := svc.ListBatches(ctx, false, false)
	fmt.Println(len(active))
	// Output:
	// 1
	// 1
}
