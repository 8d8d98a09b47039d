// Package store defines batch and report persistence types and the Store
// interface. Implementations handle the actual database operations while
// consumers depend only on this interface.
package store

import (
	"encoding/json"
	"time"

	"github.com/jpl-au/qgate/internal/distribution"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
)

// Batch is a stored set of posts. Batches are immutable once saved; a batch
// with identical content is stored once and reused.
type Batch struct {
	ID          int64             // Database primary key (internal)
	Key         string            // Unique 8-char identifier
	Fingerprint string            // Content digest used for dedupe
	Name        string            // Optional human name
	Platform    platform.Platform // Platform detected at import
	Posts       int               // Number of posts
	Author      string            // Who imported the batch
	CreatedAt   int64             // Unix timestamp of import
	DeletedAt   *int64            // Unix timestamp of deletion, nil if not deleted
}

// Post is a stored post row.
type Post struct {
	BatchKey string
	Index    int // Zero-based position in the batch
	post.Post
	Words int
}

// Report is a stored length check result.
type Report struct {
	ID            int64
	Key           string
	BatchKey      string
	Passed        bool
	Platform      platform.Platform
	Posts         int
	Optimal       int
	AverageLength float64
	OptimalRatio  float64
	Sameness      float64
	Distribution  *distribution.Report
	Issues        []string
	Warnings      []string
	Metric        string
	Author        string
	CreatedAt     int64
}

// SaveBatchOptions configures a SaveBatch call.
type SaveBatchOptions struct {
	Name     string
	Platform platform.Platform // Detected platform, recorded for listings
	Author   string
}

// BatchJSON is the API-friendly representation of a Batch.
type BatchJSON struct {
	Key       string            `json:"key"`
	Name      string            `json:"name,omitempty"`
	Platform  platform.Platform `json:"platform"`
	Posts     int               `json:"posts"`
	Author    string            `json:"author"`
	CreatedAt string            `json:"created_at"`
	Deleted   bool              `json:"deleted,omitempty"`
}

// ToJSON converts a Batch to its API representation with RFC3339 timestamps.
func (b *Batch) ToJSON() BatchJSON {
	return BatchJSON{
		Key:       b.Key,
		Name:      b.Name,
		Platform:  b.Platform,
		Posts:     b.Posts,
		Author:    b.Author,
		CreatedAt: time.Unix(b.CreatedAt, 0).UTC().Format(time.RFC3339),
		Deleted:   b.DeletedAt != nil,
	}
}

// ReportJSON is the API-friendly representation of a Report.
type ReportJSON struct {
	Key           string               `json:"key"`
	Batch         string               `json:"batch"`
	Passed        bool                 `json:"passed"`
	Platform      platform.Platform    `json:"platform"`
	Posts         int                  `json:"posts"`
	OptimalCount  int                  `json:"optimal_count"`
	AverageLength float64              `json:"average_length"`
	OptimalRatio  float64              `json:"optimal_ratio"`
	SamenessRatio float64              `json:"sameness_ratio"`
	Distribution  *distribution.Report `json:"distribution"`
	Issues        []string             `json:"issues"`
	Warnings      []string             `json:"warnings,omitempty"`
	Metric        string               `json:"metric"`
	Author        string               `json:"author"`
	CreatedAt     string               `json:"created_at"`
}

// ToJSON converts a Report to its API representation.
func (r *Report) ToJSON() ReportJSON {
	issues := r.Issues
	if issues == nil {
		issues = []string{}
	}
	return ReportJSON{
		Key:           r.Key,
		Batch:         r.BatchKey,
		Passed:        r.Passed,
		Platform:      r.Platform,
		Posts:         r.Posts,
		OptimalCount:  r.Optimal,
		AverageLength: r.AverageLength,
		OptimalRatio:  r.OptimalRatio,
		SamenessRatio: r.Sameness,
		Distribution:  r.Distribution,
		Issues:        issues,
		Warnings:      r.Warnings,
		Metric:        r.Metric,
		Author:        r.Author,
		CreatedAt:     time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Stats provides aggregate database statistics.
type Stats struct {
	Batches         int64            // Active (non-deleted) batch count
	DeletedBatches  int64            // Soft-deleted batches pending vacuum
	Posts           int64            // Posts in active batches
	Reports         int64            // Reports for active batches
	Passed          int64            // Reports that passed the gate
	Failed          int64            // Reports that failed the gate
	Authors         int64            // Distinct batch authors
	ByPlatform      map[string]int64 // Active batches per detected platform
	OldestBatch     int64            // Unix timestamp of earliest batch
	NewestBatch     int64            // Unix timestamp of most recent batch
	OldestDeletedAt int64            // Unix timestamp of earliest soft-delete (0 if none)
}
