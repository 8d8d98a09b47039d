// Package post defines the generated post handed to the quality gate and the
// batch that groups posts written for one target platform.
package post

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jpl-au/qgate/internal/platform"
)

// idNamespace scopes derived post IDs so they never collide with IDs minted
// for other purposes from the same content.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jpl-au/qgate/post"))

// Post is a single piece of generated content. Posts are read-only once
// handed to the validator.
type Post struct {
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	Content  string            `json:"content" yaml:"content"`
	Platform platform.Platform `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// WordCount returns the number of whitespace-separated tokens in the content.
func (p Post) WordCount() int {
	return len(strings.Fields(p.Content))
}

// DeriveID returns a stable identifier for content. Posts imported without
// an ID get one derived this way, so re-importing the same text yields the
// same ID.
func DeriveID(content string) string {
	return uuid.NewSHA1(idNamespace, []byte(content)).String()
}

// WithIDs returns a copy of posts where every post without an ID carries
// one derived from its content, so issue labels stay stable across reruns.
func WithIDs(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = DeriveID(out[i].Content)
		}
	}
	return out
}

// Label returns a short human reference for the post at zero-based index i,
// used in issue messages.
func (p Post) Label(i int) string {
	if p.ID == "" {
		return "post " + strconv.Itoa(i+1)
	}
	return "post " + strconv.Itoa(i+1) + " (" + shortID(p.ID) + ")"
}

// shortID trims UUID-style identifiers to their first group for readability.
func shortID(id string) string {
	if len(id) == 36 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}

// Batch is an ordered set of posts produced together by the generation
// pipeline.
type Batch struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Posts []Post `json:"posts" yaml:"posts"`
}

// WordCounts returns the word count of each post, in order.
func (b Batch) WordCounts() []int {
	return WordCounts(b.Posts)
}

// WordCounts returns the word count of each post, in order.
func WordCounts(posts []Post) []int {
	counts := make([]int, len(posts))
	for i, p := range posts {
		counts[i] = p.WordCount()
	}
	return counts
}
