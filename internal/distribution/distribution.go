// distribution.go builds the per-batch histogram over a platform's buckets.
//
// Design: Report keeps bucket definition order for iteration and for JSON
// and YAML output. Every bucket is present, including empty ones, so two reports for
// the same platform always have the same keys in the same order and can be
// compared line by line.

package distribution

import (
	"bytes"
	"encoding/json"

	"github.com/jpl-au/qgate/internal/platform"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Report maps bucket label to the number of posts in that bucket.
type Report struct {
	counts *orderedmap.OrderedMap[string, int]
}

// NewReport returns a report with every label initialised to zero.
func NewReport(labels []string) *Report {
	r := &Report{counts: orderedmap.New[string, int]()}
	for _, l := range labels {
		r.counts.Set(l, 0)
	}
	return r
}

// Calculate resolves the bucket set for p and counts each word count into it.
// The sum of all bucket counts always equals len(counts).
func Calculate(counts []int, p platform.Platform) *Report {
	buckets := For(p)
	r := NewReport(Labels(buckets))
	for _, w := range counts {
		r.add(Assign(w, buckets))
	}
	return r
}

// add increments label, creating it at the end if Assign fell back to a
// label outside the set.
func (r *Report) add(label string) {
	n, _ := r.counts.Get(label)
	r.counts.Set(label, n+1)
}

// Get returns the count for label and whether the label exists.
func (r *Report) Get(label string) (int, bool) {
	if r == nil || r.counts == nil {
		return 0, false
	}
	return r.counts.Get(label)
}

// Len returns the number of buckets.
func (r *Report) Len() int {
	if r == nil || r.counts == nil {
		return 0
	}
	return r.counts.Len()
}

// Labels returns bucket labels in definition order.
func (r *Report) Labels() []string {
	var out []string
	r.Each(func(label string, _ int) {
		out = append(out, label)
	})
	return out
}

// Total returns the sum of all bucket counts.
func (r *Report) Total() int {
	total := 0
	r.Each(func(_ string, n int) {
		total += n
	})
	return total
}

// Each calls fn for every bucket in definition order.
func (r *Report) Each(fn func(label string, count int)) {
	if r == nil || r.counts == nil {
		return
	}
	for pair := r.counts.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Map returns the counts as a plain map. Order is lost.
func (r *Report) Map() map[string]int {
	out := make(map[string]int, r.Len())
	r.Each(func(label string, n int) {
		out[label] = n
	})
	return out
}

// MarshalJSON encodes the report as an object whose keys are in bucket order.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r == nil || r.counts == nil {
		return []byte("{}"), nil
	}
	return r.counts.MarshalJSON()
}

// UnmarshalJSON decodes an object, keeping the key order of the input.
func (r *Report) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, int]()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.counts = om
		return nil
	}
	if err := json.Unmarshal(data, om); err != nil {
		return err
	}
	r.counts = om
	return nil
}

// MarshalYAML encodes the report as a mapping whose keys are in bucket order.
func (r *Report) MarshalYAML() (any, error) {
	if r == nil || r.counts == nil {
		return map[string]int{}, nil
	}
	return r.counts.MarshalYAML()
}

// UnmarshalYAML decodes a mapping, keeping the key order of the input.
func (r *Report) UnmarshalYAML(node *yaml.Node) error {
	om := orderedmap.New[string, int]()
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		r.counts = om
		return nil
	}
	if err := om.UnmarshalYAML(node); err != nil {
		return err
	}
	r.counts = om
	return nil
}
