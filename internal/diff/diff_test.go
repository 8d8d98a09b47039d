package diff

import (
	"strings"
	"testing"

	"github.com/jpl-au/qgate/internal/distribution"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/store"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		older   string
		newer   string
		wantErr bool
	}{
		{name: "valid range", input: "abcd1234:efgh5678", older: "abcd1234", newer: "efgh5678"},
		{name: "same key", input: "abcd1234:abcd1234", older: "abcd1234", newer: "abcd1234"},
		{name: "empty colon", input: ":", wantErr: true},
		{name: "missing start", input: ":abcd1234", wantErr: true},
		{name: "missing end", input: "abcd1234:", wantErr: true},
		{name: "no colon", input: "abcd1234", wantErr: true},
		{name: "too many colons", input: "a:b:c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			older, newer, err := ParseRange(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRange(%q) = (%q, %q, nil), want error", tt.input, older, newer)
					return
				}
				if !strings.Contains(err.Error(), "expected old:new") {
					t.Errorf("ParseRange(%q) error = %q, want usage hint", tt.input, err.Error())
				}
				return
			}

			if err != nil {
				t.Errorf("ParseRange(%q) = error %v", tt.input, err)
				return
			}
			if older != tt.older || newer != tt.newer {
				t.Errorf("ParseRange(%q) = (%q, %q), want (%q, %q)", tt.input, older, newer, tt.older, tt.newer)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	r := Compute("a\nb\nc\n", "a\nx\nc\n", "old", "new")

	if !strings.Contains(r.Diff, "- b\n") {
		t.Errorf("diff missing deletion:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "+ x\n") {
		t.Errorf("diff missing insertion:\n%s", r.Diff)
	}
	if !r.Changed() {
		t.Error("Changed() = false, want true")
	}

	same := Compute("a\nb\n", "a\nb\n", "old", "new")
	if same.Changed() {
		t.Errorf("identical content reported as changed:\n%s", same.Diff)
	}
}

func TestFormat(t *testing.T) {
	r := Result{Old: "v1", New: "v2", Diff: "- a\n+ b\n"}

	plain := r.Format(false)
	if !strings.HasPrefix(plain, "--- v1\n+++ v2\n") {
		t.Errorf("missing header:\n%s", plain)
	}

	coloured := r.Format(true)
	if !strings.Contains(coloured, "\033[31m- a") || !strings.Contains(coloured, "\033[32m+ b") {
		t.Errorf("missing colours:\n%q", coloured)
	}
}

func TestReports(t *testing.T) {
	older := &store.Report{
		Key:          "aaaa1111",
		BatchKey:     "bbbb2222",
		Passed:       false,
		Platform:     platform.Twitter,
		Posts:        3,
		Optimal:      1,
		Distribution: distribution.Calculate([]int{4, 12, 60}, platform.Twitter),
		Issues: []string{
			"post 1: 4 words, below minimum of 5 for twitter",
			"post 3: 60 words, above maximum of 50 for twitter",
		},
		Metric: "1/3 posts in optimal range (12-30 words for twitter)",
		Author: "alice",
	}
	newer := &store.Report{
		Key:          "cccc3333",
		BatchKey:     "dddd4444",
		Passed:       true,
		Platform:     platform.Twitter,
		Posts:        3,
		Optimal:      3,
		Distribution: distribution.Calculate([]int{14, 18, 25}, platform.Twitter),
		Issues:       []string{},
		Metric:       "3/3 posts in optimal range (12-30 words for twitter)",
		Author:       "bob",
	}

	r := Reports(older, newer)
	if r.Old != "aaaa1111 (batch bbbb2222)" || r.New != "cccc3333 (batch dddd4444)" {
		t.Errorf("labels = %q, %q", r.Old, r.New)
	}
	for _, want := range []string{
		"- passed: false",
		"+ passed: true",
		"- issue: post 1: 4 words, below minimum of 5 for twitter",
		"+ metric: 3/3 posts in optimal range (12-30 words for twitter)",
	} {
		if !strings.Contains(r.Diff, want) {
			t.Errorf("diff missing %q:\n%s", want, r.Diff)
		}
	}
	if strings.Contains(r.Diff, "alice") {
		t.Errorf("authors should not be compared:\n%s", r.Diff)
	}

	if Reports(older, older).Changed() {
		t.Error("report compared with itself reported as changed")
	}
}
