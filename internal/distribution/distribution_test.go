package distribution

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jpl-au/qgate/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseBucket(t *testing.T) {
	t.Run("closed range", func(t *testing.T) {
		b, err := ParseBucket("10-15")
		require.NoError(t, err)
		assert.Equal(t, Bucket{Label: "10-15", Min: 10, Max: 15}, b)
	})

	t.Run("open range", func(t *testing.T) {
		b, err := ParseBucket("30+")
		require.NoError(t, err)
		assert.Equal(t, Bucket{Label: "30+", Min: 30, Open: true}, b)
	})

	for _, bad := range []string{"", "10", "a-b", "15-10", "5-5", "-5-10", "x+", "+"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseBucket(bad)
			assert.ErrorIs(t, err, ErrInvalidBucket)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse([]string{"0-10", "oops"}) })
}

func TestBucketContains(t *testing.T) {
	b := Bucket{Label: "10-15", Min: 10, Max: 15}
	assert.False(t, b.Contains(9))
	assert.True(t, b.Contains(10))
	assert.True(t, b.Contains(14))
	assert.False(t, b.Contains(15), "upper bound is exclusive")

	open := Bucket{Label: "30+", Min: 30, Open: true}
	assert.False(t, open.Contains(29))
	assert.True(t, open.Contains(30))
	assert.True(t, open.Contains(1_000_000))
}

func TestAssign(t *testing.T) {
	buckets := For(platform.Twitter)

	tests := []struct {
		words int
		want  string
	}{
		{0, "0-10"},
		{9, "0-10"},
		{10, "10-15"},
		{15, "15-20"},
		{29, "20-30"},
		{30, "30+"},
		{500, "30+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Assign(tt.words, buckets), "words=%d", tt.words)
	}
}

func TestAssign_Fallback(t *testing.T) {
	t.Run("gap falls back to first label", func(t *testing.T) {
		buckets := MustParse([]string{"10-20", "20-30"})
		assert.Equal(t, "10-20", Assign(5, buckets))
		assert.Equal(t, "10-20", Assign(40, buckets))
	})

	t.Run("empty set falls back to unknown", func(t *testing.T) {
		assert.Equal(t, FallbackLabel, Assign(5, nil))
	})
}

// Every count must land on a label from the platform's own bucket set.
func TestAssign_AlwaysInSet(t *testing.T) {
	for _, p := range append(platform.Known(), platform.Unknown) {
		labels := platform.BucketLabels(p)
		buckets := For(p)
		for w := 0; w <= 5000; w += 7 {
			assert.Contains(t, labels, Assign(w, buckets), "platform=%s words=%d", p, w)
		}
	}
}

func TestCalculate_Twitter(t *testing.T) {
	r := Calculate([]int{8, 12, 16, 22, 35}, platform.Twitter)

	assert.Equal(t, []string{"0-10", "10-15", "15-20", "20-30", "30+"}, r.Labels())
	assert.Equal(t, map[string]int{"0-10": 1, "10-15": 1, "15-20": 1, "20-30": 1, "30+": 1}, r.Map())
	assert.Equal(t, 5, r.Total())
}

func TestCalculate_Blog(t *testing.T) {
	r := Calculate([]int{500, 1200, 1700, 2200}, platform.Blog)

	assert.Equal(t, []string{"0-1000", "1000-1500", "1500-2000", "2000-2500", "2500+"}, r.Labels())
	assert.Equal(t, map[string]int{"0-1000": 1, "1000-1500": 1, "1500-2000": 1, "2000-2500": 1, "2500+": 0}, r.Map())
}

func TestCalculate_UnknownUsesGeneric(t *testing.T) {
	counts := []int{0, 49, 50, 120, 180, 250, 301, 9999}
	r := Calculate(counts, platform.Unknown)

	assert.Equal(t, 6, r.Len())
	assert.Equal(t, len(counts), r.Total())
	n, ok := r.Get("300+")
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestCalculate_SumInvariant(t *testing.T) {
	batches := [][]int{
		nil,
		{0},
		{1, 1, 1, 1},
		{5, 50, 500, 5000, 50000},
		{99, 100, 101, 149, 150, 151, 299, 300, 301},
	}
	for _, p := range append(platform.Known(), platform.Unknown, platform.Platform("")) {
		for _, counts := range batches {
			r := Calculate(counts, p)
			assert.Equal(t, len(counts), r.Total(), "platform=%s counts=%v", p, counts)
			assert.Equal(t, len(platform.BucketLabels(p)), r.Len())
		}
	}
}

func TestReportJSON(t *testing.T) {
	r := Calculate([]int{8, 35, 36}, platform.Twitter)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"0-10":1,"10-15":0,"15-20":0,"20-30":0,"30+":2}`, string(b))

	var back Report
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r.Labels(), back.Labels())
	assert.Equal(t, r.Map(), back.Map())
}

func TestReportYAML(t *testing.T) {
	r := Calculate([]int{8, 35, 36}, platform.Twitter)

	b, err := yaml.Marshal(r)
	require.NoError(t, err)
	out := string(b)
	last := -1
	for _, label := range r.Labels() {
		i := strings.Index(out, label+":")
		require.GreaterOrEqual(t, i, 0, "label %s missing from\n%s", label, out)
		assert.Greater(t, i, last, "label %s out of order", label)
		last = i
	}

	var back Report
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, r.Labels(), back.Labels())
	assert.Equal(t, r.Map(), back.Map())

	// Inside a document the report keeps its order too.
	doc, err := yaml.Marshal(map[string]*Report{"distribution": r})
	require.NoError(t, err)
	var wrapped struct {
		Distribution *Report `yaml:"distribution"`
	}
	require.NoError(t, yaml.Unmarshal(doc, &wrapped))
	assert.Equal(t, r.Labels(), wrapped.Distribution.Labels())

	var empty Report
	b, err = yaml.Marshal(&empty)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(b))

	assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &back), "a sequence is not a report")
}

func TestReportNil(t *testing.T) {
	var r *Report
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, r.Total())
	assert.Nil(t, r.Labels())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var empty Report
	b, err = json.Marshal(&empty)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}
