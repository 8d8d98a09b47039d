package store

import (
	"github.com/jpl-au/qgate/internal/length"
	"github.com/jpl-au/qgate/internal/platform"
)

// NewReport builds a Report for batchKey from a validation result. Key and
// CreatedAt are assigned by SaveReport.
func NewReport(batchKey, author string, res *length.Result) *Report {
	return &Report{
		BatchKey:      batchKey,
		Passed:        res.Passed,
		Platform:      res.Platform,
		Posts:         res.Posts,
		Optimal:       res.OptimalCount,
		AverageLength: res.AverageLength,
		OptimalRatio:  res.OptimalRatio,
		Sameness:      res.SamenessRatio,
		Distribution:  res.Distribution,
		Issues:        res.Issues,
		Warnings:      res.Warnings,
		Metric:        res.Metric,
		Author:        author,
	}
}

// Result converts a stored report back into a validation result. Spec is
// taken from the current registry.
func (r *Report) Result() *length.Result {
	issues := r.Issues
	if issues == nil {
		issues = []string{}
	}
	return &length.Result{
		Passed:        r.Passed,
		Platform:      r.Platform,
		Spec:          platform.SpecFor(r.Platform),
		Posts:         r.Posts,
		OptimalCount:  r.Optimal,
		AverageLength: r.AverageLength,
		OptimalRatio:  r.OptimalRatio,
		SamenessRatio: r.Sameness,
		Distribution:  r.Distribution,
		Issues:        issues,
		Warnings:      r.Warnings,
		Metric:        r.Metric,
	}
}
