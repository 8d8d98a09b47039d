// detect.go infers the platform that governs a batch.
//
// Posts in a batch are generated for one target platform, so only the first
// post is inspected. Detection never fails: anything that cannot be resolved
// to a known platform is reported as platform.Unknown and the caller falls
// back to the generic rules.

package post

import "github.com/jpl-au/qgate/internal/platform"

// Detect returns the platform of the first post.
//
//   - Empty batch: Unknown.
//   - Known typed value: returned as is.
//   - Raw name (e.g. Platform("LinkedIn") from an upstream system): parsed.
//   - Unset or unrecognised: Unknown.
func Detect(posts []Post) platform.Platform {
	if len(posts) == 0 {
		return platform.Unknown
	}
	return platform.Normalise(posts[0].Platform)
}

// Platform returns the platform governing the batch. See Detect.
func (b Batch) Platform() platform.Platform {
	return Detect(b.Posts)
}

// WithDefault returns a copy of posts where every post without a platform
// carries p. Posts that already name a platform are left alone.
func WithDefault(posts []Post, p platform.Platform) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	if p == "" {
		return out
	}
	for i := range out {
		if out[i].Platform == "" {
			out[i].Platform = p
		}
	}
	return out
}
