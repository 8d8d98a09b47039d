// Package platform identifies the channel a batch of posts was written for
// and holds the static length rules for each channel.
//
// A Platform is a single string-backed type. Raw values from upstream
// systems (JSON, YAML, CLI flags, MCP arguments) are normalised once, at the
// boundary, through Parse or UnmarshalText. Code past the boundary only ever
// sees one of the known constants or Unknown, so there is no "typed versus
// raw" distinction left to special-case.
package platform

import (
	"fmt"
	"strings"
)

// Platform names a target content channel.
type Platform string

const (
	Twitter  Platform = "twitter"
	LinkedIn Platform = "linkedin"
	Facebook Platform = "facebook"
	Email    Platform = "email"
	Blog     Platform = "blog"

	// Unknown covers unset, unparseable and mixed batches. It maps to the
	// generic spec and bucket set.
	Unknown Platform = "unknown"
)

// known is the fixed display order for the known platforms.
var known = []Platform{Twitter, LinkedIn, Facebook, Email, Blog}

// aliases maps accepted spellings to their platform. Keys are lower case.
var aliases = map[string]Platform{
	"twitter":    Twitter,
	"x":          Twitter,
	"tweet":      Twitter,
	"linkedin":   LinkedIn,
	"facebook":   Facebook,
	"fb":         Facebook,
	"email":      Email,
	"e-mail":     Email,
	"newsletter": Email,
	"blog":       Blog,
	"article":    Blog,
}

// Known returns the known platforms in display order.
// The returned slice is a copy.
func Known() []Platform {
	out := make([]Platform, len(known))
	copy(out, known)
	return out
}

// Parse converts a raw platform name into a Platform.
// Matching ignores case and surrounding whitespace. The second return value
// is false when the name is empty or not recognised, in which case Unknown
// is returned.
func Parse(s string) (Platform, bool) {
	p, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Unknown, false
	}
	return p, true
}

// Normalise returns p unchanged when it is already a known platform and
// otherwise parses it as a raw name. It never fails: anything unrecognised
// becomes Unknown.
func Normalise(p Platform) Platform {
	if p.IsKnown() {
		return p
	}
	n, _ := Parse(string(p))
	return n
}

// IsKnown reports whether p is one of the known platform constants.
func (p Platform) IsKnown() bool {
	_, ok := specs[p]
	return ok
}

// String returns the platform name. The zero value prints as "unknown".
func (p Platform) String() string {
	if p == "" {
		return string(Unknown)
	}
	return string(p)
}

// MarshalText encodes the normalised platform name.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(Normalise(p).String()), nil
}

// UnmarshalText normalises a raw name at the decoding boundary. Empty input
// leaves the platform unset so that a batch-level default can apply later;
// unrecognised names decode to Unknown rather than failing the whole batch.
func (p *Platform) UnmarshalText(b []byte) error {
	if p == nil {
		return fmt.Errorf("platform: UnmarshalText on nil pointer")
	}
	if strings.TrimSpace(string(b)) == "" {
		*p = ""
		return nil
	}
	*p, _ = Parse(string(b))
	return nil
}
