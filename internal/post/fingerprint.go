package post

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/jpl-au/qgate/internal/platform"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a stable BLAKE2b-256 digest of a batch checked against
// platform p. Two batches share a fingerprint when they were checked against
// the same normalised platform and hold the same posts in the same order,
// each with the same normalised platform. IDs and the batch name are not
// part of it.
func Fingerprint(p platform.Platform, posts []Post) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic("blake2b.New256 failed: " + err.Error())
	}
	// Fields are length-prefixed; content may hold any byte, NUL included.
	field := func(s string) {
		h.Write(binary.AppendUvarint(nil, uint64(len(s))))
		h.Write([]byte(s))
	}
	field(platform.Normalise(p).String())
	for _, ps := range posts {
		field(platform.Normalise(ps.Platform).String())
		field(ps.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}
