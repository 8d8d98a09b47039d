// content.go implements per-post content validation.
//
// Design: Only size and NUL bytes are checked. Generated posts can be any
// UTF-8 text; word counting and scoring handle the rest.

package validate

import (
	"fmt"
	"strings"
)

// Content validates a single post body. A failure marks that post only.
//
// Validation rules:
//   - NUL bytes rejected (binary data, not a post)
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Content(content string, maxLen int64) error {
	if strings.ContainsRune(content, 0) {
		return fmt.Errorf("%w: null byte in content", ErrInvalidContent)
	}
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}
