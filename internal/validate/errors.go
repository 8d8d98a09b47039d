// errors.go defines sentinel errors for validation failures.
//
// ErrInvalidContent and ErrContentTooLarge describe a single post and end up
// in issue strings. ErrTooManyPosts is returned from Posts wrapped together
// with ErrInvalidBatch, the one error that refuses a whole batch.

package validate

import "errors"

var (
	ErrInvalidBatch    = errors.New("invalid batch")
	ErrContentTooLarge = errors.New("content too large")
	ErrTooManyPosts    = errors.New("too many posts")
	ErrInvalidContent  = errors.New("invalid content")
)
