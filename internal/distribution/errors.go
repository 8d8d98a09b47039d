package distribution

import "errors"

// ErrInvalidBucket is returned when a bucket label is not "A-B" or "A+".
var ErrInvalidBucket = errors.New("invalid bucket")

// FallbackLabel is returned by Assign when it is given no buckets at all.
const FallbackLabel = "unknown"
