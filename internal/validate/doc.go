// Package validate enforces the input contract of the quality gate.
//
// The length validator never fails because of a single post. A post that is
// too short or too long is a finding; so is a post whose content is not text
// (NUL bytes) or is beyond the configured size limit. Content reports the
// latter as an error that the validator records as an issue against that
// post. Only the batch as a whole can be refused: Posts rejects batches with
// more posts than the configured limit, before any scoring happens.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go.
// Use errors.Is() for type-safe error checking:
//
//	if errors.Is(err, validate.ErrInvalidBatch) {
//	    // caller handed over a batch beyond the limit
//	}
package validate
