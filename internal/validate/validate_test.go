package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContent(t *testing.T) {
	assert.NoError(t, Content("hello world", 0))
	assert.NoError(t, Content("", 10))
	assert.NoError(t, Content("exactly10!", 10))

	err := Content("eleven chars", 10)
	assert.ErrorIs(t, err, ErrContentTooLarge)

	err = Content("nul\x00byte", 0)
	assert.ErrorIs(t, err, ErrInvalidContent)
	assert.NotErrorIs(t, err, ErrInvalidBatch, "a bad post does not invalidate the batch")
}

func TestPosts(t *testing.T) {
	assert.NoError(t, Posts(0, 1))
	assert.NoError(t, Posts(2, 2))
	assert.NoError(t, Posts(1_000_000, 0), "zero means no limit")

	err := Posts(3, 2)
	assert.ErrorIs(t, err, ErrInvalidBatch)
	assert.ErrorIs(t, err, ErrTooManyPosts)
	assert.Contains(t, err.Error(), "3 posts exceeds limit of 2")
}
