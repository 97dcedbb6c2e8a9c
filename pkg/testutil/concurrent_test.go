package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"mergington/pkg/platform/sentinel"
)

func TestRunConcurrentCategorizesOutcomes(t *testing.T) {
	result := RunConcurrent(10, func(idx int) error {
		switch idx % 5 {
		case 0:
			return nil
		case 1:
			return fmt.Errorf("activity: %w", sentinel.ErrNotFound)
		case 2:
			return sentinel.ErrAlreadyRegistered
		case 3:
			return fmt.Errorf("wrapped: %w", sentinel.ErrNotRegistered)
		default:
			return errors.New("boom")
		}
	})

	assert.Equal(t, int32(2), result.Successes)
	assert.Equal(t, int32(2), result.NotFounds)
	assert.Equal(t, int32(2), result.AlreadyRegistered)
	assert.Equal(t, int32(2), result.NotRegistered)
	assert.Equal(t, int32(2), result.Errors)
	assert.Equal(t, int32(10), result.Total())
}
