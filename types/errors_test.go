package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("errors.Is works through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("%w: channel_count must be positive", ErrInvalidArgument)
		require.True(t, errors.Is(wrapped, ErrInvalidArgument))
		require.False(t, errors.Is(wrapped, ErrInvalidConfig))

		joined := errors.Join(ErrRegistryRequired, errors.New("additional context"))
		require.True(t, errors.Is(joined, ErrRegistryRequired))
	})

	t.Run("all errors are distinct", func(t *testing.T) {
		allErrors := []error{
			ErrInvalidArgument,
			ErrRegistryRequired,
			ErrInvalidConfig,
		}

		for i, err1 := range allErrors {
			for j, err2 := range allErrors {
				if i != j {
					require.False(t, errors.Is(err1, err2),
						"error %v should not match %v", err1, err2)
				}
			}
		}
	})
}
