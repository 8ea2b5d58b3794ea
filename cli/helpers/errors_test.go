package helpers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogctl/cli/api"
	"blogctl/cli/tui/models"
)

func TestCliError(t *testing.T) {
	t.Run("Should include details when present", func(t *testing.T) {
		err := NewCliError("BAD_INPUT", "invalid value", "expected a number")
		assert.Equal(t, "BAD_INPUT: invalid value (expected a number)", err.Error())
	})

	t.Run("Should omit empty details", func(t *testing.T) {
		err := NewCliError("BAD_INPUT", "invalid value")
		assert.Equal(t, "BAD_INPUT: invalid value", err.Error())
	})
}

func TestIsNetworkError(t *testing.T) {
	t.Run("Should match transport failure messages", func(t *testing.T) {
		assert.True(t, IsNetworkError(errors.New("dial tcp: connection refused")))
		assert.True(t, IsNetworkError(errors.New("lookup api: no such host")))
	})

	t.Run("Should not match server responses or nil", func(t *testing.T) {
		assert.False(t, IsNetworkError(nil))
		assert.False(t, IsNetworkError(&api.APIError{Status: 500, Message: "boom"}))
	})
}

func TestCategorizeError(t *testing.T) {
	t.Run("Should map context cancellation", func(t *testing.T) {
		categorized := CategorizeError(context.Canceled)
		require.NotNil(t, categorized)
		assert.Equal(t, "OPERATION_CANCELED", categorized.Code)
	})

	t.Run("Should map timeouts", func(t *testing.T) {
		categorized := CategorizeError(fmt.Errorf("fetch: %w", context.DeadlineExceeded))
		require.NotNil(t, categorized)
		assert.Equal(t, "OPERATION_TIMEOUT", categorized.Code)
	})

	t.Run("Should map auth rejections", func(t *testing.T) {
		categorized := CategorizeError(&api.APIError{Status: 401, Message: "Token has expired"})
		require.NotNil(t, categorized)
		assert.Equal(t, "AUTH_ERROR", categorized.Code)
	})

	t.Run("Should leave unknown errors uncategorized", func(t *testing.T) {
		assert.Nil(t, CategorizeError(errors.New("something odd")))
	})
}

func TestFormatError(t *testing.T) {
	t.Run("Should render structured JSON for cli errors", func(t *testing.T) {
		err := NewCliError("NOT_FOUND", "post not found", "id 42")
		out := FormatError(err, models.ModeJSON)
		assert.Contains(t, out, `"error": "post not found"`)
		assert.Contains(t, out, `"details": "id 42"`)
	})

	t.Run("Should wrap plain errors for JSON output", func(t *testing.T) {
		out := FormatError(errors.New("boom"), models.ModeJSON)
		assert.Contains(t, out, `"error": "boom"`)
	})
}

func TestParseID(t *testing.T) {
	t.Run("Should accept positive integers", func(t *testing.T) {
		id, err := ParseID("42")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("Should reject zero, negatives and garbage", func(t *testing.T) {
		for _, arg := range []string{"0", "-1", "abc", ""} {
			_, err := ParseID(arg)
			require.Error(t, err, arg)
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Run("Should pass short strings through", func(t *testing.T) {
		assert.Equal(t, "short", Truncate("short", 10))
	})

	t.Run("Should cut long strings with an ellipsis", func(t *testing.T) {
		assert.Equal(t, "hello w...", Truncate("hello world out there", 10))
	})
}
