package spreads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExpiration(t *testing.T) {
	expected := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)

	t.Run("compact", func(t *testing.T) {
		parsed, format, err := ParseExpiration("20260918")

		assert.NoError(t, err)
		assert.Equal(t, ExpirationFormatCompact, format)
		assert.Equal(t, expected, parsed)
	})

	t.Run("iso date", func(t *testing.T) {
		parsed, format, err := ParseExpiration("2026-09-18")

		assert.NoError(t, err)
		assert.Equal(t, ExpirationFormatISODate, format)
		assert.Equal(t, expected, parsed)
	})

	t.Run("rfc3339 truncates to date", func(t *testing.T) {
		parsed, format, err := ParseExpiration("2026-09-18T15:30:00Z")

		assert.NoError(t, err)
		assert.Equal(t, ExpirationFormatRFC3339, format)
		assert.Equal(t, expected, parsed)
	})

	t.Run("unparseable", func(t *testing.T) {
		_, _, err := ParseExpiration("next friday")

		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := ParseExpiration("")

		assert.Error(t, err)
	})
}
