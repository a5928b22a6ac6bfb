package spreads

import (
	"fmt"
	"time"
)

// ExpirationFormat tags which accepted input shape an expiration was parsed
// from. The two shapes are a compatibility affordance with the upstream
// strategy generator, which emits compact dates while the dashboard emits ISO.
type ExpirationFormat string

const (
	ExpirationFormatCompact ExpirationFormat = "compact"  // 20260918
	ExpirationFormatISODate ExpirationFormat = "iso_date" // 2026-09-18
	ExpirationFormatRFC3339 ExpirationFormat = "rfc3339"  // 2026-09-18T00:00:00Z
)

var expirationLayouts = []struct {
	format ExpirationFormat
	layout string
}{
	{ExpirationFormatCompact, "20060102"},
	{ExpirationFormatISODate, "2006-01-02"},
	{ExpirationFormatRFC3339, time.RFC3339},
}

// ParseExpiration normalizes a raw expiration to a calendar date (UTC
// midnight), trying each accepted layout in fixed order.
func ParseExpiration(raw string) (time.Time, ExpirationFormat, error) {
	for _, candidate := range expirationLayouts {
		parsed, err := time.Parse(candidate.layout, raw)
		if err != nil {
			continue
		}

		date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		return date, candidate.format, nil
	}

	return time.Time{}, "", fmt.Errorf("ParseExpiration: unrecognized expiration %q", raw)
}
