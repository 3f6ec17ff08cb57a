package validation

import (
	"strings"
	"time"
)

// DateLayout is the only accepted date format for search input.
const DateLayout = "2006-01-02"

// IsValidDateFormat reports whether s is exactly a YYYY-MM-DD calendar date.
// Unpadded fields ("2023-1-1") and impossible dates ("2023-02-30") fail.
func IsValidDateFormat(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsValidTickerSuffix reports whether ticker carries a Taiwan listing suffix.
// This is a substring match, not an anchored suffix match: "FOO.TWOBAR"
// passes.
func IsValidTickerSuffix(ticker string) bool {
	return strings.Contains(ticker, ".TW") || strings.Contains(ticker, ".TWO")
}

// IsChronological reports whether begin is strictly earlier than end.
// Both must already be valid dates; equal dates fail.
func IsChronological(begin, end string) bool {
	b, err := time.Parse(DateLayout, begin)
	if err != nil {
		return false
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return false
	}
	return b.Before(e)
}
