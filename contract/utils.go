package contract

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// -----------------------------------------------------------------------------
// Timestamp Helpers
// -----------------------------------------------------------------------------

// ParseTimestamp accepts unix seconds or iso-ish strings and returns ledger seconds.
// Example payload: ParseTimestamp("2025-09-03T00:00:00")
func ParseTimestamp(val string) (uint32, error) {
	secs, ok := parseTimestamp(val)
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", val)
	}
	if secs < 0 || secs > math.MaxUint32 {
		return 0, fmt.Errorf("timestamp %q out of 32 bit range", val)
	}
	return uint32(secs), nil
}

// parseTimestamp tries unix seconds, then RFC3339, then the zone-less form.
func parseTimestamp(val string) (int64, bool) {
	if v, err := strconv.ParseInt(val, 10, 64); err == nil {
		return v, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t.Unix(), true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", val, time.UTC); err == nil {
		return t.Unix(), true
	}
	return 0, false
}

// NowUnix is the wall clock as ledger seconds, for callers without their own clock.
func NowUnix() uint32 {
	return uint32(time.Now().Unix())
}
