package model

import (
	"strconv"
	"strings"
	"time"
)

// DisplayLocation is the fixed UTC-3 offset used for every rendered timestamp.
// Storage and comparison stay in UTC; this is a plain offset, not a
// DST-aware timezone.
var DisplayLocation = time.FixedZone("UTC-3", -3*60*60)

const workOrderIDWidth = 6

// CanonicalEmployeeID trims the raw badge input and strips leading zeros by
// round-tripping through an integer, so "0042 " and "42" address the same
// employee. Non-numeric ids are returned trimmed as-is.
func CanonicalEmployeeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return strconv.FormatInt(n, 10)
}

// NormalizeWorkOrderID trims the raw input and left-pads it with zeros to the
// fixed six-character width used on write. Inputs already at or beyond the
// width pass through unchanged.
func NormalizeWorkOrderID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if len(s) >= workOrderIDWidth {
		return s
	}
	return strings.Repeat("0", workOrderIDWidth-len(s)) + s
}
