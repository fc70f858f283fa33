// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// StampLayout is the per-row timestamp format: day.month.year hour:minute,
// no zone suffix. The feed consumer treats it as local time in the
// configured offset.
const StampLayout = "02.01.2006 15:04"

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)

// ParseUTCOffset converts an offset string like "+05:00" or "-03:30" into
// a fixed time.Location.
func ParseUTCOffset(s string) (*time.Location, error) {
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid UTC offset %q: expected format \"+05:00\"", s)
	}

	hours, _ := strconv.Atoi(m[2])
	mins, _ := strconv.Atoi(m[3])
	if hours > 14 || mins > 59 {
		return nil, fmt.Errorf("invalid UTC offset %q: out of range", s)
	}

	secs := hours*3600 + mins*60
	if m[1] == "-" {
		secs = -secs
	}
	return time.FixedZone("UTC"+s, secs), nil
}

// Stamp formats t in the given location using StampLayout.
func Stamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(StampLayout)
}
