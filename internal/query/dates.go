package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned for range bounds in an unsupported format.
var ErrInvalidDate = errors.New("invalid date")

const dateOnlyLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseLowerBound parses an inclusive lower bound. Date-only values mean the
// start of that day in UTC. An empty string yields nil.
func ParseLowerBound(value string) (*time.Time, error) {
	t, _, err := parseBound(value)
	return t, err
}

// ParseUpperBound parses an inclusive upper bound. Date-only values mean the
// end of that day so the whole day is included.
func ParseUpperBound(value string) (*time.Time, error) {
	t, dateOnly, err := parseBound(value)
	if err != nil || t == nil || !dateOnly {
		return t, err
	}
	end := EndOfDay(*t)
	return &end, nil
}

// EndOfDay returns the last millisecond of t's day. Stored dates carry
// millisecond precision.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func parseBound(value string) (*time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false, nil
	}

	if t, err := time.ParseInLocation(dateOnlyLayout, value, time.UTC); err == nil {
		return &t, true, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t = t.UTC()
			return &t, false, nil
		}
	}

	return nil, false, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
