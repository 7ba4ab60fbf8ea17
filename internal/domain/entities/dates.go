package entities

import (
	"fmt"
	"time"
)

// TimestampLayout is the layout for generated timestamps: UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DateOnlyLayout is accepted for user-supplied due dates.
const DateOnlyLayout = "2006-01-02"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseDate parses an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateOnlyLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected RFC 3339 or YYYY-MM-DD)", s)
}

// DueTime parses the entity's due date. ok is false when it is missing or
// unparseable.
func (e *Entity) DueTime() (t time.Time, ok bool) {
	due := e.DueDate()
	if due == "" {
		return time.Time{}, false
	}
	t, err := ParseDate(due)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DueBefore orders entities by due date ascending. Entities without a
// parseable due date sort after those with one.
func DueBefore(a, b *Entity) bool {
	ta, oka := a.DueTime()
	tb, okb := b.DueTime()
	switch {
	case oka && okb:
		return ta.Before(tb)
	case oka:
		return true
	default:
		return false
	}
}
