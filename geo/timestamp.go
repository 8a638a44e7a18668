package geo

import (
	"fmt"
	"strings"
	"time"
)

// Precision records how precisely a timestamp was known at the source.
type Precision uint8

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
	PrecisionMillisecond
)

// String returns the lowercase precision name.
func (p Precision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	case PrecisionHour:
		return "hour"
	case PrecisionMinute:
		return "minute"
	case PrecisionSecond:
		return "second"
	case PrecisionMillisecond:
		return "millisecond"
	default:
		return "unknown"
	}
}

// Timestamp is a UTC instant plus the precision it was recorded with.
// Ordering and equality only consider the instant.
type Timestamp struct {
	Time      time.Time
	Precision Precision
}

// NewTimestamp returns t in UTC with second precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC(), Precision: PrecisionSecond}
}

// WithPrecision returns t in UTC tagged with p.
func WithPrecision(t time.Time, p Precision) Timestamp {
	return Timestamp{Time: t.UTC(), Precision: p}
}

// Now returns the current instant.
func Now() Timestamp {
	return WithPrecision(time.Now(), PrecisionMillisecond)
}

// FromUnixMilli returns the timestamp for a unix millisecond epoch value.
func FromUnixMilli(ms int64) Timestamp {
	return WithPrecision(time.UnixMilli(ms), PrecisionMillisecond)
}

var layouts = []struct {
	layout    string
	precision Precision
}{
	{time.RFC3339Nano, PrecisionMillisecond},
	{time.RFC3339, PrecisionSecond},
	{"2006-01-02T15:04:05", PrecisionSecond},
	{"2006-01-02T15:04", PrecisionMinute},
	{"2006-01-02", PrecisionDay},
	{"2006-01", PrecisionMonth},
	{"2006", PrecisionYear},
}

// ParseTimestamp parses RFC 3339 and the truncated ISO 8601 forms
// "2006-01-02", "2006-01" and "2006". The precision follows the form.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		p := l.precision
		if p == PrecisionMillisecond && t.Nanosecond() == 0 {
			p = PrecisionSecond
		}
		return WithPrecision(t, p), nil
	}
	return Timestamp{}, fmt.Errorf("geo: cannot parse timestamp %q", s)
}

// MustParseTimestamp is like ParseTimestamp but panics on error.
// Intended for tests and literals.
func MustParseTimestamp(s string) Timestamp {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// UnixMilli returns the instant as milliseconds since the unix epoch.
// Sub-millisecond detail is truncated.
func (t Timestamp) UnixMilli() int64 {
	return t.Time.UnixMilli()
}

// Compare returns -1, 0 or +1 ordering t against other by instant.
func (t Timestamp) Compare(other Timestamp) int {
	return t.Time.Compare(other.Time)
}

// Before reports whether t is strictly earlier than other.
func (t Timestamp) Before(other Timestamp) bool { return t.Time.Before(other.Time) }

// After reports whether t is strictly later than other.
func (t Timestamp) After(other Timestamp) bool { return t.Time.After(other.Time) }

// Equal reports whether t and other denote the same instant.
func (t Timestamp) Equal(other Timestamp) bool { return t.Time.Equal(other.Time) }

// Add returns t shifted by d, keeping the precision.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return Timestamp{Time: t.Time.Add(d), Precision: t.Precision}
}

// String formats the timestamp as RFC 3339 in UTC.
func (t Timestamp) String() string {
	return t.Time.UTC().Format(time.RFC3339Nano)
}
