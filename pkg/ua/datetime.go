package ua

import "time"

// epoch is 1601-01-01 00:00:00 UTC, the OPC UA DateTime origin.
var epoch = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

// DateTime is an i64 count of 100-nanosecond ticks since 1601-01-01
// UTC. Zero denotes "unspecified" per spec.md §3.
type DateTime int64

// Time converts d to a time.Time. The zero DateTime maps to the zero
// time.Time, preserving the "unspecified" sentinel.
func (d DateTime) Time() time.Time {
	if d == 0 {
		return time.Time{}
	}
	return epoch.Add(time.Duration(d) * 100)
}

// NewDateTime converts t to a DateTime. The zero time.Time maps back
// to DateTime(0).
func NewDateTime(t time.Time) DateTime {
	if t.IsZero() {
		return 0
	}
	return DateTime(t.Sub(epoch) / 100)
}

func (d *Decoder) DateTime(field string) (DateTime, error) {
	v, err := d.Int64(field)
	return DateTime(v), err
}

func (e *Encoder) DateTime(v DateTime) { e.Int64(int64(v)) }
