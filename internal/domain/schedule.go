package domain

import "github.com/turnosapp/booking-service/pkg/types"

// Interval is a contiguous open time range [Start, End) in which a barber is
// nominally available, before subtracting occupied slots
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if the interval has positive length
func (i Interval) IsValid() bool {
	return i.Start.IsBefore(i.End)
}

// Overlaps returns true if the interval shares any time with other.
// Touching boundaries do not count as overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains returns true if [start, end) fits entirely inside the interval
func (i Interval) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(i.Start) && !end.IsAfter(i.End)
}
