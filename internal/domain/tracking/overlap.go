package tracking

import (
	"time"

	"github.com/google/uuid"
)

// Overlaps reports whether the candidate interval [newStart, newEnd)
// conflicts with any of the given entries. An entry whose ID equals
// excludeID is skipped, so an entry being rescheduled never conflicts with
// itself. Pass uuid.Nil to check against all entries.
//
// Two intervals conflict when the candidate starts inside an entry, ends
// inside an entry, or fully contains an entry. Boundaries are exclusive:
// an interval starting exactly where another ends is not a conflict.
func Overlaps(entries []*TimeEntry, newStart, newEnd time.Time, excludeID uuid.UUID) bool {
	for _, entry := range entries {
		if excludeID != uuid.Nil && entry.ID == excludeID {
			continue
		}

		startsInside := !newStart.Before(entry.StartTime) && newStart.Before(entry.EndTime)
		endsInside := newEnd.After(entry.StartTime) && !newEnd.After(entry.EndTime)
		contains := !newStart.After(entry.StartTime) && !newEnd.Before(entry.EndTime)

		if startsInside || endsInside || contains {
			return true
		}
	}
	return false
}
