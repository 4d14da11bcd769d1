package domain

import "time"

// BookingStatus lifecycle state of a booking
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a 24-hour fishing session on one lake
//
// CachedStatus is a best-effort copy of the derived status kept for storage
// queries. Business logic always calls StatusAt instead of reading it.
// CancelledAt is the only persisted lifecycle fact.
type Booking struct {
	ID        string
	MemberID  string
	LakeID    string
	StartAt   time.Time
	EndAt     time.Time
	CreatedAt time.Time
	Notes     *string

	CachedStatus BookingStatus
	CancelledAt  *time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.CancelledAt != nil
}

// StatusAt derives the lifecycle state at the given instant
func (b *Booking) StatusAt(now time.Time) BookingStatus {
	switch {
	case b.IsCancelled():
		return StatusCancelled
	case !now.Before(b.EndAt):
		return StatusCompleted
	case !now.Before(b.StartAt):
		return StatusActive
	default:
		return StatusUpcoming
	}
}

// IsCurrent returns true if the booking is upcoming or active at now
func (b *Booking) IsCurrent(now time.Time) bool {
	status := b.StatusAt(now)
	return status == StatusUpcoming || status == StatusActive
}

// NeedsCompletion returns true if the cached status lags behind a finished session
func (b *Booking) NeedsCompletion(now time.Time) bool {
	return !b.IsCancelled() &&
		b.CachedStatus == StatusUpcoming &&
		!now.Before(b.EndAt)
}

// Clone returns a deep copy so stores never hand out shared pointers
func (b *Booking) Clone() *Booking {
	c := *b
	if b.Notes != nil {
		notes := *b.Notes
		c.Notes = &notes
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}

// SessionBounds returns the session window for a calendar date:
// UTC midnight of the date's year/month/day and 24 hours later.
// The caller's location is ignored so every member sees the same boundary.
func SessionBounds(date time.Time) (start, end time.Time) {
	y, m, d := date.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.Add(SessionDuration)
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// BookingsFilter filter for the admin listing
type BookingsFilter struct {
	From   time.Time      // inclusive, on StartAt
	To     time.Time      // exclusive, on StartAt
	Status *BookingStatus // derived status at the time of the request
}
