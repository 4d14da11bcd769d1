package domain

import "time"

// Availability occupancy of one lake on one calendar day
type Availability struct {
	LakeID    string
	Date      time.Time
	Capacity  int
	Booked    int
	Available int
}

// NewAvailability counts non-cancelled bookings that start on the session of date
// Bookings of other days are ignored so callers may pass a wider slice
func NewAvailability(lake Lake, date time.Time, bookings []*Booking) Availability {
	start, _ := SessionBounds(date)

	booked := 0
	for _, b := range bookings {
		if b.IsCancelled() || b.LakeID != lake.ID || !b.StartAt.Equal(start) {
			continue
		}
		booked++
	}

	available := lake.Capacity - booked
	if available < 0 {
		available = 0
	}

	return Availability{
		LakeID:    lake.ID,
		Date:      start,
		Capacity:  lake.Capacity,
		Booked:    booked,
		Available: available,
	}
}

// IsFull returns true if no spots are left
func (a Availability) IsFull() bool {
	return a.Available <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (a Availability) OccupancyRate() float64 {
	if a.Capacity == 0 {
		return 0
	}
	return float64(a.Capacity-a.Available) / float64(a.Capacity) * 100
}
