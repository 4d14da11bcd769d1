package domain

import "time"

// BookingStats dashboard counters derived at one instant
type BookingStats struct {
	ActiveNow   int
	Upcoming    int
	Completed   int
	Cancelled   int
	TotalActive int // upcoming + active
	Total       int
}

// CollectStats derives counters for all bookings at now
func CollectStats(bookings []*Booking, now time.Time) BookingStats {
	var s BookingStats
	for _, b := range bookings {
		s.Total++
		switch b.StatusAt(now) {
		case StatusActive:
			s.ActiveNow++
		case StatusUpcoming:
			s.Upcoming++
		case StatusCompleted:
			s.Completed++
		case StatusCancelled:
			s.Cancelled++
		}
	}
	s.TotalActive = s.ActiveNow + s.Upcoming
	return s
}
