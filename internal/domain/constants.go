package domain

import "time"

const (
	// DefaultCooldown between two booking creations of one member, regardless of lake
	DefaultCooldown = 12 * time.Hour

	// SessionDuration length of every booking
	SessionDuration = 24 * time.Hour
)

// Business validation constants
const (
	MaxNotesLength           = 500
	MaxAvailabilityRangeDays = 62
	DefaultListingWindowDays = 90
)

const DateFormat = "2006-01-02" // YYYY-MM-DD
