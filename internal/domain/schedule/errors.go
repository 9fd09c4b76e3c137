package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ===============================
// Error Taxonomy
// ===============================

// ConfigurationError is a fatal misconfiguration (template missing a
// weekday, business timezone unset). Never user-recoverable.
type ConfigurationError struct {
	Detail string
}

func (e ConfigurationError) Error() string {
	return "schedule configuration error: " + e.Detail
}

// DataIntegrityError marks an inconsistent record encountered mid-resolution,
// e.g. a practitioner with no owning salon. Fails fast rather than guessing.
type DataIntegrityError struct {
	Detail string
}

func (e DataIntegrityError) Error() string {
	return "schedule data integrity error: " + e.Detail
}

// ConflictingBooking identifies one confirmed booking a rejected edit would
// have stranded.
type ConflictingBooking struct {
	BookingID uint      `json:"booking_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ConflictError rejects a day-schedule edit that would strand confirmed
// bookings outside the new working time.
type ConflictError struct {
	Date     time.Time
	Bookings []ConflictingBooking
}

func (e ConflictError) Error() string {
	return fmt.Sprintf(
		"schedule conflict on %s: %d confirmed booking(s) outside the requested working time",
		e.Date.Format("2006-01-02"), len(e.Bookings),
	)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}
