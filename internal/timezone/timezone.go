package timezone

import (
	"fmt"
	"time"
)

// Location resolves the business timezone. An unset or unknown identifier is
// a configuration error; scheduling must never silently fall back to UTC.
func Location(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("business timezone is not configured")
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", tz, err)
	}
	return loc, nil
}
