package validators

import (
	"fmt"
	"time"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

// ValidateWindows enforces the shape the scheduling engine assumes:
// well-formed "15:04" bounds, each window's end after its start, and windows
// in ascending, non-overlapping order.
func ValidateWindows(windows []models.TimeWindow) error {
	var prevEnd time.Time

	for i, w := range windows {
		start, err := time.Parse("15:04", w.Start)
		if err != nil {
			return fmt.Errorf("window %d: invalid start %q", i, w.Start)
		}

		end, err := time.Parse("15:04", w.End)
		if err != nil {
			return fmt.Errorf("window %d: invalid end %q", i, w.End)
		}

		if !end.After(start) {
			return fmt.Errorf("window %d: end %s not after start %s", i, w.End, w.Start)
		}

		if i > 0 && start.Before(prevEnd) {
			return fmt.Errorf("window %d: overlaps or precedes previous window", i)
		}
		prevEnd = end
	}
	return nil
}
