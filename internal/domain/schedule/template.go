package schedule

import (
	"fmt"
	"time"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/timeutil"
)

// ===============================
// Template Resolution
// ===============================

// ResolveTemplateDay looks up the weekly-template entry for date's weekday
// in the business timezone. A missing weekday row is a data-integrity
// violation, not an implicit "closed" day.
func ResolveTemplateDay(
	days []models.TemplateDay,
	date time.Time,
	loc *time.Location,
) (models.TemplateDay, error) {

	weekday := int(date.In(loc).Weekday())
	for _, d := range days {
		if d.Weekday == weekday {
			return d, nil
		}
	}

	return models.TemplateDay{}, ConfigurationError{
		Detail: fmt.Sprintf("weekly template has no entry for weekday %d", weekday),
	}
}

// AnchorTemplateDay converts a template day's time-of-day windows into
// absolute intervals on the given calendar day. Holidays and day entries
// without windows anchor to nothing.
func AnchorTemplateDay(
	day models.TemplateDay,
	date time.Time,
	loc *time.Location,
) ([]timeutil.Interval, error) {

	if day.IsHoliday {
		return nil, nil
	}

	intervals := make([]timeutil.Interval, 0, len(day.Windows))
	for _, w := range day.Windows {
		iv, err := timeutil.AnchorWindow(date, w.Start, w.End, loc)
		if err != nil {
			return nil, ConfigurationError{
				Detail: fmt.Sprintf("weekday %d window %s-%s: %v", day.Weekday, w.Start, w.End, err),
			}
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}
