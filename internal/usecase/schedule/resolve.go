package schedule

import (
	"context"
	"time"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/timeutil"
)

// resolveEntityWindows produces the absolute working-time intervals of one
// entity across [from, to], one decision per calendar day: a persisted
// override wins outright; otherwise the weekly template is anchored to the
// day. Days off, holidays and days with no hours contribute nothing. A day
// with neither an override nor any template rows is a materialization gap
// and contributes nothing rather than failing.
func resolveEntityWindows(
	ctx context.Context,
	repo domain.Repository,
	scope domain.Scope,
	entityID uint,
	from time.Time,
	to time.Time,
	loc *time.Location,
) ([]timeutil.Interval, error) {

	days := timeutil.DateRange(from, to, loc)
	if len(days) == 0 {
		return nil, nil
	}

	overrides, err := repo.ListOverrides(ctx, scope, entityID, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	byDay := make(map[int64]models.DailyOverride, len(overrides))
	for _, ov := range overrides {
		byDay[ov.Date.UnixMilli()] = ov
	}

	var (
		windows        []timeutil.Interval
		templateRows   []models.TemplateDay
		templateLoaded bool
	)

	for _, day := range days {
		if ov, ok := byDay[day.UnixMilli()]; ok {
			if ov.IsDayOff {
				continue
			}
			for _, tr := range ov.WorkingTime {
				windows = append(windows, timeutil.Interval{Start: tr.StartTime, End: tr.EndTime})
			}
			continue
		}

		// Template fallback, loaded once and only when some day needs it.
		if !templateLoaded {
			templateRows, err = repo.GetWeeklyTemplate(ctx, scope, entityID)
			if err != nil {
				return nil, err
			}
			templateLoaded = true
		}

		// No template at all: materialization gap, zero slots for the day.
		if len(templateRows) == 0 {
			continue
		}

		def, err := domain.ResolveTemplateDay(templateRows, day, loc)
		if err != nil {
			return nil, err
		}

		anchored, err := domain.AnchorTemplateDay(def, day, loc)
		if err != nil {
			return nil, err
		}
		windows = append(windows, anchored...)
	}

	return windows, nil
}
