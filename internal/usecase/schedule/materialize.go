package schedule

import (
	"context"
	"time"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type MaterializeScheduleInput struct {
	Scope       domain.Scope
	EntityID    uint
	MonthsAhead int
}

// ======================================================
// USE CASE
// ======================================================

// MaterializeSchedule turns an entity's weekly template into concrete
// DailyOverride rows for [today, end of month today+N]. Days that already
// carry an override are never touched, even if the template has since
// changed, so re-runs are idempotent and published schedules stay stable.
type MaterializeSchedule struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewMaterializeSchedule(repo domain.Repository, loc *time.Location) *MaterializeSchedule {
	return &MaterializeSchedule{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *MaterializeSchedule) Execute(
	ctx context.Context,
	in MaterializeScheduleInput,
) (int, error) {

	if !in.Scope.Valid() {
		return 0, domain.ConfigurationError{Detail: "unknown scope " + string(in.Scope)}
	}

	months := in.MonthsAhead
	if months <= 0 {
		months = 1
	}

	today := timeutil.StartOfDay(uc.now(), uc.loc)
	rangeEnd := endOfMonth(today.AddDate(0, months, 0), uc.loc)
	days := timeutil.DateRange(today, rangeEnd, uc.loc)

	existing, err := uc.repo.ListOverrides(ctx, in.Scope, in.EntityID, days[0], days[len(days)-1])
	if err != nil {
		return 0, err
	}

	adjusted := make(map[int64]struct{}, len(existing))
	for _, ov := range existing {
		adjusted[ov.Date.UnixMilli()] = struct{}{}
	}

	template, err := uc.repo.GetWeeklyTemplate(ctx, in.Scope, in.EntityID)
	if err != nil {
		return 0, err
	}
	if len(template) == 0 {
		return 0, domain.ConfigurationError{Detail: "entity has no weekly template"}
	}

	var rows []models.DailyOverride
	for _, day := range days {
		if _, ok := adjusted[day.UnixMilli()]; ok {
			continue
		}

		def, err := domain.ResolveTemplateDay(template, day, uc.loc)
		if err != nil {
			return 0, err
		}

		row := models.DailyOverride{
			EntityID: in.EntityID,
			Date:     day,
			IsDayOff: def.IsHoliday,
		}

		if !def.IsHoliday {
			// A non-holiday day with zero windows still materializes, with
			// empty working time: "no hours configured" is not "holiday".
			anchored, err := domain.AnchorTemplateDay(def, day, uc.loc)
			if err != nil {
				return 0, err
			}
			for _, iv := range anchored {
				row.WorkingTime = append(row.WorkingTime, models.TimeRange{
					StartTime: iv.Start,
					EndTime:   iv.End,
				})
			}
		}

		rows = append(rows, row)
	}

	if err := uc.repo.BulkInsertOverrides(ctx, in.Scope, rows); err != nil {
		return 0, err
	}

	return len(rows), nil
}

// endOfMonth returns the midnight of the last day of t's month.
func endOfMonth(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	firstOfNext := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
