package schedule

import (
	"context"
	"time"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type GetDayScheduleInput struct {
	Scope    domain.Scope
	EntityID uint
	Date     time.Time
}

// ======================================================
// USE CASE
// ======================================================

// GetDaySchedule resolves one entity's schedule for a single day: the
// persisted override when one exists, the weekly template otherwise.
type GetDaySchedule struct {
	repo domain.Repository
	loc  *time.Location
}

func NewGetDaySchedule(repo domain.Repository, loc *time.Location) *GetDaySchedule {
	return &GetDaySchedule{repo: repo, loc: loc}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetDaySchedule) Execute(
	ctx context.Context,
	in GetDayScheduleInput,
) (*domain.DaySchedule, error) {

	day := timeutil.StartOfDay(in.Date, uc.loc)

	ov, err := uc.repo.GetOverride(ctx, in.Scope, in.EntityID, day)
	if err != nil {
		return nil, err
	}
	if ov != nil {
		view := domain.NewDaySchedule(ov, uc.loc)
		return &view, nil
	}

	template, err := uc.repo.GetWeeklyTemplate(ctx, in.Scope, in.EntityID)
	if err != nil {
		return nil, err
	}

	view := domain.DaySchedule{
		Date:   day.In(uc.loc).Format("2006-01-02"),
		Source: domain.DaySourceTemplate,
	}

	// No template rows: nothing scheduled yet for this day.
	if len(template) == 0 {
		return &view, nil
	}

	def, err := domain.ResolveTemplateDay(template, day, uc.loc)
	if err != nil {
		return nil, err
	}

	view.IsDayOff = def.IsHoliday
	if !def.IsHoliday {
		view.Windows = def.Windows
	}
	return &view, nil
}
