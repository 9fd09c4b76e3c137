package schedule

import (
	"context"
	"time"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/audit"
	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type SetDayScheduleInput struct {
	Scope    domain.Scope
	EntityID uint
	SalonID  uint  // audit context
	UserID   *uint // audit context
	Date     time.Time
	IsDayOff bool
	Windows  []models.TimeWindow
}

// ======================================================
// USE CASE
// ======================================================

// SetDaySchedule validates and persists an explicit override for one day.
// An edit that would leave any confirmed booking outside the new working
// time is rejected whole; nothing is partially applied. The booking read
// and the override write share one transaction, with the booking rows
// locked, so a concurrently created booking cannot slip past the check.
type SetDaySchedule struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	loc         *time.Location
	granularity time.Duration
}

func NewSetDaySchedule(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
	granularity time.Duration,
) *SetDaySchedule {
	return &SetDaySchedule{
		repo:        repo,
		audit:       auditDispatcher,
		loc:         loc,
		granularity: granularity,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SetDaySchedule) Execute(
	ctx context.Context,
	in SetDayScheduleInput,
) (*domain.DaySchedule, error) {

	day := timeutil.StartOfDay(in.Date, uc.loc)
	nextDay := day.AddDate(0, 0, 1)

	row := &models.DailyOverride{
		EntityID: in.EntityID,
		Date:     day,
		IsDayOff: in.IsDayOff,
	}

	var windows []timeutil.Interval
	if !in.IsDayOff {
		for _, w := range in.Windows {
			iv, err := timeutil.AnchorWindow(day, w.Start, w.End, uc.loc)
			if err != nil {
				return nil, err
			}
			windows = append(windows, iv)
			row.WorkingTime = append(row.WorkingTime, models.TimeRange{
				StartTime: iv.Start,
				EndTime:   iv.End,
			})
		}
	}

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		bookings, err := tx.ListConfirmedBookingsForUpdate(ctx, in.Scope, in.EntityID, day, nextDay)
		if err != nil {
			return err
		}

		if conflicts := uc.findConflicts(bookings, in.IsDayOff, windows); len(conflicts) > 0 {
			return domain.ConflictError{Date: day, Bookings: conflicts}
		}

		return tx.UpsertOverride(ctx, in.Scope, row)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "day_schedule_updated",
		Entity:   string(in.Scope),
		EntityID: &in.EntityID,
		Metadata: map[string]any{
			"date":       day.In(uc.loc).Format("2006-01-02"),
			"is_day_off": in.IsDayOff,
		},
	})

	view := domain.NewDaySchedule(row, uc.loc)
	return &view, nil
}

// findConflicts returns the bookings the requested working time would
// strand. Closing a day with any confirmed booking is always a conflict;
// otherwise every slot instant of every booking must stay inside the new
// windows.
func (uc *SetDaySchedule) findConflicts(
	bookings []models.Booking,
	isDayOff bool,
	windows []timeutil.Interval,
) []domain.ConflictingBooking {

	if len(bookings) == 0 {
		return nil
	}

	if isDayOff {
		return conflictList(bookings)
	}

	allowed := make(map[int64]struct{})
	for _, slot := range timeutil.EnumerateSlots(windows, uc.granularity) {
		allowed[slot.UnixMilli()] = struct{}{}
	}

	var conflicts []domain.ConflictingBooking
	for _, b := range bookings {
		bookingSlots := timeutil.EnumerateSlots(
			[]timeutil.Interval{{Start: b.StartTime, End: b.EndTime}},
			uc.granularity,
		)

		for _, slot := range bookingSlots {
			if _, ok := allowed[slot.UnixMilli()]; !ok {
				conflicts = append(conflicts, domain.ConflictingBooking{
					BookingID: b.ID,
					StartTime: b.StartTime,
					EndTime:   b.EndTime,
				})
				break
			}
		}
	}
	return conflicts
}

func conflictList(bookings []models.Booking) []domain.ConflictingBooking {
	out := make([]domain.ConflictingBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.ConflictingBooking{
			BookingID: b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	return out
}
