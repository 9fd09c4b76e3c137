package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type AvailableSlotsInput struct {
	PractitionerIDs []uint
	StartDate       time.Time
	EndDate         time.Time
}

// ======================================================
// USE CASE
// ======================================================

// AvailableSlots computes the bookable slot start instants per practitioner
// over a date range: own resolved windows intersected with the owning
// salon's, minus slots consumed by confirmed bookings. Salon owners mirror
// the salon's schedule wholesale; their personal template is ignored.
type AvailableSlots struct {
	repo        domain.Repository
	loc         *time.Location
	granularity time.Duration
	workers     int
}

func NewAvailableSlots(
	repo domain.Repository,
	loc *time.Location,
	granularity time.Duration,
) *AvailableSlots {
	return &AvailableSlots{
		repo:        repo,
		loc:         loc,
		granularity: granularity,
		workers:     4,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute resolves every practitioner independently; resolutions are
// read-only and fan out over a bounded worker pool. Context cancellation
// stops unstarted entities; already-resolved ones keep their result.
func (uc *AvailableSlots) Execute(
	ctx context.Context,
	in AvailableSlotsInput,
) (map[uint][]time.Time, error) {

	result := make(map[uint][]time.Time, len(in.PractitionerIDs))

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	sem := make(chan struct{}, uc.workers)

	for _, id := range in.PractitionerIDs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(practitionerID uint) {
			defer wg.Done()
			defer func() { <-sem }()

			slots, err := uc.resolvePractitioner(ctx, practitionerID, in.StartDate, in.EndDate)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("practitioner %d: %w", practitionerID, err)
				}
				return
			}
			result[practitionerID] = slots
		}(id)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

func (uc *AvailableSlots) resolvePractitioner(
	ctx context.Context,
	practitionerID uint,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	p, err := uc.repo.GetPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	if p.SalonID == 0 {
		return nil, domain.DataIntegrityError{
			Detail: fmt.Sprintf("practitioner %d has no owning salon", practitionerID),
		}
	}

	salonSlots, err := uc.entitySlots(ctx, domain.ScopeSalon, p.SalonID, from, to)
	if err != nil {
		return nil, err
	}

	var slots []time.Time
	if p.Role == models.RoleOwner {
		// Owners have no independent schedule; the salon's is theirs.
		slots = salonSlots
	} else {
		ownSlots, err := uc.entitySlots(ctx, domain.ScopePractitioner, practitionerID, from, to)
		if err != nil {
			return nil, err
		}
		slots = timeutil.Intersect(ownSlots, salonSlots)
	}

	booked, err := uc.bookedSlots(ctx, practitionerID, from, to)
	if err != nil {
		return nil, err
	}

	return timeutil.Difference(slots, booked), nil
}

func (uc *AvailableSlots) entitySlots(
	ctx context.Context,
	scope domain.Scope,
	entityID uint,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	windows, err := resolveEntityWindows(ctx, uc.repo, scope, entityID, from, to, uc.loc)
	if err != nil {
		return nil, err
	}
	return timeutil.EnumerateSlots(windows, uc.granularity), nil
}

func (uc *AvailableSlots) bookedSlots(
	ctx context.Context,
	practitionerID uint,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	rangeStart := timeutil.StartOfDay(from, uc.loc)
	rangeEnd := timeutil.EndOfDay(to, uc.loc)

	bookings, err := uc.repo.ListConfirmedBookings(
		ctx, domain.ScopePractitioner, practitionerID, rangeStart, rangeEnd,
	)
	if err != nil {
		return nil, err
	}

	var intervals []timeutil.Interval
	for _, b := range bookings {
		intervals = append(intervals, timeutil.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return timeutil.EnumerateSlots(intervals, uc.granularity), nil
}
