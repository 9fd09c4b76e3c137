package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

// fakeRepo is an in-memory domain.Repository for engine tests.
type fakeRepo struct {
	mu sync.Mutex

	overrides     map[domain.Scope]map[string]models.DailyOverride
	templates     map[domain.Scope]map[uint][]models.TemplateDay
	practitioners map[uint]models.Practitioner
	salons        []models.Salon
	bookings      []models.Booking

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		overrides: map[domain.Scope]map[string]models.DailyOverride{
			domain.ScopePractitioner: {},
			domain.ScopeSalon:        {},
		},
		templates: map[domain.Scope]map[uint][]models.TemplateDay{
			domain.ScopePractitioner: {},
			domain.ScopeSalon:        {},
		},
		practitioners: map[uint]models.Practitioner{},
	}
}

func overrideKey(entityID uint, date time.Time) string {
	return fmt.Sprintf("%d:%d", entityID, date.UnixMilli())
}

func (f *fakeRepo) GetOverride(
	_ context.Context, scope domain.Scope, entityID uint, date time.Time,
) (*models.DailyOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ov, ok := f.overrides[scope][overrideKey(entityID, date)]; ok {
		copied := ov
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListOverrides(
	_ context.Context, scope domain.Scope, entityID uint, from, to time.Time,
) ([]models.DailyOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []models.DailyOverride
	for _, ov := range f.overrides[scope] {
		if ov.EntityID != entityID {
			continue
		}
		if ov.Date.Before(from) || ov.Date.After(to) {
			continue
		}
		rows = append(rows, ov)
	}
	return rows, nil
}

func (f *fakeRepo) BulkInsertOverrides(
	_ context.Context, scope domain.Scope, rows []models.DailyOverride,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range rows {
		key := overrideKey(row.EntityID, row.Date)
		if _, exists := f.overrides[scope][key]; exists {
			return fmt.Errorf("duplicate override for %s", key)
		}
	}
	for _, row := range rows {
		f.nextID++
		row.ID = f.nextID
		f.overrides[scope][overrideKey(row.EntityID, row.Date)] = row
	}
	return nil
}

func (f *fakeRepo) UpsertOverride(
	_ context.Context, scope domain.Scope, row *models.DailyOverride,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := overrideKey(row.EntityID, row.Date)
	if existing, ok := f.overrides[scope][key]; ok {
		row.ID = existing.ID
	} else {
		f.nextID++
		row.ID = f.nextID
	}
	f.overrides[scope][key] = *row
	return nil
}

func (f *fakeRepo) GetWeeklyTemplate(
	_ context.Context, scope domain.Scope, entityID uint,
) ([]models.TemplateDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.templates[scope][entityID], nil
}

func (f *fakeRepo) GetPractitioner(_ context.Context, id uint) (*models.Practitioner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.practitioners[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListActiveSalons(_ context.Context) ([]models.Salon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Salon
	for _, s := range f.salons {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActivePractitioners(_ context.Context, salonID uint) ([]models.Practitioner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Practitioner
	for _, p := range f.practitioners {
		if p.SalonID == salonID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) listBookings(scope domain.Scope, entityID uint, from, to time.Time) []models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status != "scheduled" {
			continue
		}
		if scope == domain.ScopeSalon && b.SalonID != entityID {
			continue
		}
		if scope == domain.ScopePractitioner && b.PractitionerID != entityID {
			continue
		}
		if !b.StartTime.Before(to) || !b.EndTime.After(from) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (f *fakeRepo) ListConfirmedBookings(
	_ context.Context, scope domain.Scope, entityID uint, from, to time.Time,
) ([]models.Booking, error) {
	return f.listBookings(scope, entityID, from, to), nil
}

func (f *fakeRepo) ListConfirmedBookingsForUpdate(
	_ context.Context, scope domain.Scope, entityID uint, from, to time.Time,
) ([]models.Booking, error) {
	return f.listBookings(scope, entityID, from, to), nil
}

func (f *fakeRepo) InTransaction(_ context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Shared fixtures
// --------------------------------------------------

func weekTemplate(start, end string, holidayWeekdays ...int) []models.TemplateDay {
	holiday := map[int]bool{}
	for _, wd := range holidayWeekdays {
		holiday[wd] = true
	}

	days := make([]models.TemplateDay, 7)
	for wd := 0; wd < 7; wd++ {
		days[wd] = models.TemplateDay{Weekday: wd}
		if holiday[wd] {
			days[wd].IsHoliday = true
			continue
		}
		days[wd].Windows = []models.TimeWindow{{Start: start, End: end}}
	}
	return days
}

func mustLoc() *time.Location {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		panic(err)
	}
	return loc
}
