package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httperr"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	ucschedule "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/usecase/schedule"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeClaimer struct {
	mu       sync.Mutex
	claimed  map[string]bool
	done     map[string]time.Duration
	released []string
	deny     bool
}

func newFakeClaimer() *fakeClaimer {
	return &fakeClaimer{claimed: map[string]bool{}, done: map[string]time.Duration{}}
}

func (c *fakeClaimer) Claim(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deny || c.claimed[key] {
		return false, nil
	}
	c.claimed[key] = true
	return true, nil
}

func (c *fakeClaimer) MarkDone(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done[key] = ttl
	return nil
}

func (c *fakeClaimer) Release(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.claimed, key)
	c.released = append(c.released, key)
	return nil
}

var _ Claimer = (*fakeClaimer)(nil)

type fakeRunStore struct {
	mu   sync.Mutex
	runs []*models.TaskRun
}

func (s *fakeRunStore) CreateRun(_ context.Context, run *models.TaskRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func (s *fakeRunStore) SaveRun(_ context.Context, _ *models.TaskRun) error {
	return nil
}

var _ RunStore = (*fakeRunStore)(nil)

type fakeDirectory struct {
	salons        []models.Salon
	practitioners map[uint][]models.Practitioner
}

func (d *fakeDirectory) ListActiveSalons(_ context.Context) ([]models.Salon, error) {
	return d.salons, nil
}

func (d *fakeDirectory) ListActivePractitioners(_ context.Context, salonID uint) ([]models.Practitioner, error) {
	return d.practitioners[salonID], nil
}

var _ Directory = (*fakeDirectory)(nil)

type recordedCall struct {
	scope    domain.Scope
	entityID uint
}

type fakeMaterializer struct {
	mu     sync.Mutex
	calls  []recordedCall
	failOn map[uint]bool // salon entity IDs that error
}

func (m *fakeMaterializer) Execute(
	_ context.Context, in ucschedule.MaterializeScheduleInput,
) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if in.Scope == domain.ScopeSalon && m.failOn[in.EntityID] {
		return 0, errors.New("boom")
	}
	m.calls = append(m.calls, recordedCall{scope: in.Scope, entityID: in.EntityID})
	return 30, nil
}

var _ Materializer = (*fakeMaterializer)(nil)

// --------------------------------------------------
// Fixture
// --------------------------------------------------

func newMonthlyFixture(
	dir *fakeDirectory,
	mat *fakeMaterializer,
	claimer *fakeClaimer,
	store *fakeRunStore,
) *MonthlyMaterializer {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		panic(err)
	}

	task := NewMonthlyMaterializer(dir, mat, claimer, store, loc, 1, zerolog.Nop())
	task.now = func() time.Time {
		return time.Date(2026, 6, 10, 8, 0, 0, 0, loc)
	}
	return task
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestMonthlyRunMaterializesSalonsAndPractitioners(t *testing.T) {
	dir := &fakeDirectory{
		salons: []models.Salon{{ID: 1, Active: true}, {ID: 2, Active: true}},
		practitioners: map[uint][]models.Practitioner{
			1: {
				{ID: 10, SalonID: 1, Role: models.RoleOwner, Active: true},
				{ID: 11, SalonID: 1, Role: models.RoleNormal, Active: true},
			},
			2: {
				{ID: 20, SalonID: 2, Role: models.RoleNormal, Active: true},
			},
		},
	}
	mat := &fakeMaterializer{}
	claimer := newFakeClaimer()
	store := &fakeRunStore{}

	task := newMonthlyFixture(dir, mat, claimer, store)
	require.NoError(t, task.RunNow(context.Background()))

	// Both salons, plus the two non-owner practitioners. The owner is
	// skipped: their availability already follows the salon's schedule.
	assert.ElementsMatch(t, []recordedCall{
		{scope: domain.ScopeSalon, entityID: 1},
		{scope: domain.ScopePractitioner, entityID: 11},
		{scope: domain.ScopeSalon, entityID: 2},
		{scope: domain.ScopePractitioner, entityID: 20},
	}, mat.calls)

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.Equal(t, models.TaskRunStatusDone, run.Status)
	assert.Equal(t, 2, run.EntitiesProcessed)
	assert.Zero(t, run.EntitiesFailed)
	require.NotNil(t, run.FinishedAt)

	// Claim is pinned for the rest of June.
	ttl, marked := claimer.done["monthly_materialize:2026-06"]
	require.True(t, marked)
	assert.Greater(t, ttl, 24*time.Hour)
}

func TestMonthlyRunSkipsWhenPeriodClaimed(t *testing.T) {
	dir := &fakeDirectory{salons: []models.Salon{{ID: 1, Active: true}}}
	mat := &fakeMaterializer{}
	claimer := newFakeClaimer()
	claimer.deny = true
	store := &fakeRunStore{}

	task := newMonthlyFixture(dir, mat, claimer, store)

	err := task.RunNow(context.Background())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "period_already_claimed"))
	assert.Empty(t, mat.calls)
	assert.Empty(t, store.runs)
}

func TestMonthlyRunContinuesPastFailingSalon(t *testing.T) {
	dir := &fakeDirectory{
		salons: []models.Salon{{ID: 1, Active: true}, {ID: 2, Active: true}},
		practitioners: map[uint][]models.Practitioner{
			2: {{ID: 20, SalonID: 2, Role: models.RoleNormal, Active: true}},
		},
	}
	mat := &fakeMaterializer{failOn: map[uint]bool{1: true}}
	claimer := newFakeClaimer()
	store := &fakeRunStore{}

	task := newMonthlyFixture(dir, mat, claimer, store)
	require.NoError(t, task.RunNow(context.Background()))

	assert.ElementsMatch(t, []recordedCall{
		{scope: domain.ScopeSalon, entityID: 2},
		{scope: domain.ScopePractitioner, entityID: 20},
	}, mat.calls)

	require.Len(t, store.runs, 1)
	assert.Equal(t, models.TaskRunStatusDone, store.runs[0].Status)
	assert.Equal(t, 1, store.runs[0].EntitiesProcessed)
	assert.Equal(t, 1, store.runs[0].EntitiesFailed)

	// A partial run still pins the period; operators retry via the run log.
	_, marked := claimer.done["monthly_materialize:2026-06"]
	assert.True(t, marked)
}

func TestMonthlyRunIsOncePerPeriod(t *testing.T) {
	dir := &fakeDirectory{salons: []models.Salon{{ID: 1, Active: true}}}
	mat := &fakeMaterializer{}
	claimer := newFakeClaimer()
	store := &fakeRunStore{}

	task := newMonthlyFixture(dir, mat, claimer, store)
	require.NoError(t, task.RunNow(context.Background()))
	require.Error(t, task.RunNow(context.Background()))

	require.Len(t, store.runs, 1)
	assert.Len(t, mat.calls, 1)
}
