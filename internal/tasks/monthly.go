package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httperr"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	ucschedule "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/usecase/schedule"
)

const monthlyTaskName = "monthly_materialize"

// Directory lists the entities the monthly batch iterates.
type Directory interface {
	ListActiveSalons(ctx context.Context) ([]models.Salon, error)
	ListActivePractitioners(ctx context.Context, salonID uint) ([]models.Practitioner, error)
}

// Materializer is the schedule materialization entry point the task drives.
type Materializer interface {
	Execute(ctx context.Context, in ucschedule.MaterializeScheduleInput) (int, error)
}

// MonthlyMaterializer extends every active salon's materialized schedule
// window once per calendar month (business time). The redis claim keyed by
// (task, period start) makes concurrent triggers across process instances
// run the batch at most once; a TaskRun row records what each run did.
type MonthlyMaterializer struct {
	directory   Directory
	materialize Materializer
	claimer     Claimer
	runs        RunStore
	loc         *time.Location
	monthsAhead int
	interval    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

func NewMonthlyMaterializer(
	directory Directory,
	materialize Materializer,
	claimer Claimer,
	runs RunStore,
	loc *time.Location,
	monthsAhead int,
	logger zerolog.Logger,
) *MonthlyMaterializer {
	return &MonthlyMaterializer{
		directory:   directory,
		materialize: materialize,
		claimer:     claimer,
		runs:        runs,
		loc:         loc,
		monthsAhead: monthsAhead,
		interval:    time.Hour,
		logger:      logger.With().Str("task", monthlyTaskName).Logger(),
		now:         time.Now,
	}
}

// Start runs the trigger loop until ctx is cancelled.
func (t *MonthlyMaterializer) Start(ctx context.Context) {
	t.logger.Info().Dur("check_interval", t.interval).Msg("monthly materializer started")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("monthly materializer stopped")
			return
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

func (t *MonthlyMaterializer) tick(ctx context.Context) {
	period := t.currentPeriodStart()

	claimed, err := t.claimer.Claim(ctx, t.claimKey(period))
	if err != nil {
		t.logger.Error().Err(err).Msg("claim failed")
		return
	}
	if !claimed {
		return
	}

	if err := t.runOnce(ctx, period); err != nil {
		t.logger.Error().Err(err).Msg("monthly run failed")
	}
}

// RunNow forces a run for the current period, still going through the
// claim.
func (t *MonthlyMaterializer) RunNow(ctx context.Context) error {
	period := t.currentPeriodStart()

	claimed, err := t.claimer.Claim(ctx, t.claimKey(period))
	if err != nil {
		return err
	}
	if !claimed {
		return httperr.ErrBusiness("period_already_claimed")
	}
	return t.runOnce(ctx, period)
}

func (t *MonthlyMaterializer) runOnce(ctx context.Context, period time.Time) error {
	key := t.claimKey(period)

	run := models.TaskRun{
		ID:          uuid.NewString(),
		TaskName:    monthlyTaskName,
		PeriodStart: period,
		Status:      models.TaskRunStatusRunning,
		StartedAt:   t.now(),
	}
	if err := t.runs.CreateRun(ctx, &run); err != nil {
		// Could not even record the run: release so another trigger retries.
		_ = t.claimer.Release(ctx, key)
		return err
	}

	salons, err := t.directory.ListActiveSalons(ctx)
	if err != nil {
		t.finishRun(ctx, &run, models.TaskRunStatusFailed)
		_ = t.claimer.Release(ctx, key)
		return err
	}

	t.logger.Info().Int("salons", len(salons)).Str("period", period.Format("2006-01")).Msg("materializing")

	for _, salon := range salons {
		select {
		case <-ctx.Done():
			t.finishRun(ctx, &run, models.TaskRunStatusFailed)
			return ctx.Err()
		default:
		}

		// One bad salon never blocks the rest of the batch.
		if err := t.materializeSalon(ctx, salon); err != nil {
			run.EntitiesFailed++
			t.logger.Error().Err(err).Uint("salon_id", salon.ID).Msg("salon materialization failed")
			continue
		}
		run.EntitiesProcessed++
	}

	t.finishRun(ctx, &run, models.TaskRunStatusDone)

	if err := t.claimer.MarkDone(ctx, key, t.periodRemaining(period)); err != nil {
		t.logger.Error().Err(err).Msg("failed to mark period done")
	}

	t.logger.Info().
		Int("processed", run.EntitiesProcessed).
		Int("failed", run.EntitiesFailed).
		Msg("monthly materialization finished")
	return nil
}

// materializeSalon extends the salon's own schedule and those of its active
// practitioners, mirroring what the creation flows seed.
func (t *MonthlyMaterializer) materializeSalon(ctx context.Context, salon models.Salon) error {
	if _, err := t.materialize.Execute(ctx, ucschedule.MaterializeScheduleInput{
		Scope:       domain.ScopeSalon,
		EntityID:    salon.ID,
		MonthsAhead: t.monthsAhead,
	}); err != nil {
		return err
	}

	practitioners, err := t.directory.ListActivePractitioners(ctx, salon.ID)
	if err != nil {
		return err
	}

	for _, p := range practitioners {
		// Owners mirror the salon schedule; nothing of their own to extend.
		if p.Role == models.RoleOwner {
			continue
		}
		if _, err := t.materialize.Execute(ctx, ucschedule.MaterializeScheduleInput{
			Scope:       domain.ScopePractitioner,
			EntityID:    p.ID,
			MonthsAhead: t.monthsAhead,
		}); err != nil {
			return fmt.Errorf("practitioner %d: %w", p.ID, err)
		}
	}
	return nil
}

func (t *MonthlyMaterializer) finishRun(ctx context.Context, run *models.TaskRun, status string) {
	finished := t.now()
	run.Status = status
	run.FinishedAt = &finished
	if err := t.runs.SaveRun(ctx, run); err != nil {
		t.logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to finalize task run")
	}
}

func (t *MonthlyMaterializer) claimKey(period time.Time) string {
	return fmt.Sprintf("%s:%s", monthlyTaskName, period.Format("2006-01"))
}

func (t *MonthlyMaterializer) currentPeriodStart() time.Time {
	now := t.now().In(t.loc)
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, t.loc)
}

func (t *MonthlyMaterializer) periodRemaining(period time.Time) time.Duration {
	end := period.AddDate(0, 1, 0)
	remaining := end.Sub(t.now())
	if remaining < time.Minute {
		remaining = time.Minute
	}
	return remaining
}
