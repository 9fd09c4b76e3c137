package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) overrides(ctx context.Context, scope domain.Scope) *gorm.DB {
	return r.db.WithContext(ctx).Table(scope.OverrideTable())
}

// --------------------------------------------------
// Daily overrides
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOverride(
	ctx context.Context,
	scope domain.Scope,
	entityID uint,
	date time.Time,
) (*models.DailyOverride, error) {

	var row models.DailyOverride
	err := r.overrides(ctx, scope).
		Where("entity_id = ? AND date = ?", entityID, date).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScheduleGormRepository) ListOverrides(
	ctx context.Context,
	scope domain.Scope,
	entityID uint,
	from time.Time,
	to time.Time,
) ([]models.DailyOverride, error) {

	var rows []models.DailyOverride
	err := r.overrides(ctx, scope).
		Where("entity_id = ? AND date >= ? AND date <= ?", entityID, from, to).
		Order("date ASC").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BulkInsertOverrides writes a materialized batch as one multi-row insert.
// A failure aborts the whole batch for the entity; no partial commit.
func (r *ScheduleGormRepository) BulkInsertOverrides(
	ctx context.Context,
	scope domain.Scope,
	rows []models.DailyOverride,
) error {

	if len(rows) == 0 {
		return nil
	}
	return r.overrides(ctx, scope).Create(&rows).Error
}

// UpsertOverride is the single path allowed to overwrite a previously
// materialized row (explicit user edit via the schedule editor).
func (r *ScheduleGormRepository) UpsertOverride(
	ctx context.Context,
	scope domain.Scope,
	row *models.DailyOverride,
) error {

	return r.overrides(ctx, scope).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "entity_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_day_off", "working_time", "updated_at",
			}),
		}).
		Create(row).Error
}

// --------------------------------------------------
// Weekly templates
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWeeklyTemplate(
	ctx context.Context,
	scope domain.Scope,
	entityID uint,
) ([]models.TemplateDay, error) {

	var days []models.TemplateDay
	err := r.db.WithContext(ctx).
		Where("owner_scope = ? AND owner_id = ?", string(scope), entityID).
		Order("weekday ASC").
		Find(&days).Error

	if err != nil {
		return nil, err
	}
	return days, nil
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func (r *ScheduleGormRepository) GetPractitioner(
	ctx context.Context,
	id uint,
) (*models.Practitioner, error) {

	var p models.Practitioner
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ScheduleGormRepository) ListActiveSalons(
	ctx context.Context,
) ([]models.Salon, error) {

	var salons []models.Salon
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&salons).Error

	if err != nil {
		return nil, err
	}
	return salons, nil
}

func (r *ScheduleGormRepository) ListActivePractitioners(
	ctx context.Context,
	salonID uint,
) ([]models.Practitioner, error) {

	var ps []models.Practitioner
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("id ASC").
		Find(&ps).Error

	if err != nil {
		return nil, err
	}
	return ps, nil
}

// --------------------------------------------------
// Bookings (read-only)
// --------------------------------------------------

func (r *ScheduleGormRepository) bookingQuery(
	ctx context.Context,
	scope domain.Scope,
	entityID uint,
	from time.Time,
	to time.Time,
) *gorm.DB {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = 'scheduled' AND start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC")

	if scope == domain.ScopeSalon {
		return q.Where("salon_id = ?", entityID)
	}
	return q.Where("practitioner_id = ?", entityID)
}

func (r *ScheduleGormRepository) ListConfirmedBookings(
	ctx context.Context,
	scope domain.Scope,
	entityID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.bookingQuery(ctx, scope, entityID, from, to).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ScheduleGormRepository) ListConfirmedBookingsForUpdate(
	ctx context.Context,
	scope domain.Scope,
	entityID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.bookingQuery(ctx, scope, entityID, from, to).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *ScheduleGormRepository) InTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
