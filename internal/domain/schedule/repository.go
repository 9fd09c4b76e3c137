package schedule

import (
	"context"
	"time"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

type Repository interface {
	// -------- Daily overrides --------
	GetOverride(
		ctx context.Context,
		scope Scope,
		entityID uint,
		date time.Time,
	) (*models.DailyOverride, error)

	ListOverrides(
		ctx context.Context,
		scope Scope,
		entityID uint,
		from time.Time,
		to time.Time,
	) ([]models.DailyOverride, error)

	BulkInsertOverrides(
		ctx context.Context,
		scope Scope,
		rows []models.DailyOverride,
	) error

	UpsertOverride(
		ctx context.Context,
		scope Scope,
		row *models.DailyOverride,
	) error

	// -------- Weekly templates --------
	GetWeeklyTemplate(
		ctx context.Context,
		scope Scope,
		entityID uint,
	) ([]models.TemplateDay, error)

	// -------- Directory --------
	GetPractitioner(
		ctx context.Context,
		id uint,
	) (*models.Practitioner, error)

	ListActiveSalons(
		ctx context.Context,
	) ([]models.Salon, error)

	ListActivePractitioners(
		ctx context.Context,
		salonID uint,
	) ([]models.Practitioner, error)

	// -------- Bookings (read-only) --------
	ListConfirmedBookings(
		ctx context.Context,
		scope Scope,
		entityID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	// ListConfirmedBookingsForUpdate is the locking variant used by the
	// schedule editor inside its transaction, so a booking committed after
	// the read cannot slip past the conflict check.
	ListConfirmedBookingsForUpdate(
		ctx context.Context,
		scope Scope,
		entityID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	// -------- Transactions --------
	// InTransaction runs fn against a repository bound to one transaction.
	// The schedule editor's booking read and override write go through here.
	InTransaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
