package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/config"
	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.Practitioner{},
		&models.TemplateDay{},
		&models.Booking{},
		&models.TaskRun{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// One override table per scope, identical shape.
	for _, scope := range []domain.Scope{domain.ScopePractitioner, domain.ScopeSalon} {
		if err := db.Table(scope.OverrideTable()).AutoMigrate(&models.DailyOverride{}); err != nil {
			log.Fatal().Err(err).Str("table", scope.OverrideTable()).Msg("failed to migrate overrides")
		}
	}

	return db
}
