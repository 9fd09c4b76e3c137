package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/audit"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/config"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/handlers"
	infraRepo "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/infra/repository"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/middleware"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/tasks"
	ucschedule "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	loc *time.Location,
	monthly *tasks.MonthlyMaterializer,
) {

	// ------------------------------
	// Infra singletons
	// ------------------------------
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ------------------------------
	// Use cases
	// ------------------------------
	availableSlotsUC := ucschedule.NewAvailableSlots(scheduleRepo, loc, cfg.SlotGranularity)
	materializeUC := ucschedule.NewMaterializeSchedule(scheduleRepo, loc)
	getDayUC := ucschedule.NewGetDaySchedule(scheduleRepo, loc)
	setDayUC := ucschedule.NewSetDaySchedule(scheduleRepo, auditDispatcher, loc, cfg.SlotGranularity)

	// ------------------------------
	// Handlers
	// ------------------------------
	availabilityHandler := handlers.NewAvailabilityHandler(db, availableSlotsUC, loc)
	dayScheduleHandler := handlers.NewDayScheduleHandler(getDayUC, setDayUC, loc)
	materializeHandler := handlers.NewMaterializeHandler(materializeUC, monthly)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// Public
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/availability", availabilityHandler.GetForSalon)
		}

		// ------------------------------
		// Private
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/schedule/:date", dayScheduleHandler.GetMine)
			secured.PUT("/me/schedule/:date", dayScheduleHandler.UpdateMine)

			secured.GET("/me/salon/schedule/:date", dayScheduleHandler.GetSalon)
			secured.PUT("/me/salon/schedule/:date", dayScheduleHandler.UpdateSalon)

			secured.POST("/me/schedule/materialize", materializeHandler.Create)
			secured.POST("/me/schedule/materialize/monthly", materializeHandler.RunMonthly)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
