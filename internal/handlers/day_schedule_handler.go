package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httperr"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httpresp"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/middleware"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	ucschedule "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/usecase/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/validators"
)

type DayScheduleHandler struct {
	getUC *ucschedule.GetDaySchedule
	setUC *ucschedule.SetDaySchedule
	loc   *time.Location
}

func NewDayScheduleHandler(
	getUC *ucschedule.GetDaySchedule,
	setUC *ucschedule.SetDaySchedule,
	loc *time.Location,
) *DayScheduleHandler {
	return &DayScheduleHandler{getUC: getUC, setUC: setUC, loc: loc}
}

type DayScheduleUpdateRequest struct {
	IsDayOff bool                `json:"is_day_off"`
	Windows  []models.TimeWindow `json:"windows"`
}

// --------------------------------------------------
// Practitioner scope (own schedule)
// --------------------------------------------------

func (h *DayScheduleHandler) GetMine(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextPractitionerID).(uint)
	h.get(c, domain.ScopePractitioner, practitionerID)
}

func (h *DayScheduleHandler) UpdateMine(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextPractitionerID).(uint)
	h.update(c, domain.ScopePractitioner, practitionerID)
}

// --------------------------------------------------
// Salon scope (owner only)
// --------------------------------------------------

func (h *DayScheduleHandler) GetSalon(c *gin.Context) {
	if !requireOwner(c) {
		return
	}
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	h.get(c, domain.ScopeSalon, salonID)
}

func (h *DayScheduleHandler) UpdateSalon(c *gin.Context) {
	if !requireOwner(c) {
		return
	}
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	h.update(c, domain.ScopeSalon, salonID)
}

// --------------------------------------------------
// Shared
// --------------------------------------------------

func (h *DayScheduleHandler) get(c *gin.Context, scope domain.Scope, entityID uint) {
	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	view, err := h.getUC.Execute(c.Request.Context(), ucschedule.GetDayScheduleInput{
		Scope:    scope,
		EntityID: entityID,
		Date:     date,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *DayScheduleHandler) update(c *gin.Context, scope domain.Scope, entityID uint) {
	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	var req DayScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !req.IsDayOff {
		if err := validators.ValidateWindows(req.Windows); err != nil {
			httperr.BadRequest(c, "invalid_windows", err.Error())
			return
		}
	}

	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextPractitionerID).(uint)

	view, err := h.setUC.Execute(c.Request.Context(), ucschedule.SetDayScheduleInput{
		Scope:    scope,
		EntityID: entityID,
		SalonID:  salonID,
		UserID:   &userID,
		Date:     date,
		IsDayOff: req.IsDayOff,
		Windows:  req.Windows,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *DayScheduleHandler) parseDate(c *gin.Context) (time.Time, bool) {
	date, err := time.ParseInLocation("2006-01-02", c.Param("date"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func requireOwner(c *gin.Context) bool {
	if role, _ := c.MustGet(middleware.ContextRole).(string); role != models.RoleOwner {
		httperr.Forbidden(c, "owner_only", "salon schedule requires owner role")
		return false
	}
	return true
}

// writeScheduleError maps engine errors onto HTTP responses: conflicts are
// user-facing with enough detail to render a message, the rest are internal.
func writeScheduleError(c *gin.Context, err error) {
	var conflict domain.ConflictError
	if errors.As(err, &conflict) {
		httperr.Conflict(c, "schedule_conflict", gin.H{
			"date":     conflict.Date.Format("2006-01-02"),
			"bookings": conflict.Bookings,
		})
		return
	}

	var integrity domain.DataIntegrityError
	var config domain.ConfigurationError
	if errors.As(err, &integrity) || errors.As(err, &config) {
		httperr.Internal(c, "schedule_data_error", err.Error())
		return
	}

	httperr.Internal(c, "schedule_failed", "failed to process schedule")
}
