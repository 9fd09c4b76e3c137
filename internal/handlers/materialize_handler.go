package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/domain/schedule"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httperr"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httpresp"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/middleware"
	ucschedule "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/usecase/schedule"
)

// MonthlyRunner triggers the current period's batch materialization.
type MonthlyRunner interface {
	RunNow(ctx context.Context) error
}

type MaterializeHandler struct {
	uc      *ucschedule.MaterializeSchedule
	monthly MonthlyRunner
}

func NewMaterializeHandler(uc *ucschedule.MaterializeSchedule, monthly MonthlyRunner) *MaterializeHandler {
	return &MaterializeHandler{uc: uc, monthly: monthly}
}

type MaterializeRequest struct {
	Scope       string `json:"scope" binding:"required,oneof=practitioner salon"`
	MonthsAhead int    `json:"months_ahead" binding:"omitempty,min=1,max=12"`
}

// Create seeds the forward schedule window for the caller's practitioner or
// salon. Invoked by account/salon creation flows right after the entity and
// its weekly template are persisted.
func (h *MaterializeHandler) Create(c *gin.Context) {
	var req MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	scope := domain.Scope(req.Scope)

	var entityID uint
	switch scope {
	case domain.ScopeSalon:
		if !requireOwner(c) {
			return
		}
		entityID = c.MustGet(middleware.ContextSalonID).(uint)
	default:
		entityID = c.MustGet(middleware.ContextPractitionerID).(uint)
	}

	written, err := h.uc.Execute(c.Request.Context(), ucschedule.MaterializeScheduleInput{
		Scope:       scope,
		EntityID:    entityID,
		MonthsAhead: req.MonthsAhead,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"days_written": written})
}

// RunMonthly forces the current period's batch run ahead of the hourly
// trigger, e.g. right after fixing a salon's template.
func (h *MaterializeHandler) RunMonthly(c *gin.Context) {
	if !requireOwner(c) {
		return
	}

	if err := h.monthly.RunNow(c.Request.Context()); err != nil {
		if httperr.IsBusiness(err, "period_already_claimed") {
			httperr.Conflict(c, "period_already_claimed", gin.H{
				"message": "this month's materialization already ran",
			})
			return
		}
		httperr.Internal(c, "materialization_failed", "monthly materialization failed")
		return
	}

	httpresp.OK(c, gin.H{"status": "completed"})
}
