package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httperr"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httpresp"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
	ucschedule "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/usecase/schedule"
)

// maxAvailabilityRangeDays bounds how much slot computation one public
// request may ask for.
const maxAvailabilityRangeDays = 62

type AvailabilityHandler struct {
	db  *gorm.DB
	uc  *ucschedule.AvailableSlots
	loc *time.Location
}

func NewAvailabilityHandler(db *gorm.DB, uc *ucschedule.AvailableSlots, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, uc: uc, loc: loc}
}

type PractitionerAvailability struct {
	PractitionerID uint     `json:"practitioner_id"`
	Name           string   `json:"name"`
	Slots          []string `json:"slots"`
}

// GetForSalon returns open slot instants per practitioner of the salon
// identified by slug, over an inclusive date range.
func (h *AvailabilityHandler) GetForSalon(c *gin.Context) {
	var salon models.Salon
	if err := h.db.
		Where("slug = ? AND active = ?", c.Param("slug"), true).
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "salon not found")
		return
	}

	startDate, err := time.ParseInLocation("2006-01-02", c.Query("start_date"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "start_date must be YYYY-MM-DD")
		return
	}

	endDate, err := time.ParseInLocation("2006-01-02", c.Query("end_date"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "end_date must be YYYY-MM-DD")
		return
	}

	if endDate.Before(startDate) {
		httperr.BadRequest(c, "invalid_range", "end_date before start_date")
		return
	}
	if endDate.Sub(startDate) > maxAvailabilityRangeDays*24*time.Hour {
		httperr.BadRequest(c, "range_too_large", "date range too large")
		return
	}

	practitioners, err := h.resolvePractitioners(c.Query("practitioner_ids"), salon.ID)
	if err != nil {
		httperr.BadRequest(c, "invalid_practitioner_ids", err.Error())
		return
	}

	ids := make([]uint, 0, len(practitioners))
	for _, p := range practitioners {
		ids = append(ids, p.ID)
	}

	slots, err := h.uc.Execute(c.Request.Context(), ucschedule.AvailableSlotsInput{
		PractitionerIDs: ids,
		StartDate:       startDate,
		EndDate:         endDate,
	})
	if err != nil {
		httperr.Internal(c, "availability_failed", "failed to compute availability")
		return
	}

	out := make([]PractitionerAvailability, 0, len(practitioners))
	for _, p := range practitioners {
		entry := PractitionerAvailability{
			PractitionerID: p.ID,
			Name:           p.Name,
			Slots:          []string{},
		}
		for _, slot := range slots[p.ID] {
			entry.Slots = append(entry.Slots, slot.In(h.loc).Format("2006-01-02 15:04"))
		}
		out = append(out, entry)
	}

	httpresp.List(c, out)
}

func (h *AvailabilityHandler) resolvePractitioners(raw string, salonID uint) ([]models.Practitioner, error) {
	q := h.db.Where("salon_id = ? AND active = ?", salonID, true).Order("id ASC")

	if raw != "" {
		var ids []uint
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, err
			}
			ids = append(ids, uint(id))
		}
		q = q.Where("id IN ?", ids)
	}

	var practitioners []models.Practitioner
	if err := q.Find(&practitioners).Error; err != nil {
		return nil, err
	}
	return practitioners, nil
}
