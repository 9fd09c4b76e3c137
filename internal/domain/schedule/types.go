package schedule

import (
	"time"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

// ===============================
// Views
// ===============================

const (
	DaySourceOverride = "override"
	DaySourceTemplate = "template"
)

// DaySchedule is one resolved calendar day rendered back into business-local
// time-of-day windows for display.
type DaySchedule struct {
	Date     string              `json:"date"`
	IsDayOff bool                `json:"is_day_off"`
	Windows  []models.TimeWindow `json:"windows"`
	Source   string              `json:"source"`
}

// NewDaySchedule renders an override row as a local-time day view.
func NewDaySchedule(row *models.DailyOverride, loc *time.Location) DaySchedule {
	windows := make([]models.TimeWindow, 0, len(row.WorkingTime))
	for _, tr := range row.WorkingTime {
		windows = append(windows, models.TimeWindow{
			Start: tr.StartTime.In(loc).Format("15:04"),
			End:   tr.EndTime.In(loc).Format("15:04"),
		})
	}

	return DaySchedule{
		Date:     row.Date.In(loc).Format("2006-01-02"),
		IsDayOff: row.IsDayOff,
		Windows:  windows,
		Source:   DaySourceOverride,
	}
}
