package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

func fullWeekTemplate() []models.TemplateDay {
	days := make([]models.TemplateDay, 7)
	for wd := 0; wd < 7; wd++ {
		days[wd] = models.TemplateDay{
			Weekday: wd,
			Windows: []models.TimeWindow{{Start: "09:00", End: "18:00"}},
		}
	}
	// Sunday is a holiday in this template.
	days[0].IsHoliday = true
	days[0].Windows = nil
	return days
}

func TestResolveTemplateDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	template := fullWeekTemplate()

	t.Run("matches weekday in business timezone", func(t *testing.T) {
		// 2026-06-01 is a Monday.
		monday := time.Date(2026, 6, 1, 0, 0, 0, 0, loc)
		day, err := ResolveTemplateDay(template, monday, loc)
		require.NoError(t, err)
		assert.Equal(t, 1, day.Weekday)
		assert.False(t, day.IsHoliday)
	})

	t.Run("holiday entry resolves as holiday", func(t *testing.T) {
		sunday := time.Date(2026, 6, 7, 0, 0, 0, 0, loc)
		day, err := ResolveTemplateDay(template, sunday, loc)
		require.NoError(t, err)
		assert.True(t, day.IsHoliday)
	})

	t.Run("missing weekday is a configuration error", func(t *testing.T) {
		incomplete := template[:6] // drops Saturday
		saturday := time.Date(2026, 6, 6, 0, 0, 0, 0, loc)
		_, err := ResolveTemplateDay(incomplete, saturday, loc)
		require.Error(t, err)
		assert.IsType(t, ConfigurationError{}, err)
	})
}

func TestAnchorTemplateDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, loc)

	t.Run("anchors windows to the day", func(t *testing.T) {
		day := models.TemplateDay{Weekday: 1, Windows: []models.TimeWindow{
			{Start: "09:00", End: "12:00"},
			{Start: "13:00", End: "18:00"},
		}}

		intervals, err := AnchorTemplateDay(day, date, loc)
		require.NoError(t, err)
		require.Len(t, intervals, 2)
		assert.Equal(t, date.Add(9*time.Hour), intervals[0].Start)
		assert.Equal(t, date.Add(18*time.Hour), intervals[1].End)
	})

	t.Run("holiday anchors to nothing", func(t *testing.T) {
		day := models.TemplateDay{Weekday: 1, IsHoliday: true,
			Windows: []models.TimeWindow{{Start: "09:00", End: "18:00"}}}

		intervals, err := AnchorTemplateDay(day, date, loc)
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("malformed window is a configuration error", func(t *testing.T) {
		day := models.TemplateDay{Weekday: 1, Windows: []models.TimeWindow{{Start: "18:00", End: "09:00"}}}
		_, err := AnchorTemplateDay(day, date, loc)
		require.Error(t, err)
		assert.IsType(t, ConfigurationError{}, err)
	})
}
