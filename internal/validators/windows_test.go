package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

func TestValidateWindows(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.TimeWindow
		wantErr bool
	}{
		{
			name:    "empty is valid",
			windows: nil,
		},
		{
			name:    "single window",
			windows: []models.TimeWindow{{Start: "09:00", End: "12:00"}},
		},
		{
			name: "ascending non-overlapping",
			windows: []models.TimeWindow{
				{Start: "09:00", End: "12:00"},
				{Start: "13:00", End: "18:00"},
			},
		},
		{
			name: "adjacent windows allowed",
			windows: []models.TimeWindow{
				{Start: "09:00", End: "12:00"},
				{Start: "12:00", End: "15:00"},
			},
		},
		{
			name:    "end before start",
			windows: []models.TimeWindow{{Start: "12:00", End: "09:00"}},
			wantErr: true,
		},
		{
			name:    "zero-length window",
			windows: []models.TimeWindow{{Start: "09:00", End: "09:00"}},
			wantErr: true,
		},
		{
			name: "overlapping windows",
			windows: []models.TimeWindow{
				{Start: "09:00", End: "12:00"},
				{Start: "11:00", End: "15:00"},
			},
			wantErr: true,
		},
		{
			name: "out of order",
			windows: []models.TimeWindow{
				{Start: "13:00", End: "18:00"},
				{Start: "09:00", End: "12:00"},
			},
			wantErr: true,
		},
		{
			name:    "malformed time",
			windows: []models.TimeWindow{{Start: "9am", End: "12:00"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindows(tt.windows)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
