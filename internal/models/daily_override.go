package models

import "time"

// TimeRange is an absolute interval anchored to one concrete calendar day.
type TimeRange struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// DailyOverride is a persisted decision for one calendar day that supersedes
// the weekly template. Date is the business-timezone midnight stored in UTC.
// Once written the row is authoritative for that day; later template changes
// never touch it. Stored in two identically shaped tables
// (practitioner_day_overrides, salon_day_overrides) selected by scope.
type DailyOverride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EntityID uint      `gorm:"not null;uniqueIndex:idx_override_entity_date" json:"entity_id"`
	Date     time.Time `gorm:"not null;uniqueIndex:idx_override_entity_date" json:"date"`

	IsDayOff    bool        `json:"is_day_off"`
	WorkingTime []TimeRange `gorm:"serializer:json" json:"working_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
