package models

import "time"

// TimeWindow is a time-of-day interval in the business timezone ("15:04").
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TemplateDay is one weekday entry of an entity's recurring weekly template.
// Exactly seven rows exist per owner: weekday 0 (Sunday) through 6 (Saturday).
type TemplateDay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerScope string `gorm:"size:20;not null;uniqueIndex:idx_template_owner_weekday" json:"owner_scope"`
	OwnerID    uint   `gorm:"not null;uniqueIndex:idx_template_owner_weekday" json:"owner_id"`
	Weekday    int    `gorm:"not null;uniqueIndex:idx_template_owner_weekday" json:"weekday"`

	IsHoliday bool         `json:"is_holiday"`
	Windows   []TimeWindow `gorm:"serializer:json" json:"windows"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
