package models

import "time"

const (
	TaskRunStatusRunning = "running"
	TaskRunStatusDone    = "done"
	TaskRunStatusFailed  = "failed"
)

// TaskRun records one execution of a recurring background task. The
// cross-process claim lives in redis; this row is the operator-visible
// audit of what the claimed run actually did.
type TaskRun struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TaskName    string    `gorm:"size:50;not null;index" json:"task_name"`
	PeriodStart time.Time `gorm:"not null" json:"period_start"`
	Status      string    `gorm:"size:20;default:'running'" json:"status"`

	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`

	EntitiesProcessed int `json:"entities_processed"`
	EntitiesFailed    int `json:"entities_failed"`
}
