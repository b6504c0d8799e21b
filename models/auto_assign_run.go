package models

import "time"

// AutoAssignRun records one execution of the batch auto-assignment, keyed by
// a UUID so admins can correlate the run with per-submission outcomes.
type AutoAssignRun struct {
	RunID        string     `gorm:"primaryKey;column:run_id" json:"run_id"`
	TriggeredBy  int        `gorm:"column:triggered_by" json:"triggered_by"`
	TargetCount  int        `gorm:"column:target_count" json:"target_count"`
	Forced       bool       `gorm:"column:forced" json:"forced"`
	Submissions  int        `gorm:"column:submissions" json:"submissions"`
	FullCount    int        `gorm:"column:full_count" json:"full_count"`
	PartialCount int        `gorm:"column:partial_count" json:"partial_count"`
	FailedCount  int        `gorm:"column:failed_count" json:"failed_count"`
	StartedAt    time.Time  `gorm:"column:started_at" json:"started_at"`
	FinishedAt   *time.Time `gorm:"column:finished_at" json:"finished_at"`
}

// TableName specifies the table for AutoAssignRun.
func (AutoAssignRun) TableName() string { return "auto_assign_runs" }
