package models

import "time"

// Assignment statuses.
const (
	AssignmentAssigned   = "assigned"
	AssignmentInProgress = "in_progress"
	AssignmentCompleted  = "completed"
	AssignmentDeclined   = "declined"
)

// Decline reasons a reviewer may give. DeclineReasonOther requires free text.
const (
	DeclineReasonConflict    = "conflict"
	DeclineReasonWorkload    = "workload"
	DeclineReasonExpertise   = "expertise"
	DeclineReasonUnavailable = "unavailable"
	DeclineReasonOther       = "other"
)

// ReviewAssignment records that a reviewer is responsible for reviewing a
// submission. At most one non-declined row may exist per
// (submission, reviewer) pair.
type ReviewAssignment struct {
	AssignmentID int       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	ReviewerID   int       `gorm:"column:reviewer_id" json:"reviewer_id"`
	Status       string    `gorm:"column:status" json:"status"`
	AssignedAt   time.Time `gorm:"column:assigned_at" json:"assigned_at"`
	AssignedByID *int      `gorm:"column:assigned_by_id" json:"assigned_by_id"`

	DueDate     *time.Time `gorm:"column:due_date" json:"due_date"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`

	AutoSuggested    bool    `gorm:"column:auto_suggested" json:"auto_suggested"`
	ConflictDetected bool    `gorm:"column:conflict_detected" json:"conflict_detected"`
	ConflictReason   *string `gorm:"column:conflict_reason" json:"conflict_reason"`

	DeclinedAt         *time.Time `gorm:"column:declined_at" json:"declined_at"`
	DeclineReason      *string    `gorm:"column:decline_reason" json:"decline_reason"`
	DeclineReasonOther *string    `gorm:"column:decline_reason_other" json:"decline_reason_other"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for ReviewAssignment.
func (ReviewAssignment) TableName() string {
	return "review_assignments"
}

// IsOverdue reports whether the review is past its due date.
func (a *ReviewAssignment) IsOverdue(now time.Time) bool {
	if a.DueDate == nil || a.Status == AssignmentCompleted || a.Status == AssignmentDeclined {
		return false
	}
	return now.After(*a.DueDate)
}

// CountsTowardWorkload reports whether the assignment still occupies the
// reviewer.
func (a *ReviewAssignment) CountsTowardWorkload() bool {
	return a.Status == AssignmentAssigned || a.Status == AssignmentInProgress
}

// ValidDeclineReason reports whether reason belongs to the decline whitelist.
func ValidDeclineReason(reason string) bool {
	switch reason {
	case DeclineReasonConflict, DeclineReasonWorkload, DeclineReasonExpertise,
		DeclineReasonUnavailable, DeclineReasonOther:
		return true
	}
	return false
}
