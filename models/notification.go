package models

import "time"

// Notification event kinds emitted by the review engine.
const (
	EventReviewAssigned = "review_assigned"
	EventReviewDeclined = "review_declined"
	EventDecisionMade   = "decision_made"
	EventDecisionReset  = "decision_reset"
)

// Notification records one notification attempt made on behalf of the
// engine. The engine only tracks that an attempt occurred and whether it
// failed; delivery itself is the notifier's business.
type Notification struct {
	NotificationID      int        `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	Event               string     `gorm:"column:event" json:"event"`
	Recipients          string     `gorm:"column:recipients" json:"recipients"`
	Subject             string     `gorm:"column:subject" json:"subject"`
	Body                string     `gorm:"column:body" json:"body"`
	RelatedSubmissionID *int       `gorm:"column:related_submission_id" json:"related_submission_id,omitempty"`
	SentAt              time.Time  `gorm:"column:sent_at" json:"sent_at"`
	Error               *string    `gorm:"column:error" json:"error,omitempty"`
	CreateAt            time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt            *time.Time `gorm:"column:update_at" json:"-"`
}

// TableName specifies the table name for Notification.
func (Notification) TableName() string { return "notifications" }
