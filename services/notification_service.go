package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"

	"gorm.io/gorm"
)

// Notifier delivers a notification attempt for an engine event. The engine
// records that the attempt happened and whether it failed; it never depends
// on the outcome for its own consistency.
type Notifier interface {
	Notify(event string, recipients []string, subject, body string) error
}

// EmailNotifier sends notifications through the configured SMTP transport.
type EmailNotifier struct{}

// Notify implements Notifier over config.SendMail.
func (EmailNotifier) Notify(event string, recipients []string, subject, body string) error {
	return config.SendMail(recipients, subject, body)
}

// NotificationService dispatches engine events through a Notifier and keeps
// an audit trail in the notifications table. Dispatch is fire-and-forget:
// transport failures are logged and recorded, never propagated into engine
// state.
type NotificationService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewNotificationService creates a NotificationService delivering through
// notifier.
func NewNotificationService(db *gorm.DB, notifier Notifier) *NotificationService {
	return &NotificationService{db: db, notifier: notifier}
}

// Dispatch sends one notification and records the attempt. It returns the
// transport error for callers that track delivery state (the decision
// engine's bookkeeping); most callers ignore it.
func (s *NotificationService) Dispatch(event string, recipients []string, subject, body string, submissionID *int) error {
	sendErr := s.notifier.Notify(event, recipients, subject, body)

	record := models.Notification{
		Event:               event,
		Recipients:          strings.Join(recipients, ","),
		Subject:             subject,
		Body:                body,
		RelatedSubmissionID: submissionID,
		SentAt:              time.Now().UTC(),
		CreateAt:            time.Now().UTC(),
	}
	if sendErr != nil {
		msg := sendErr.Error()
		record.Error = &msg
		log.Printf("Warning: notification '%s' failed: %v", event, sendErr)
	}

	if err := s.db.Create(&record).Error; err != nil {
		// The audit row is best-effort; a failed insert must not mask or
		// block the business operation.
		log.Printf("Warning: failed to record notification '%s': %v", event, err)
	}

	return sendErr
}

// AuthorEmails resolves the email addresses of a submission's authors in
// author order.
func (s *NotificationService) AuthorEmails(submissionID int) ([]string, error) {
	var emails []string
	err := s.db.Model(&models.SubmissionAuthor{}).
		Joins("JOIN users ON users.user_id = submission_authors.user_id").
		Where("submission_authors.submission_id = ?", submissionID).
		Order("submission_authors.author_order ASC").
		Pluck("users.email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author emails for submission %d: %w", submissionID, err)
	}
	return emails, nil
}

// AdminEmails resolves the addresses of active administrators.
func (s *NotificationService) AdminEmails() ([]string, error) {
	var emails []string
	err := s.db.Model(&models.User{}).
		Where("is_admin = ? AND is_active = ? AND delete_at IS NULL", true, true).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admin emails: %w", err)
	}
	return emails, nil
}
