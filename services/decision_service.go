package services

import (
	"fmt"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// DecisionResult reports a decision or reset operation.
type DecisionResult struct {
	SubmissionID int    `json:"submission_id"`
	Decision     string `json:"decision,omitempty"`
	OldStatus    string `json:"old_status"`
	NewStatus    string `json:"new_status"`
}

// DecisionService records final accept/reject/revise rulings and their
// notification bookkeeping.
type DecisionService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewDecisionService creates a DecisionService.
func NewDecisionService(db *gorm.DB, notifications *NotificationService) *DecisionService {
	return &DecisionService{db: db, notifications: notifications}
}

// CanDecide reports whether an admin may rule on the submission: it must be
// in review (or a submitted WIP) and carry no active decision. The number of
// completed reviews is deliberately not checked; ruling early is an
// editorial prerogative.
func CanDecide(submission *models.Submission) bool {
	if submission.DecisionMade() {
		return false
	}
	return submission.Status == models.StatusEnReview || submission.Status == models.StatusWipSoumis
}

// Decide records a final ruling. The decision bypasses the upload-triggered
// workflow edges: the status override is applied directly and the prior
// review state is recoverable through Reset. Any previous notification state
// is cleared so a fresh notification attempt is required.
func (s *DecisionService) Decide(submissionID int, decision string, adminID int, comments string) (*DecisionResult, error) {
	newStatus, err := DecisionStatus(decision)
	if err != nil {
		return nil, err
	}

	result := DecisionResult{SubmissionID: submissionID, Decision: decision}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		if err := tx.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Message: fmt.Sprintf("submission %d not found", submissionID)}
			}
			return fmt.Errorf("failed to load submission %d: %w", submissionID, err)
		}

		if !CanDecide(&submission) {
			if submission.DecisionMade() {
				return &PreconditionError{Message: fmt.Sprintf(
					"submission %d already carries a '%s' decision", submissionID, *submission.FinalDecision)}
			}
			return &PreconditionError{Message: fmt.Sprintf(
				"submission %d in status '%s' is not ready for a decision", submissionID, submission.Status)}
		}

		result.OldStatus = submission.Status
		result.NewStatus = newStatus

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":                        newStatus,
			"final_decision":                decision,
			"decision_date":                 now,
			"decision_by_id":                adminID,
			"decision_notification_sent":    false,
			"decision_notification_sent_at": nil,
			"decision_notification_error":   nil,
			"updated_at":                    now,
		}
		if comments != "" {
			updates["decision_comments"] = comments
		} else {
			updates["decision_comments"] = nil
		}

		if err := tx.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to record decision: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The notification attempt runs outside the transaction; its outcome is
	// recorded but never affects the recorded decision.
	s.NotifyDecision(submissionID)

	return &result, nil
}

// Reset cancels the active decision and restores the pre-decision review
// state, making the ruling fully reversible.
func (s *DecisionService) Reset(submissionID, adminID int) (*DecisionResult, error) {
	result := DecisionResult{SubmissionID: submissionID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		if err := tx.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Message: fmt.Sprintf("submission %d not found", submissionID)}
			}
			return fmt.Errorf("failed to load submission %d: %w", submissionID, err)
		}

		if !submission.DecisionMade() {
			return &PreconditionError{Message: fmt.Sprintf("submission %d has no decision to reset", submissionID)}
		}

		machine, err := MachineForKind(submission.Kind)
		if err != nil {
			return err
		}

		result.OldStatus = submission.Status
		result.NewStatus = machine.ReviewState()

		err = tx.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Updates(map[string]interface{}{
				"status":                        machine.ReviewState(),
				"final_decision":                nil,
				"decision_date":                 nil,
				"decision_by_id":                nil,
				"decision_comments":             nil,
				"decision_notification_sent":    false,
				"decision_notification_sent_at": nil,
				"decision_notification_error":   nil,
				"updated_at":                    time.Now().UTC(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to reset decision: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// NotifyDecision attempts the author notification for the active decision.
// At most one successful send is counted: a retry is permitted only while
// the decision is unsent or the previous attempt recorded an error.
func (s *DecisionService) NotifyDecision(submissionID int) error {
	var submission models.Submission
	if err := s.db.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Message: fmt.Sprintf("submission %d not found", submissionID)}
		}
		return fmt.Errorf("failed to load submission %d: %w", submissionID, err)
	}

	if !submission.DecisionMade() {
		return &PreconditionError{Message: fmt.Sprintf("submission %d has no decision to notify", submissionID)}
	}
	if submission.DecisionNotificationSent && submission.DecisionNotifyError == nil {
		return &PreconditionError{Message: fmt.Sprintf(
			"decision notification for submission %d was already sent", submissionID)}
	}

	recipients, err := s.notifications.AuthorEmails(submissionID)
	if err != nil {
		return err
	}

	subID := submissionID
	sendErr := s.notifications.Dispatch(models.EventDecisionMade, recipients,
		fmt.Sprintf("Decision on submission %d", submissionID),
		fmt.Sprintf("The committee ruled '%s' on your submission %q.", *submission.FinalDecision, submission.Title),
		&subID)

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"decision_notification_sent":    sendErr == nil,
		"decision_notification_sent_at": now,
		"decision_notification_error":   nil,
	}
	if sendErr != nil {
		updates["decision_notification_error"] = sendErr.Error()
	}
	if err := s.db.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to record notification state: %w", err)
	}

	return sendErr
}
