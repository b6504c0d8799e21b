package services

import (
	"fmt"
	"time"

	"conference-review-api/models"
	"conference-review-api/thematique"

	"gorm.io/gorm"
)

// Assignment creation outcomes reported per reviewer.
const (
	AssignOutcomeCreated         = "created"
	AssignOutcomeAlreadyAssigned = "already_assigned"
	AssignOutcomeNotEligible     = "not_eligible"
)

// SuggestResult is the ranked suggestion list for one submission.
type SuggestResult struct {
	Suggestions    []Candidate `json:"suggestions"`
	TotalAvailable int         `json:"total_available"`
	Message        string      `json:"message"`
}

// AssignOutcome reports what happened for one requested reviewer.
type AssignOutcome struct {
	ReviewerID   int    `json:"reviewer_id"`
	Outcome      string `json:"outcome"`
	AssignmentID int    `json:"assignment_id,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

// AssignResult is the per-reviewer report of one Assign call.
type AssignResult struct {
	Outcomes     []AssignOutcome `json:"outcomes"`
	CreatedCount int             `json:"created_count"`
	NewStatus    string          `json:"new_status"`
}

// DeclineResult reports a decline operation.
type DeclineResult struct {
	AssignmentID    int  `json:"assignment_id"`
	AlreadyDeclined bool `json:"already_declined"`
}

// AssignmentService suggests, creates and manages reviewer assignments.
type AssignmentService struct {
	db            *gorm.DB
	vocab         *thematique.Vocabulary
	notifications *NotificationService
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(db *gorm.DB, vocab *thematique.Vocabulary, notifications *NotificationService) *AssignmentService {
	return &AssignmentService{db: db, vocab: vocab, notifications: notifications}
}

// loadSubmission fetches a submission with its ordered author list.
func loadSubmission(db *gorm.DB, submissionID int) (*models.Submission, error) {
	var submission models.Submission
	err := db.Preload("Authors", func(db *gorm.DB) *gorm.DB {
		return db.Order("author_order ASC")
	}).First(&submission, "submission_id = ?", submissionID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Message: fmt.Sprintf("submission %d not found", submissionID)}
		}
		return nil, fmt.Errorf("failed to load submission %d: %w", submissionID, err)
	}
	return &submission, nil
}

// nonDeclinedReviewerIDs returns the reviewers currently holding a
// non-declined assignment on the submission.
func nonDeclinedReviewerIDs(db *gorm.DB, submissionID int) (map[int]bool, error) {
	var ids []int
	err := db.Model(&models.ReviewAssignment{}).
		Where("submission_id = ? AND status <> ?", submissionID, models.AssignmentDeclined).
		Pluck("reviewer_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments for submission %d: %w", submissionID, err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func authorContext(db *gorm.DB, submission *models.Submission) (ids []int, affiliations map[int][]int, err error) {
	affiliations = make(map[int][]int, len(submission.Authors))
	for _, author := range submission.Authors {
		ids = append(ids, author.UserID)
		affs, err := AffiliationIDs(db, author.UserID)
		if err != nil {
			return nil, nil, err
		}
		affiliations[author.UserID] = affs
	}
	return ids, affiliations, nil
}

func overlap(submissionCodes, reviewerCodes []string) []string {
	set := make(map[string]bool, len(submissionCodes))
	for _, c := range submissionCodes {
		set[c] = true
	}
	var common []string
	for _, c := range reviewerCodes {
		if set[c] {
			common = append(common, c)
		}
	}
	return common
}

// Suggest ranks candidate reviewers for a submission. It is a pure read:
// nothing is written and an empty candidate pool is an answer, not an error.
func (s *AssignmentService) Suggest(submissionID, n int) (*SuggestResult, error) {
	if n <= 0 {
		n = 2
	}

	submission, err := loadSubmission(s.db, submissionID)
	if err != nil {
		return nil, err
	}

	codes := thematique.SplitCodes(submission.ThematiquesCodes)
	if len(codes) == 0 {
		return &SuggestResult{Message: "submission has no thematic codes; tag it before requesting suggestions"}, nil
	}

	assigned, err := nonDeclinedReviewerIDs(s.db, submissionID)
	if err != nil {
		return nil, err
	}

	authorIDs, authorAffiliations, err := authorContext(s.db, submission)
	if err != nil {
		return nil, err
	}

	var reviewers []models.User
	err = s.db.
		Where("is_reviewer = ? AND is_active = ? AND is_activated = ? AND delete_at IS NULL",
			true, true, true).
		Find(&reviewers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewer pool: %w", err)
	}

	var conflictFree, conflicted []Candidate
	for _, reviewer := range reviewers {
		specialties := thematique.SplitCodes(reviewer.SpecialitesCodes)
		common := overlap(codes, specialties)
		if len(common) == 0 {
			continue
		}
		if assigned[reviewer.UserID] {
			continue
		}

		reviewerAffs, err := AffiliationIDs(s.db, reviewer.UserID)
		if err != nil {
			return nil, err
		}
		check := DetectConflict(authorIDs, authorAffiliations, reviewer.UserID, reviewerAffs)
		if !check.Eligible {
			continue
		}

		active, err := ActiveAssignmentCount(s.db, reviewer.UserID)
		if err != nil {
			return nil, err
		}
		completed, err := CompletedReviewCount(s.db, reviewer.UserID)
		if err != nil {
			return nil, err
		}

		candidate := Candidate{
			ReviewerID:     reviewer.UserID,
			FullName:       reviewer.FullName(),
			Email:          reviewer.Email,
			CommonThemes:   common,
			RelevanceScore: RelevanceScore(len(common), len(specialties), active, completed),
			ActiveCount:    active,
			Conflict:       check,
		}
		if check.Conflict {
			conflicted = append(conflicted, candidate)
		} else {
			conflictFree = append(conflictFree, candidate)
		}
	}

	SortCandidates(conflictFree)
	SortCandidates(conflicted)

	total := len(conflictFree) + len(conflicted)
	if total == 0 {
		return &SuggestResult{Message: "no eligible reviewer shares a thematic code with this submission"}, nil
	}

	suggestions := make([]Candidate, 0, n)
	for _, c := range conflictFree {
		if len(suggestions) == n {
			break
		}
		suggestions = append(suggestions, c)
	}
	// Backfill from the conflicted pool only when conflict-free candidates
	// are insufficient.
	for _, c := range conflicted {
		if len(suggestions) == n {
			break
		}
		suggestions = append(suggestions, c)
	}

	message := fmt.Sprintf("%d reviewer(s) suggested", len(suggestions))
	if total < n {
		message = fmt.Sprintf("only %d reviewer(s) available, %d requested", total, n)
	}

	return &SuggestResult{
		Suggestions:    suggestions,
		TotalAvailable: total,
		Message:        message,
	}, nil
}

// Assign creates assignments for the given reviewers. Reviewers already
// holding a non-declined assignment are reported as already assigned, not
// failed, so repeating the call with the same set is a no-op. The uniqueness
// condition is re-checked inside the transaction that performs the insert.
func (s *AssignmentService) Assign(submissionID int, reviewerIDs []int, dueInDays int, assignedBy int) (*AssignResult, error) {
	if dueInDays <= 0 {
		dueInDays = 21
	}

	result := AssignResult{}
	var notifyEmails []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		submission, err := loadSubmission(tx, submissionID)
		if err != nil {
			return err
		}

		authorIDs, authorAffiliations, err := authorContext(tx, submission)
		if err != nil {
			return err
		}

		dueDate := time.Now().UTC().AddDate(0, 0, dueInDays)

		for _, reviewerID := range reviewerIDs {
			var reviewer models.User
			if err := tx.First(&reviewer, "user_id = ?", reviewerID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return &NotFoundError{Message: fmt.Sprintf("reviewer %d not found", reviewerID)}
				}
				return fmt.Errorf("failed to load reviewer %d: %w", reviewerID, err)
			}

			// Re-validate inside the transaction: the suggest/assign gap must
			// not produce a second non-declined row for the pair.
			var existing int64
			err := tx.Model(&models.ReviewAssignment{}).
				Where("submission_id = ? AND reviewer_id = ? AND status <> ?",
					submissionID, reviewerID, models.AssignmentDeclined).
				Count(&existing).Error
			if err != nil {
				return fmt.Errorf("failed to check existing assignment: %w", err)
			}
			if existing > 0 {
				result.Outcomes = append(result.Outcomes, AssignOutcome{
					ReviewerID: reviewerID,
					Outcome:    AssignOutcomeAlreadyAssigned,
					Detail:     "reviewer already holds an assignment on this submission",
				})
				continue
			}

			reviewerAffs, err := AffiliationIDs(tx, reviewerID)
			if err != nil {
				return err
			}
			check := DetectConflict(authorIDs, authorAffiliations, reviewerID, reviewerAffs)
			if !check.Eligible || !reviewer.CanReview() {
				detail := "reviewer is not eligible"
				if check.Reason != nil {
					detail = *check.Reason
				}
				result.Outcomes = append(result.Outcomes, AssignOutcome{
					ReviewerID: reviewerID,
					Outcome:    AssignOutcomeNotEligible,
					Detail:     detail,
				})
				continue
			}

			assignment := models.ReviewAssignment{
				SubmissionID:     submissionID,
				ReviewerID:       reviewerID,
				Status:           models.AssignmentAssigned,
				AssignedAt:       time.Now().UTC(),
				AssignedByID:     &assignedBy,
				DueDate:          &dueDate,
				AutoSuggested:    true,
				ConflictDetected: check.Conflict,
				ConflictReason:   check.Reason,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return fmt.Errorf("failed to create assignment: %w", err)
			}

			result.Outcomes = append(result.Outcomes, AssignOutcome{
				ReviewerID:   reviewerID,
				Outcome:      AssignOutcomeCreated,
				AssignmentID: assignment.AssignmentID,
			})
			result.CreatedCount++
			notifyEmails = append(notifyEmails, reviewer.Email)
		}

		result.NewStatus = submission.Status
		if result.CreatedCount > 0 && submission.Kind == models.KindArticle &&
			!submission.DecisionMade() && submission.Status != models.StatusEnReview {
			err := tx.Model(&models.Submission{}).
				Where("submission_id = ?", submissionID).
				Updates(map[string]interface{}{
					"status":     models.StatusEnReview,
					"updated_at": time.Now().UTC(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to move submission to review: %w", err)
			}
			result.NewStatus = models.StatusEnReview
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notification is decoupled from the transaction: a slow or failing mail
	// transport never blocks the assignment.
	for _, email := range notifyEmails {
		subID := submissionID
		s.notifications.Dispatch(models.EventReviewAssigned, []string{email},
			"New review assignment",
			fmt.Sprintf("You have been assigned a review for submission %d.", submissionID),
			&subID)
	}

	return &result, nil
}

// Decline marks an assignment declined. Completed assignments cannot be
// declined; an already-declined assignment is reported as such without
// error so retries stay safe. Decline never creates a replacement
// assignment: reassignment is an explicit Assign call.
func (s *AssignmentService) Decline(assignmentID int, reason, otherReason string) (*DeclineResult, error) {
	if !models.ValidDeclineReason(reason) {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid decline reason '%s'", reason)}
	}
	if reason == models.DeclineReasonOther && otherReason == "" {
		return nil, &ValidationError{Message: "decline reason 'other' requires an explanation"}
	}

	result := DeclineResult{AssignmentID: assignmentID}
	var submissionID int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.ReviewAssignment
		if err := tx.First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Message: fmt.Sprintf("assignment %d not found", assignmentID)}
			}
			return fmt.Errorf("failed to load assignment %d: %w", assignmentID, err)
		}

		if assignment.Status == models.AssignmentCompleted {
			return &PreconditionError{Message: "a completed review can no longer be declined"}
		}
		if assignment.Status == models.AssignmentDeclined {
			result.AlreadyDeclined = true
			return nil
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":         models.AssignmentDeclined,
			"declined_at":    now,
			"decline_reason": reason,
		}
		if reason == models.DeclineReasonOther {
			updates["decline_reason_other"] = otherReason
		}
		if err := tx.Model(&models.ReviewAssignment{}).
			Where("assignment_id = ?", assignmentID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to decline assignment %d: %w", assignmentID, err)
		}

		submissionID = assignment.SubmissionID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyDeclined {
		if admins, adminErr := s.notifications.AdminEmails(); adminErr == nil {
			s.notifications.Dispatch(models.EventReviewDeclined, admins,
				"Review assignment declined",
				fmt.Sprintf("Assignment %d on submission %d was declined (%s).", assignmentID, submissionID, reason),
				&submissionID)
		}
	}

	return &result, nil
}
