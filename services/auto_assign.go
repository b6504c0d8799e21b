package services

import (
	"fmt"
	"log"
	"time"

	"conference-review-api/models"

	"github.com/google/uuid"
)

// Per-submission outcomes of a batch auto-assignment.
const (
	AutoAssignFull    = "full"
	AutoAssignPartial = "partial"
	AutoAssignFailed  = "failed"
)

// AutoAssignOutcome reports the batch result for one submission.
type AutoAssignOutcome struct {
	SubmissionID int    `json:"submission_id"`
	Outcome      string `json:"outcome"`
	Assigned     []int  `json:"assigned_reviewer_ids"`
	HeldBefore   int    `json:"held_before"`
	Message      string `json:"message"`
}

// AutoAssignReport aggregates a whole auto-assignment run.
type AutoAssignReport struct {
	RunID    string              `json:"run_id"`
	Full     int                 `json:"full"`
	Partial  int                 `json:"partial"`
	Failed   int                 `json:"failed"`
	Outcomes []AutoAssignOutcome `json:"outcomes"`
}

// AutoAssign suggests and assigns reviewers for each submission until the
// target reviewer count is reached, counting assignments already held. Each
// submission is an independent unit of work: one failure is recorded in its
// outcome row and never aborts the rest of the batch. With forceReassign,
// existing non-completed assignments are first cleared (marked declined) so
// the slate is rebuilt from scratch.
func (s *AssignmentService) AutoAssign(submissionIDs []int, targetReviewerCount int, forceReassign bool, triggeredBy int) (*AutoAssignReport, error) {
	if targetReviewerCount <= 0 {
		targetReviewerCount = 2
	}

	run := models.AutoAssignRun{
		RunID:       uuid.NewString(),
		TriggeredBy: triggeredBy,
		TargetCount: targetReviewerCount,
		Forced:      forceReassign,
		Submissions: len(submissionIDs),
		StartedAt:   time.Now().UTC(),
	}
	if err := s.db.Create(&run).Error; err != nil {
		return nil, fmt.Errorf("failed to record auto-assign run: %w", err)
	}

	report := AutoAssignReport{RunID: run.RunID}

	for _, submissionID := range submissionIDs {
		outcome := s.autoAssignOne(submissionID, targetReviewerCount, forceReassign, triggeredBy)
		report.Outcomes = append(report.Outcomes, outcome)
		switch outcome.Outcome {
		case AutoAssignFull:
			report.Full++
		case AutoAssignPartial:
			report.Partial++
		default:
			report.Failed++
		}
	}

	finished := time.Now().UTC()
	err := s.db.Model(&models.AutoAssignRun{}).
		Where("run_id = ?", run.RunID).
		Updates(map[string]interface{}{
			"full_count":    report.Full,
			"partial_count": report.Partial,
			"failed_count":  report.Failed,
			"finished_at":   finished,
		}).Error
	if err != nil {
		log.Printf("Warning: failed to finalize auto-assign run %s: %v", run.RunID, err)
	}

	return &report, nil
}

func (s *AssignmentService) autoAssignOne(submissionID, target int, force bool, triggeredBy int) AutoAssignOutcome {
	outcome := AutoAssignOutcome{SubmissionID: submissionID}

	if force {
		reason := models.DeclineReasonOther
		detail := "cleared by forced auto-assignment"
		err := s.db.Model(&models.ReviewAssignment{}).
			Where("submission_id = ? AND status IN ?", submissionID,
				[]string{models.AssignmentAssigned, models.AssignmentInProgress}).
			Updates(map[string]interface{}{
				"status":               models.AssignmentDeclined,
				"declined_at":          time.Now().UTC(),
				"decline_reason":       reason,
				"decline_reason_other": detail,
			}).Error
		if err != nil {
			outcome.Outcome = AutoAssignFailed
			outcome.Message = fmt.Sprintf("failed to clear existing assignments: %v", err)
			return outcome
		}
	}

	held, err := s.countNonDeclined(submissionID)
	if err != nil {
		outcome.Outcome = AutoAssignFailed
		outcome.Message = err.Error()
		return outcome
	}
	outcome.HeldBefore = held

	needed := target - held
	if needed <= 0 {
		outcome.Outcome = AutoAssignFull
		outcome.Message = fmt.Sprintf("already holds %d reviewer(s)", held)
		return outcome
	}

	suggestions, err := s.Suggest(submissionID, needed)
	if err != nil {
		outcome.Outcome = AutoAssignFailed
		outcome.Message = err.Error()
		return outcome
	}
	if len(suggestions.Suggestions) == 0 {
		outcome.Outcome = AutoAssignFailed
		outcome.Message = suggestions.Message
		return outcome
	}

	ids := make([]int, 0, len(suggestions.Suggestions))
	for _, c := range suggestions.Suggestions {
		ids = append(ids, c.ReviewerID)
	}

	assignResult, err := s.Assign(submissionID, ids, 21, triggeredBy)
	if err != nil {
		outcome.Outcome = AutoAssignFailed
		outcome.Message = err.Error()
		return outcome
	}

	for _, row := range assignResult.Outcomes {
		if row.Outcome == AssignOutcomeCreated {
			outcome.Assigned = append(outcome.Assigned, row.ReviewerID)
		}
	}

	switch {
	case len(outcome.Assigned) >= needed:
		outcome.Outcome = AutoAssignFull
		outcome.Message = fmt.Sprintf("%d reviewer(s) assigned", len(outcome.Assigned))
	case len(outcome.Assigned) > 0:
		outcome.Outcome = AutoAssignPartial
		outcome.Message = fmt.Sprintf("%d of %d new slot(s) filled", len(outcome.Assigned), needed)
	default:
		outcome.Outcome = AutoAssignFailed
		outcome.Message = "no eligible reviewer could be assigned"
	}
	return outcome
}

func (s *AssignmentService) countNonDeclined(submissionID int) (int, error) {
	var count int64
	err := s.db.Model(&models.ReviewAssignment{}).
		Where("submission_id = ? AND status <> ?", submissionID, models.AssignmentDeclined).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments for submission %d: %w", submissionID, err)
	}
	return int(count), nil
}
