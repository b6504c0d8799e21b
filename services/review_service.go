package services

import (
	"fmt"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// ReviewContent is the evaluative payload a reviewer submits.
type ReviewContent struct {
	Score                int    `json:"score"` // 0-10
	Recommendation       string `json:"recommendation"`
	CommentsForAuthors   string `json:"comments_for_authors"`
	CommentsForCommittee string `json:"comments_for_committee"`
	RecommendBiotFourier bool   `json:"recommend_for_biot_fourier"`
}

// ReviewService manages the review content attached to assignments.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a ReviewService.
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func loadAssignmentForReviewer(tx *gorm.DB, assignmentID, reviewerID int) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	if err := tx.First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Message: fmt.Sprintf("assignment %d not found", assignmentID)}
		}
		return nil, fmt.Errorf("failed to load assignment %d: %w", assignmentID, err)
	}
	if assignment.ReviewerID != reviewerID {
		return nil, &PreconditionError{Message: fmt.Sprintf(
			"assignment %d does not belong to reviewer %d", assignmentID, reviewerID)}
	}
	return &assignment, nil
}

// Start moves an assignment to in_progress and returns its review row,
// creating the row on first access. Starting an already started review is a
// no-op returning the existing row.
func (s *ReviewService) Start(assignmentID, reviewerID int) (*models.Review, error) {
	var review models.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		assignment, err := loadAssignmentForReviewer(tx, assignmentID, reviewerID)
		if err != nil {
			return err
		}

		switch assignment.Status {
		case models.AssignmentDeclined:
			return &PreconditionError{Message: "a declined assignment cannot be started"}
		case models.AssignmentCompleted:
			return &PreconditionError{Message: "the review is already completed"}
		}

		err = tx.Where("submission_id = ? AND reviewer_id = ?",
			assignment.SubmissionID, assignment.ReviewerID).First(&review).Error
		if err == gorm.ErrRecordNotFound {
			review = models.Review{
				SubmissionID: assignment.SubmissionID,
				ReviewerID:   assignment.ReviewerID,
				CreatedAt:    time.Now().UTC(),
			}
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to load review: %w", err)
		}

		if assignment.Status == models.AssignmentAssigned {
			err := tx.Model(&models.ReviewAssignment{}).
				Where("assignment_id = ?", assignmentID).
				Update("status", models.AssignmentInProgress).Error
			if err != nil {
				return fmt.Errorf("failed to start assignment %d: %w", assignmentID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// Complete stores the review content and closes the assignment. A declined
// assignment can never be completed.
func (s *ReviewService) Complete(assignmentID, reviewerID int, content ReviewContent) (*models.Review, error) {
	if content.Score < 0 || content.Score > 10 {
		return nil, &ValidationError{Message: fmt.Sprintf("score %d out of range 0-10", content.Score)}
	}
	if !models.ValidRecommendation(content.Recommendation) {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid recommendation '%s'", content.Recommendation)}
	}

	var review models.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		assignment, err := loadAssignmentForReviewer(tx, assignmentID, reviewerID)
		if err != nil {
			return err
		}

		switch assignment.Status {
		case models.AssignmentDeclined:
			return &PreconditionError{Message: "a declined assignment cannot be completed"}
		case models.AssignmentCompleted:
			return &PreconditionError{Message: "the review is already completed"}
		}

		err = tx.Where("submission_id = ? AND reviewer_id = ?",
			assignment.SubmissionID, assignment.ReviewerID).First(&review).Error
		if err == gorm.ErrRecordNotFound {
			review = models.Review{
				SubmissionID: assignment.SubmissionID,
				ReviewerID:   assignment.ReviewerID,
				CreatedAt:    time.Now().UTC(),
			}
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to load review: %w", err)
		}

		now := time.Now().UTC()
		reviewUpdates := map[string]interface{}{
			"score":                      content.Score,
			"recommendation":             content.Recommendation,
			"comments_for_authors":       content.CommentsForAuthors,
			"comments_for_committee":     content.CommentsForCommittee,
			"recommend_for_biot_fourier": content.RecommendBiotFourier,
			"completed":                  true,
			"submitted_at":               now,
		}
		if err := tx.Model(&models.Review{}).
			Where("review_id = ?", review.ReviewID).
			Updates(reviewUpdates).Error; err != nil {
			return fmt.Errorf("failed to store review content: %w", err)
		}

		err = tx.Model(&models.ReviewAssignment{}).
			Where("assignment_id = ?", assignmentID).
			Updates(map[string]interface{}{
				"status":       models.AssignmentCompleted,
				"completed_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to complete assignment %d: %w", assignmentID, err)
		}

		return tx.Where("review_id = ?", review.ReviewID).First(&review).Error
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}
