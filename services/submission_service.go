package services

import (
	"fmt"
	"time"

	"conference-review-api/models"
	"conference-review-api/thematique"

	"gorm.io/gorm"
)

// SubmissionService creates, reads and deletes submissions.
type SubmissionService struct {
	db    *gorm.DB
	vocab *thematique.Vocabulary
}

// NewSubmissionService creates a SubmissionService validating thematic codes
// against vocab.
func NewSubmissionService(db *gorm.DB, vocab *thematique.Vocabulary) *SubmissionService {
	return &SubmissionService{db: db, vocab: vocab}
}

// Create registers a new submission in the initial status of its workflow.
// The first author id is the principal author. Every thematic code must
// belong to the active vocabulary.
func (s *SubmissionService) Create(title, kind string, authorIDs []int, codes []string) (*models.Submission, error) {
	if title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if len(authorIDs) == 0 {
		return nil, &ValidationError{Message: "at least one author is required"}
	}

	machine, err := MachineForKind(kind)
	if err != nil {
		return nil, err
	}

	valid, invalid := s.vocab.Normalize(codes)
	if len(invalid) > 0 {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown thematic codes: %v", invalid)}
	}

	now := time.Now().UTC()
	submission := models.Submission{
		Title:            title,
		Kind:             kind,
		Status:           machine.Initial(),
		ThematiquesCodes: thematique.JoinCodes(valid),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, authorID := range authorIDs {
			var author models.User
			if err := tx.First(&author, "user_id = ? AND delete_at IS NULL", authorID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return &NotFoundError{Message: fmt.Sprintf("author %d not found", authorID)}
				}
				return fmt.Errorf("failed to load author %d: %w", authorID, err)
			}
		}

		if err := tx.Create(&submission).Error; err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}

		for order, authorID := range authorIDs {
			entry := models.SubmissionAuthor{
				SubmissionID: submission.SubmissionID,
				UserID:       authorID,
				AuthorOrder:  order,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to record author %d: %w", authorID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(submission.SubmissionID)
}

// Get loads a submission with its ordered author list.
func (s *SubmissionService) Get(submissionID int) (*models.Submission, error) {
	return loadSubmission(s.db, submissionID)
}

// SetThematiques replaces the submission's thematic codes, validating each
// against the active vocabulary.
func (s *SubmissionService) SetThematiques(submissionID int, codes []string) error {
	valid, invalid := s.vocab.Normalize(codes)
	if len(invalid) > 0 {
		return &ValidationError{Message: fmt.Sprintf("unknown thematic codes: %v", invalid)}
	}

	result := s.db.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(map[string]interface{}{
			"thematiques_codes": thematique.JoinCodes(valid),
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update thematic codes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Message: fmt.Sprintf("submission %d not found", submissionID)}
	}
	return nil
}

// Delete removes a submission and cascades to its assignments, reviews,
// files and author entries. Only explicit admin deletion destroys a
// submission.
func (s *SubmissionService) Delete(submissionID int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		if err := tx.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Message: fmt.Sprintf("submission %d not found", submissionID)}
			}
			return fmt.Errorf("failed to load submission %d: %w", submissionID, err)
		}

		for _, model := range []interface{}{
			&models.ReviewAssignment{}, &models.Review{},
			&models.SubmissionFile{}, &models.SubmissionAuthor{},
		} {
			if err := tx.Where("submission_id = ?", submissionID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to cascade delete for submission %d: %w", submissionID, err)
			}
		}

		if err := tx.Delete(&models.Submission{}, "submission_id = ?", submissionID).Error; err != nil {
			return fmt.Errorf("failed to delete submission %d: %w", submissionID, err)
		}
		return nil
	})
}
