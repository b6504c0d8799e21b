package services

import (
	"fmt"
	"time"

	"conference-review-api/models"
	"conference-review-api/thematique"

	"gorm.io/gorm"
)

// ReviewerWorkload is a reviewer with their derived counters. The counters
// are computed from the assignment table on every read so they can never
// drift from the rows they summarize.
type ReviewerWorkload struct {
	Reviewer       models.User `json:"reviewer"`
	ActiveCount    int         `json:"active_count"`
	CompletedCount int         `json:"completed_count"`
	SpecialtyCodes []string    `json:"specialty_codes"`
	AffiliationIDs []int       `json:"affiliation_ids"`
}

// ReviewerService answers directory queries over the reviewer population.
type ReviewerService struct {
	db    *gorm.DB
	vocab *thematique.Vocabulary
}

// NewReviewerService creates a ReviewerService using vocab to validate
// specialty codes at write time.
func NewReviewerService(db *gorm.DB, vocab *thematique.Vocabulary) *ReviewerService {
	return &ReviewerService{db: db, vocab: vocab}
}

// ActiveAssignmentCount counts the reviewer's assignments that still occupy
// them (assigned or in progress).
func ActiveAssignmentCount(db *gorm.DB, reviewerID int) (int, error) {
	var count int64
	err := db.Model(&models.ReviewAssignment{}).
		Where("reviewer_id = ? AND status IN ?", reviewerID,
			[]string{models.AssignmentAssigned, models.AssignmentInProgress}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active assignments for reviewer %d: %w", reviewerID, err)
	}
	return int(count), nil
}

// CompletedReviewCount counts the reviewer's completed assignments.
func CompletedReviewCount(db *gorm.DB, reviewerID int) (int, error) {
	var count int64
	err := db.Model(&models.ReviewAssignment{}).
		Where("reviewer_id = ? AND status = ?", reviewerID, models.AssignmentCompleted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed reviews for reviewer %d: %w", reviewerID, err)
	}
	return int(count), nil
}

// AffiliationIDs returns the user's affiliation id set.
func AffiliationIDs(db *gorm.DB, userID int) ([]int, error) {
	var ids []int
	err := db.Model(&models.UserAffiliation{}).
		Where("user_id = ?", userID).
		Pluck("affiliation_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliations for user %d: %w", userID, err)
	}
	return ids, nil
}

// List returns all eligible reviewers with their workload counters.
func (s *ReviewerService) List() ([]ReviewerWorkload, error) {
	var reviewers []models.User
	err := s.db.
		Where("is_reviewer = ? AND is_active = ? AND is_activated = ? AND delete_at IS NULL",
			true, true, true).
		Order("user_id ASC").
		Find(&reviewers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}

	out := make([]ReviewerWorkload, 0, len(reviewers))
	for _, r := range reviewers {
		active, err := ActiveAssignmentCount(s.db, r.UserID)
		if err != nil {
			return nil, err
		}
		completed, err := CompletedReviewCount(s.db, r.UserID)
		if err != nil {
			return nil, err
		}
		affiliations, err := AffiliationIDs(s.db, r.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, ReviewerWorkload{
			Reviewer:       r,
			ActiveCount:    active,
			CompletedCount: completed,
			SpecialtyCodes: thematique.SplitCodes(r.SpecialitesCodes),
			AffiliationIDs: affiliations,
		})
	}
	return out, nil
}

// SetSpecialties replaces a reviewer's specialty codes. Every code must
// belong to the active vocabulary.
func (s *ReviewerService) SetSpecialties(reviewerID int, codes []string) error {
	valid, invalid := s.vocab.Normalize(codes)
	if len(invalid) > 0 {
		return &ValidationError{Message: fmt.Sprintf("unknown thematic codes: %v", invalid)}
	}

	result := s.db.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", reviewerID).
		Updates(map[string]interface{}{
			"specialites_codes": thematique.JoinCodes(valid),
			"update_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update specialties for reviewer %d: %w", reviewerID, result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Message: fmt.Sprintf("reviewer %d not found", reviewerID)}
	}
	return nil
}
