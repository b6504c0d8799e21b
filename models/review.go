package models

import "time"

// Reviewer recommendations.
const (
	RecommendationAccept = "accept"
	RecommendationRevise = "revise"
	RecommendationReject = "reject"
)

// Review holds the evaluative content produced for one assignment. It
// correlates 1:1 with the (submission, reviewer) pair of a completed
// assignment.
type Review struct {
	ReviewID     int `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID int `gorm:"column:submission_id" json:"submission_id"`
	ReviewerID   int `gorm:"column:reviewer_id" json:"reviewer_id"`

	Score                *int    `gorm:"column:score" json:"score"` // 0-10
	Recommendation       *string `gorm:"column:recommendation" json:"recommendation"`
	CommentsForAuthors   *string `gorm:"column:comments_for_authors" json:"comments_for_authors"`
	CommentsForCommittee *string `gorm:"column:comments_for_committee" json:"comments_for_committee"`
	RecommendBiotFourier bool    `gorm:"column:recommend_for_biot_fourier" json:"recommend_for_biot_fourier"`

	Completed   bool       `gorm:"column:completed" json:"completed"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for Review.
func (Review) TableName() string {
	return "reviews"
}

// ValidRecommendation reports whether r is a known recommendation value.
func ValidRecommendation(r string) bool {
	switch r {
	case RecommendationAccept, RecommendationRevise, RecommendationReject:
		return true
	}
	return false
}
