package models

import "time"

// Submission kinds. The kind selects which workflow state machine applies and
// never changes after creation.
const (
	KindArticle = "article"
	KindWip     = "wip"
)

// Workflow statuses shared by the article and WIP machines.
const (
	StatusResumeSoumis     = "resume_soumis"
	StatusArticleSoumis    = "article_soumis"
	StatusEnReview         = "en_review"
	StatusRevisionDemandee = "revision_demandee"
	StatusAccepte          = "accepte"
	StatusRejete           = "rejete"
	StatusWipSoumis        = "wip_soumis"
	StatusPosterSoumis     = "poster_soumis"
)

// Final decisions recorded by an admin.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
	DecisionRevise = "revise"
)

// Submission represents a communication submitted to the conference.
type Submission struct {
	SubmissionID     int       `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	Title            string    `gorm:"column:title" json:"title"`
	Kind             string    `gorm:"column:kind" json:"kind"` // article|wip
	Status           string    `gorm:"column:status" json:"status"`
	ThematiquesCodes string    `gorm:"column:thematiques_codes" json:"thematiques_codes"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Decision fields. All nil/false until an admin rules on the submission.
	FinalDecision            *string    `gorm:"column:final_decision" json:"final_decision"`
	DecisionDate             *time.Time `gorm:"column:decision_date" json:"decision_date"`
	DecisionByID             *int       `gorm:"column:decision_by_id" json:"decision_by_id"`
	DecisionComments         *string    `gorm:"column:decision_comments" json:"decision_comments"`
	DecisionNotificationSent bool       `gorm:"column:decision_notification_sent" json:"decision_notification_sent"`
	DecisionNotifiedAt       *time.Time `gorm:"column:decision_notification_sent_at" json:"decision_notification_sent_at"`
	DecisionNotifyError      *string    `gorm:"column:decision_notification_error" json:"decision_notification_error"`

	Authors []SubmissionAuthor `gorm:"foreignKey:SubmissionID" json:"authors,omitempty"`
}

// TableName specifies the table name for Submission.
func (Submission) TableName() string {
	return "submissions"
}

// DecisionMade reports whether an active decision is recorded.
func (s *Submission) DecisionMade() bool {
	return s.FinalDecision != nil
}

// SubmissionAuthor is one entry of a submission's ordered author list.
// AuthorOrder 0 marks the principal author.
type SubmissionAuthor struct {
	SubmissionID int `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	UserID       int `gorm:"primaryKey;column:user_id" json:"user_id"`
	AuthorOrder  int `gorm:"column:author_order" json:"author_order"`
}

// TableName specifies the table for SubmissionAuthor.
func (SubmissionAuthor) TableName() string {
	return "submission_authors"
}
