package services

import (
	"fmt"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// DocumentStore exposes the file-existence queries the workflow needs. File
// contents and storage locations live outside this API; only version
// metadata is consulted here.
type DocumentStore interface {
	// LatestVersion returns the highest stored version of fileType, or 0
	// when none exists.
	LatestVersion(submissionID int, fileType string) (int, error)
}

type gormDocumentStore struct {
	db *gorm.DB
}

// NewDocumentStore returns a DocumentStore reading the submission_files
// table through db.
func NewDocumentStore(db *gorm.DB) DocumentStore {
	return &gormDocumentStore{db: db}
}

func (s *gormDocumentStore) LatestVersion(submissionID int, fileType string) (int, error) {
	var version *int
	err := s.db.Model(&models.SubmissionFile{}).
		Where("submission_id = ? AND file_type = ?", submissionID, fileType).
		Select("MAX(version)").
		Scan(&version).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve latest file version for submission %d: %w", submissionID, err)
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}
