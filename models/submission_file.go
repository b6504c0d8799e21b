package models

import "time"

// File types accepted on submissions. Which types are uploadable depends on
// the submission kind and current status.
const (
	FileTypeResume  = "resume"
	FileTypeArticle = "article"
	FileTypePoster  = "poster"
	FileTypeWip     = "wip"
)

// SubmissionFile records the metadata of one uploaded document version. The
// engine never touches file contents; storage lives outside this API.
type SubmissionFile struct {
	FileID       int       `gorm:"primaryKey;column:file_id" json:"file_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	FileType     string    `gorm:"column:file_type" json:"file_type"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	Version      int       `gorm:"column:version" json:"version"`
	UploadedBy   int       `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt   time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// TableName specifies the table name for SubmissionFile.
func (SubmissionFile) TableName() string {
	return "submission_files"
}

// ValidFileType reports whether t is a known submission file type.
func ValidFileType(t string) bool {
	switch t {
	case FileTypeResume, FileTypeArticle, FileTypePoster, FileTypeWip:
		return true
	}
	return false
}
