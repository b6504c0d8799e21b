package services

import (
	"fmt"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// StateMachine describes the editorial workflow of one submission kind.
// Each kind carries its own machine, selected once at creation; callers
// never branch on kind inside a shared transition function.
type StateMachine interface {
	// Initial returns the status given to a new submission.
	Initial() string
	// ReviewState returns the status a submission goes back to when a
	// decision is reset.
	ReviewState() string
	// CanUpload reports whether fileType may be uploaded in the given
	// status.
	CanUpload(status, fileType string) bool
	// NextAfterUpload returns the status that follows an upload of fileType
	// in the given status. Re-uploads map a status onto itself.
	NextAfterUpload(status, fileType string) (string, bool)
}

// uploadTable keys (current status, file type) to the next status.
type uploadTable map[string]map[string]string

func (t uploadTable) next(status, fileType string) (string, bool) {
	edges, ok := t[status]
	if !ok {
		return "", false
	}
	next, ok := edges[fileType]
	return next, ok
}

// articleMachine drives the full article workflow:
// resume_soumis -> article_soumis -> en_review -> {accepte, rejete,
// revision_demandee}; accepte -> poster_soumis. The en_review edge is
// triggered by assignment creation, the decision edges by explicit admin
// override; only the remaining edges are upload-triggered.
type articleMachine struct{}

var articleUploads = uploadTable{
	models.StatusResumeSoumis: {
		models.FileTypeResume:  models.StatusResumeSoumis,
		models.FileTypeArticle: models.StatusArticleSoumis,
	},
	models.StatusArticleSoumis: {
		models.FileTypeArticle: models.StatusArticleSoumis,
	},
	models.StatusAccepte: {
		models.FileTypePoster: models.StatusPosterSoumis,
	},
	models.StatusPosterSoumis: {
		models.FileTypePoster: models.StatusPosterSoumis,
	},
}

func (articleMachine) Initial() string     { return models.StatusResumeSoumis }
func (articleMachine) ReviewState() string { return models.StatusEnReview }

func (articleMachine) CanUpload(status, fileType string) bool {
	_, ok := articleUploads.next(status, fileType)
	return ok
}

func (articleMachine) NextAfterUpload(status, fileType string) (string, bool) {
	return articleUploads.next(status, fileType)
}

// wipMachine drives the work-in-progress workflow: wip_soumis ->
// (optional) poster_soumis. Decisions may be recorded directly from
// wip_soumis.
type wipMachine struct{}

var wipUploads = uploadTable{
	models.StatusWipSoumis: {
		models.FileTypeWip:    models.StatusWipSoumis,
		models.FileTypePoster: models.StatusPosterSoumis,
	},
	models.StatusPosterSoumis: {
		models.FileTypePoster: models.StatusPosterSoumis,
	},
}

func (wipMachine) Initial() string     { return models.StatusWipSoumis }
func (wipMachine) ReviewState() string { return models.StatusWipSoumis }

func (wipMachine) CanUpload(status, fileType string) bool {
	_, ok := wipUploads.next(status, fileType)
	return ok
}

func (wipMachine) NextAfterUpload(status, fileType string) (string, bool) {
	return wipUploads.next(status, fileType)
}

// MachineForKind returns the workflow machine of a submission kind.
func MachineForKind(kind string) (StateMachine, error) {
	switch kind {
	case models.KindArticle:
		return articleMachine{}, nil
	case models.KindWip:
		return wipMachine{}, nil
	}
	return nil, &ValidationError{Message: fmt.Sprintf("unknown submission kind '%s'", kind)}
}

// DecisionStatus maps an admin decision onto the status override edge.
func DecisionStatus(decision string) (string, error) {
	switch decision {
	case models.DecisionAccept:
		return models.StatusAccepte, nil
	case models.DecisionReject:
		return models.StatusRejete, nil
	case models.DecisionRevise:
		return models.StatusRevisionDemandee, nil
	}
	return "", &ValidationError{Message: fmt.Sprintf("invalid decision '%s': must be accept, reject or revise", decision)}
}

// FileUploadResult reports the outcome of registering one uploaded file.
type FileUploadResult struct {
	FileID      int    `json:"file_id"`
	Version     int    `json:"version"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	StatusMoved bool   `json:"-"`
}

// StatusService applies upload-triggered workflow edges and records file
// version metadata.
type StatusService struct {
	db *gorm.DB
}

// NewStatusService creates a StatusService backed by db.
func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// RegisterFileUpload records the metadata of an uploaded file and advances
// the submission status along the upload edge of its workflow. Re-uploading
// a file type already on record only increments the stored version.
func (s *StatusService) RegisterFileUpload(submissionID int, fileType, originalName string, fileSize int64, uploadedBy int) (*FileUploadResult, error) {
	if !models.ValidFileType(fileType) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown file type '%s'", fileType)}
	}

	var result FileUploadResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		if err := tx.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Message: fmt.Sprintf("submission %d not found", submissionID)}
			}
			return fmt.Errorf("failed to load submission %d: %w", submissionID, err)
		}

		machine, err := MachineForKind(submission.Kind)
		if err != nil {
			return err
		}

		if !machine.CanUpload(submission.Status, fileType) {
			return &PreconditionError{Message: fmt.Sprintf(
				"file type '%s' cannot be uploaded while submission %d is in status '%s'",
				fileType, submissionID, submission.Status)}
		}

		docs := NewDocumentStore(tx)
		version, err := docs.LatestVersion(submissionID, fileType)
		if err != nil {
			return err
		}

		file := models.SubmissionFile{
			SubmissionID: submissionID,
			FileType:     fileType,
			OriginalName: originalName,
			FileSize:     fileSize,
			Version:      version + 1,
			UploadedBy:   uploadedBy,
			UploadedAt:   time.Now().UTC(),
		}
		if err := tx.Create(&file).Error; err != nil {
			return fmt.Errorf("failed to record submission file: %w", err)
		}

		result.FileID = file.FileID
		result.Version = file.Version
		result.OldStatus = submission.Status
		result.NewStatus = submission.Status

		next, ok := machine.NextAfterUpload(submission.Status, fileType)
		if ok && next != submission.Status && version == 0 {
			updates := map[string]interface{}{
				"status":     next,
				"updated_at": time.Now().UTC(),
			}
			if err := tx.Model(&models.Submission{}).
				Where("submission_id = ?", submissionID).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update submission status: %w", err)
			}
			result.NewStatus = next
			result.StatusMoved = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
