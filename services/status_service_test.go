package services

import (
	"testing"

	"conference-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleUploadEdges(t *testing.T) {
	m := articleMachine{}

	cases := []struct {
		status   string
		fileType string
		next     string
		ok       bool
	}{
		{models.StatusResumeSoumis, models.FileTypeResume, models.StatusResumeSoumis, true},
		{models.StatusResumeSoumis, models.FileTypeArticle, models.StatusArticleSoumis, true},
		{models.StatusResumeSoumis, models.FileTypePoster, "", false},
		{models.StatusArticleSoumis, models.FileTypeArticle, models.StatusArticleSoumis, true},
		{models.StatusArticleSoumis, models.FileTypeResume, "", false},
		{models.StatusEnReview, models.FileTypeArticle, "", false},
		{models.StatusAccepte, models.FileTypePoster, models.StatusPosterSoumis, true},
		{models.StatusPosterSoumis, models.FileTypePoster, models.StatusPosterSoumis, true},
		{models.StatusRejete, models.FileTypePoster, "", false},
	}
	for _, c := range cases {
		next, ok := m.NextAfterUpload(c.status, c.fileType)
		assert.Equal(t, c.ok, ok, "%s + %s", c.status, c.fileType)
		assert.Equal(t, c.next, next, "%s + %s", c.status, c.fileType)
		assert.Equal(t, c.ok, m.CanUpload(c.status, c.fileType))
	}
}

func TestWipUploadEdges(t *testing.T) {
	m := wipMachine{}

	next, ok := m.NextAfterUpload(models.StatusWipSoumis, models.FileTypeWip)
	require.True(t, ok)
	assert.Equal(t, models.StatusWipSoumis, next)

	next, ok = m.NextAfterUpload(models.StatusWipSoumis, models.FileTypePoster)
	require.True(t, ok)
	assert.Equal(t, models.StatusPosterSoumis, next)

	_, ok = m.NextAfterUpload(models.StatusWipSoumis, models.FileTypeArticle)
	assert.False(t, ok)
}

func TestMachineForKind(t *testing.T) {
	m, err := MachineForKind(models.KindArticle)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResumeSoumis, m.Initial())
	assert.Equal(t, models.StatusEnReview, m.ReviewState())

	m, err = MachineForKind(models.KindWip)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWipSoumis, m.Initial())
	assert.Equal(t, models.StatusWipSoumis, m.ReviewState())

	_, err = MachineForKind("thesis")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestDecisionStatus(t *testing.T) {
	for decision, want := range map[string]string{
		models.DecisionAccept: models.StatusAccepte,
		models.DecisionReject: models.StatusRejete,
		models.DecisionRevise: models.StatusRevisionDemandee,
	} {
		got, err := DecisionStatus(decision)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := DecisionStatus("withdraw")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestRegisterFileUploadAdvancesStatus(t *testing.T) {
	env := setupTestEnv(t)
	author := env.newUser(t, "author@conf.org", nil)
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"}, author.UserID)

	result, err := env.statuses.RegisterFileUpload(
		submission.SubmissionID, models.FileTypeArticle, "paper.pdf", 120_000, author.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Version)
	assert.Equal(t, models.StatusResumeSoumis, result.OldStatus)
	assert.Equal(t, models.StatusArticleSoumis, result.NewStatus)
	assert.True(t, result.StatusMoved)

	stored, err := env.submissions.Get(submission.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArticleSoumis, stored.Status)
}

func TestReuploadBumpsVersionWithoutMoving(t *testing.T) {
	env := setupTestEnv(t)
	author := env.newUser(t, "author@conf.org", nil)
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"}, author.UserID)

	_, err := env.statuses.RegisterFileUpload(
		submission.SubmissionID, models.FileTypeResume, "abstract.pdf", 40_000, author.UserID)
	require.NoError(t, err)

	// An abstract was already on record at creation time conceptually; the
	// second upload of the same file type only bumps the version.
	result, err := env.statuses.RegisterFileUpload(
		submission.SubmissionID, models.FileTypeResume, "abstract-v2.pdf", 41_000, author.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Version)
	assert.False(t, result.StatusMoved)
	assert.Equal(t, models.StatusResumeSoumis, result.NewStatus)
}

func TestRegisterFileUploadRejectsOffWorkflowFiles(t *testing.T) {
	env := setupTestEnv(t)
	author := env.newUser(t, "author@conf.org", nil)
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"}, author.UserID)

	_, err := env.statuses.RegisterFileUpload(
		submission.SubmissionID, models.FileTypePoster, "poster.pdf", 90_000, author.UserID)
	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)

	_, err = env.statuses.RegisterFileUpload(
		submission.SubmissionID, "slides", "slides.pdf", 90_000, author.UserID)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestPosterUploadAfterAcceptance(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.newUser(t, "chair@conf.org", func(u *models.User) { u.IsAdmin = true })
	reviewer := env.newReviewer(t, "panel@conf.org", []string{"COND"})
	author := env.newUser(t, "author@conf.org", nil)
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"}, author.UserID)

	_, err := env.statuses.RegisterFileUpload(
		submission.SubmissionID, models.FileTypeArticle, "paper.pdf", 120_000, author.UserID)
	require.NoError(t, err)
	_, err = env.assignments.Assign(submission.SubmissionID, []int{reviewer.UserID}, 21, admin.UserID)
	require.NoError(t, err)
	_, err = env.decisions.Decide(submission.SubmissionID, models.DecisionAccept, admin.UserID, "")
	require.NoError(t, err)

	result, err := env.statuses.RegisterFileUpload(
		submission.SubmissionID, models.FileTypePoster, "poster.pdf", 80_000, author.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPosterSoumis, result.NewStatus)
	assert.True(t, result.StatusMoved)
}
