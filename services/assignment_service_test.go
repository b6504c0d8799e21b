package services

import (
	"testing"

	"conference-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestRanksByRelevance(t *testing.T) {
	env := setupTestEnv(t)

	author := env.newUser(t, "author@conf.org", nil)
	submission := env.newSubmission(t, models.KindArticle, []string{"COND", "SIMUL"}, author.UserID)

	// Reviewer A: two overlapping themes, broad expertise, no workload.
	a := env.newReviewer(t, "a@conf.org", []string{"COND", "SIMUL", "BIO"})
	// Reviewer B: one overlapping theme, three active assignments.
	b := env.newReviewer(t, "b@conf.org", []string{"COND"})
	env.addWorkload(t, b.UserID, 3, 0)

	result, err := env.assignments.Suggest(submission.SubmissionID, 2)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, 2, result.TotalAvailable)

	assert.Equal(t, a.UserID, result.Suggestions[0].ReviewerID)
	assert.Equal(t, 59, result.Suggestions[0].RelevanceScore)
	assert.Equal(t, b.UserID, result.Suggestions[1].ReviewerID)
	assert.Equal(t, 19, result.Suggestions[1].RelevanceScore)

	top, err := env.assignments.Suggest(submission.SubmissionID, 1)
	require.NoError(t, err)
	require.Len(t, top.Suggestions, 1)
	assert.Equal(t, a.UserID, top.Suggestions[0].ReviewerID)
}

func TestSuggestExcludesAuthors(t *testing.T) {
	env := setupTestEnv(t)

	// The co-author is also a perfectly matching reviewer.
	coauthor := env.newReviewer(t, "coauthor@conf.org", []string{"COND", "SIMUL"})
	submission := env.newSubmission(t, models.KindArticle, []string{"COND", "SIMUL"}, coauthor.UserID)

	result, err := env.assignments.Suggest(submission.SubmissionID, 5)
	require.NoError(t, err)
	for _, c := range result.Suggestions {
		assert.NotEqual(t, coauthor.UserID, c.ReviewerID)
	}
	assert.Zero(t, result.TotalAvailable)
}

func TestSuggestFlagsSharedAffiliation(t *testing.T) {
	env := setupTestEnv(t)

	author := env.newUser(t, "author@conf.org", nil)
	env.addAffiliation(t, author.UserID, 42)
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"}, author.UserID)

	colleague := env.newReviewer(t, "colleague@conf.org", []string{"COND"})
	env.addAffiliation(t, colleague.UserID, 42)
	outsider := env.newReviewer(t, "outsider@conf.org", []string{"COND"})

	result, err := env.assignments.Suggest(submission.SubmissionID, 1)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)

	// Conflict-free candidates fill slots before conflicted ones.
	assert.Equal(t, outsider.UserID, result.Suggestions[0].ReviewerID)

	both, err := env.assignments.Suggest(submission.SubmissionID, 2)
	require.NoError(t, err)
	require.Len(t, both.Suggestions, 2)
	assert.Equal(t, colleague.UserID, both.Suggestions[1].ReviewerID)
	assert.True(t, both.Suggestions[1].Conflict.Conflict)
	require.NotNil(t, both.Suggestions[1].Conflict.Reason)
	assert.Equal(t, ConflictReasonSharedAffiliation, *both.Suggestions[1].Conflict.Reason)
}

func TestSuggestEmptyPoolIsNotAnError(t *testing.T) {
	env := setupTestEnv(t)

	submission := env.newSubmission(t, models.KindArticle, []string{"METRO"})

	result, err := env.assignments.Suggest(submission.SubmissionID, 2)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
	assert.Zero(t, result.TotalAvailable)
	assert.NotEmpty(t, result.Message)
}

func TestAssignIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	reviewer := env.newReviewer(t, "reviewer@conf.org", []string{"COND"})
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"})

	first, err := env.assignments.Assign(submission.SubmissionID, []int{reviewer.UserID}, 21, admin.UserID)
	require.NoError(t, err)
	require.Len(t, first.Outcomes, 1)
	assert.Equal(t, AssignOutcomeCreated, first.Outcomes[0].Outcome)
	assert.Equal(t, models.StatusEnReview, first.NewStatus)

	second, err := env.assignments.Assign(submission.SubmissionID, []int{reviewer.UserID}, 21, admin.UserID)
	require.NoError(t, err)
	require.Len(t, second.Outcomes, 1)
	assert.Equal(t, AssignOutcomeAlreadyAssigned, second.Outcomes[0].Outcome)
	assert.Zero(t, second.CreatedCount)

	var count int64
	env.db.Model(&models.ReviewAssignment{}).
		Where("submission_id = ? AND reviewer_id = ?", submission.SubmissionID, reviewer.UserID).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSuggestSkipsAssignedReviewers(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	assigned := env.newReviewer(t, "assigned@conf.org", []string{"COND"})
	free := env.newReviewer(t, "free@conf.org", []string{"COND"})
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"})

	_, err := env.assignments.Assign(submission.SubmissionID, []int{assigned.UserID}, 21, admin.UserID)
	require.NoError(t, err)

	result, err := env.assignments.Suggest(submission.SubmissionID, 5)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, free.UserID, result.Suggestions[0].ReviewerID)
}

func TestDeclinedReviewerBecomesEligibleAgain(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	reviewer := env.newReviewer(t, "reviewer@conf.org", []string{"COND"})
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"})

	first, err := env.assignments.Assign(submission.SubmissionID, []int{reviewer.UserID}, 21, admin.UserID)
	require.NoError(t, err)

	_, err = env.assignments.Decline(first.Outcomes[0].AssignmentID, models.DeclineReasonWorkload, "")
	require.NoError(t, err)

	result, err := env.assignments.Suggest(submission.SubmissionID, 5)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, reviewer.UserID, result.Suggestions[0].ReviewerID)
}

func TestDeclineIsTerminal(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	reviewer := env.newReviewer(t, "reviewer@conf.org", []string{"COND"})
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"})

	assigned, err := env.assignments.Assign(submission.SubmissionID, []int{reviewer.UserID}, 21, admin.UserID)
	require.NoError(t, err)
	assignmentID := assigned.Outcomes[0].AssignmentID

	result, err := env.assignments.Decline(assignmentID, models.DeclineReasonExpertise, "")
	require.NoError(t, err)
	assert.False(t, result.AlreadyDeclined)

	// A declined assignment can never later be completed.
	_, err = env.reviews.Complete(assignmentID, reviewer.UserID, ReviewContent{
		Score:          7,
		Recommendation: models.RecommendationAccept,
	})
	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)

	// Declining again is a reported no-op.
	again, err := env.assignments.Decline(assignmentID, models.DeclineReasonExpertise, "")
	require.NoError(t, err)
	assert.True(t, again.AlreadyDeclined)
}

func TestDeclineValidation(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.assignments.Decline(1, "bored", "")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = env.assignments.Decline(1, models.DeclineReasonOther, "")
	require.ErrorAs(t, err, &validation)
}

func TestDeclineCompletedAssignmentFails(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	reviewer := env.newReviewer(t, "reviewer@conf.org", []string{"COND"})
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"})

	assigned, err := env.assignments.Assign(submission.SubmissionID, []int{reviewer.UserID}, 21, admin.UserID)
	require.NoError(t, err)
	assignmentID := assigned.Outcomes[0].AssignmentID

	_, err = env.reviews.Complete(assignmentID, reviewer.UserID, ReviewContent{
		Score:          8,
		Recommendation: models.RecommendationAccept,
	})
	require.NoError(t, err)

	_, err = env.assignments.Decline(assignmentID, models.DeclineReasonWorkload, "")
	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)
}

func TestDeclineNotifiesAdmins(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	reviewer := env.newReviewer(t, "reviewer@conf.org", []string{"COND"})
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"})

	assigned, err := env.assignments.Assign(submission.SubmissionID, []int{reviewer.UserID}, 21, admin.UserID)
	require.NoError(t, err)

	_, err = env.assignments.Decline(assigned.Outcomes[0].AssignmentID, models.DeclineReasonUnavailable, "")
	require.NoError(t, err)
	assert.Equal(t, 1, env.notifier.sent(models.EventReviewDeclined))
}

func TestAutoAssignClassifiesOutcomes(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })

	// Partial: one held assignment, one further eligible reviewer, target 2
	// would need 1 more after the held one... use a submission with a single
	// eligible reviewer and target 2 to exercise the partial path.
	partialSub := env.newSubmission(t, models.KindArticle, []string{"MICRO"})
	env.newReviewer(t, "micro1@conf.org", []string{"MICRO"})

	// Failed: nobody covers the theme.
	failedSub := env.newSubmission(t, models.KindArticle, []string{"STOCK"})

	// Full: two eligible reviewers.
	fullSub := env.newSubmission(t, models.KindArticle, []string{"BATIM"})
	env.newReviewer(t, "batim1@conf.org", []string{"BATIM"})
	env.newReviewer(t, "batim2@conf.org", []string{"BATIM"})

	report, err := env.assignments.AutoAssign(
		[]int{partialSub.SubmissionID, failedSub.SubmissionID, fullSub.SubmissionID},
		2, false, admin.UserID)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Full)
	assert.Equal(t, 1, report.Partial)
	assert.Equal(t, 1, report.Failed)
	assert.NotEmpty(t, report.RunID)

	byID := map[int]AutoAssignOutcome{}
	for _, o := range report.Outcomes {
		byID[o.SubmissionID] = o
	}
	assert.Equal(t, AutoAssignPartial, byID[partialSub.SubmissionID].Outcome)
	assert.Equal(t, AutoAssignFailed, byID[failedSub.SubmissionID].Outcome)
	assert.Equal(t, AutoAssignFull, byID[fullSub.SubmissionID].Outcome)

	// The partially assigned article still moved to review.
	updated, err := env.submissions.Get(partialSub.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnReview, updated.Status)

	var run models.AutoAssignRun
	require.NoError(t, env.db.First(&run, "run_id = ?", report.RunID).Error)
	assert.Equal(t, 1, run.PartialCount)
	assert.NotNil(t, run.FinishedAt)
}

func TestAutoAssignCountsHeldAssignments(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	held := env.newReviewer(t, "held@conf.org", []string{"RENOUV"})
	extra := env.newReviewer(t, "extra@conf.org", []string{"RENOUV"})
	submission := env.newSubmission(t, models.KindArticle, []string{"RENOUV"})

	_, err := env.assignments.Assign(submission.SubmissionID, []int{held.UserID}, 21, admin.UserID)
	require.NoError(t, err)

	report, err := env.assignments.AutoAssign([]int{submission.SubmissionID}, 2, false, admin.UserID)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)

	outcome := report.Outcomes[0]
	assert.Equal(t, AutoAssignFull, outcome.Outcome)
	assert.Equal(t, 1, outcome.HeldBefore)
	assert.Equal(t, []int{extra.UserID}, outcome.Assigned)
}

func TestAutoAssignForceReassignClearsSlate(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	first := env.newReviewer(t, "first@conf.org", []string{"INDUS"})
	env.newReviewer(t, "second@conf.org", []string{"INDUS"})
	submission := env.newSubmission(t, models.KindArticle, []string{"INDUS"})

	assigned, err := env.assignments.Assign(submission.SubmissionID, []int{first.UserID}, 21, admin.UserID)
	require.NoError(t, err)

	report, err := env.assignments.AutoAssign([]int{submission.SubmissionID}, 2, true, admin.UserID)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	assert.Zero(t, report.Outcomes[0].HeldBefore)
	assert.Len(t, report.Outcomes[0].Assigned, 2)

	var cleared models.ReviewAssignment
	require.NoError(t, env.db.First(&cleared, "assignment_id = ?", assigned.Outcomes[0].AssignmentID).Error)
	assert.Equal(t, models.AssignmentDeclined, cleared.Status)
}

func TestAssignUnknownReviewer(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"})

	_, err := env.assignments.Assign(submission.SubmissionID, []int{9999}, 21, admin.UserID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAssignRecordsConflictFlag(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.newUser(t, "admin@conf.org", func(u *models.User) { u.IsAdmin = true })
	author := env.newUser(t, "author@conf.org", nil)
	env.addAffiliation(t, author.UserID, 7)
	submission := env.newSubmission(t, models.KindArticle, []string{"COND"}, author.UserID)

	colleague := env.newReviewer(t, "colleague@conf.org", []string{"COND"})
	env.addAffiliation(t, colleague.UserID, 7)

	result, err := env.assignments.Assign(submission.SubmissionID, []int{colleague.UserID}, 21, admin.UserID)
	require.NoError(t, err)
	require.Equal(t, AssignOutcomeCreated, result.Outcomes[0].Outcome)

	var assignment models.ReviewAssignment
	require.NoError(t, env.db.First(&assignment, "assignment_id = ?", result.Outcomes[0].AssignmentID).Error)
	assert.True(t, assignment.ConflictDetected)
	require.NotNil(t, assignment.ConflictReason)
	assert.Equal(t, ConflictReasonSharedAffiliation, *assignment.ConflictReason)
}
