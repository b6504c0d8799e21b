package services

import (
	"fmt"
	"sync"
	"testing"

	"conference-review-api/models"
	"conference-review-api/thematique"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (f *fakeNotifier) Notify(event string, recipients []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	if f.fail {
		return fmt.Errorf("smtp unreachable")
	}
	return nil
}

func (f *fakeNotifier) sent(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e == event {
			n++
		}
	}
	return n
}

type testEnv struct {
	db          *gorm.DB
	vocab       *thematique.Vocabulary
	notifier    *fakeNotifier
	submissions *SubmissionService
	statuses    *StatusService
	reviewers   *ReviewerService
	assignments *AssignmentService
	reviews     *ReviewService
	decisions   *DecisionService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:enginetest%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}

	err = db.AutoMigrate(
		&models.User{}, &models.Affiliation{}, &models.UserAffiliation{},
		&models.Submission{}, &models.SubmissionAuthor{}, &models.SubmissionFile{},
		&models.ReviewAssignment{}, &models.Review{},
		&models.Notification{}, &models.AutoAssignRun{},
	)
	if err != nil {
		t.Fatal(err)
	}

	vocab := thematique.Default()
	notifier := &fakeNotifier{}
	notifications := NewNotificationService(db, notifier)

	return &testEnv{
		db:          db,
		vocab:       vocab,
		notifier:    notifier,
		submissions: NewSubmissionService(db, vocab),
		statuses:    NewStatusService(db),
		reviewers:   NewReviewerService(db, vocab),
		assignments: NewAssignmentService(db, vocab, notifications),
		reviews:     NewReviewService(db),
		decisions:   NewDecisionService(db, notifications),
	}
}

var (
	testDBSeq   int
	testUserSeq int
)

func (e *testEnv) newUser(t *testing.T, email string, mutate func(*models.User)) *models.User {
	t.Helper()
	testUserSeq++
	user := models.User{
		Email:       email,
		FirstName:   fmt.Sprintf("User%d", testUserSeq),
		LastName:    "Test",
		IsActive:    true,
		IsActivated: true,
	}
	if mutate != nil {
		mutate(&user)
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return &user
}

func (e *testEnv) newReviewer(t *testing.T, email string, specialties []string) *models.User {
	t.Helper()
	return e.newUser(t, email, func(u *models.User) {
		u.IsReviewer = true
		u.SpecialitesCodes = thematique.JoinCodes(specialties)
	})
}

func (e *testEnv) addAffiliation(t *testing.T, userID, affiliationID int) {
	t.Helper()
	aff := models.Affiliation{AffiliationID: affiliationID, Sigle: fmt.Sprintf("LAB%d", affiliationID)}
	e.db.Where("affiliation_id = ?", affiliationID).FirstOrCreate(&aff)
	if err := e.db.Create(&models.UserAffiliation{UserID: userID, AffiliationID: affiliationID}).Error; err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) newSubmission(t *testing.T, kind string, codes []string, authorIDs ...int) *models.Submission {
	t.Helper()
	if len(authorIDs) == 0 {
		author := e.newUser(t, fmt.Sprintf("author%d@conf.org", testUserSeq+1), nil)
		authorIDs = []int{author.UserID}
	}
	submission, err := e.submissions.Create("Heat transfer study", kind, authorIDs, codes)
	if err != nil {
		t.Fatal(err)
	}
	return submission
}

// addWorkload seeds extra assignments for the reviewer against throwaway
// submissions, to shape workload counters.
func (e *testEnv) addWorkload(t *testing.T, reviewerID, active, completed int) {
	t.Helper()
	for i := 0; i < active+completed; i++ {
		sub := e.newSubmission(t, models.KindArticle, []string{"COND"})
		status := models.AssignmentAssigned
		if i >= active {
			status = models.AssignmentCompleted
		}
		assignment := models.ReviewAssignment{
			SubmissionID: sub.SubmissionID,
			ReviewerID:   reviewerID,
			Status:       status,
		}
		if err := e.db.Create(&assignment).Error; err != nil {
			t.Fatal(err)
		}
	}
}
