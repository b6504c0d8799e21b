package controllers

import (
	"conference-review-api/services"
	"conference-review-api/thematique"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	vocab           *thematique.Vocabulary
	submissionSvc   *services.SubmissionService
	statusSvc       *services.StatusService
	reviewerSvc     *services.ReviewerService
	assignmentSvc   *services.AssignmentService
	reviewSvc       *services.ReviewService
	decisionSvc     *services.DecisionService
	notificationSvc *services.NotificationService
)

// Setup wires the controllers to their services. The vocabulary is an
// injected snapshot so the whole HTTP layer shares one consistent code set.
func Setup(db *gorm.DB, vocabulary *thematique.Vocabulary, notifier services.Notifier) {
	vocab = vocabulary
	notificationSvc = services.NewNotificationService(db, notifier)
	submissionSvc = services.NewSubmissionService(db, vocabulary)
	statusSvc = services.NewStatusService(db)
	reviewerSvc = services.NewReviewerService(db, vocabulary)
	assignmentSvc = services.NewAssignmentService(db, vocabulary, notificationSvc)
	reviewSvc = services.NewReviewService(db)
	decisionSvc = services.NewDecisionService(db, notificationSvc)
}

func currentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		}
	}
	return 0, false
}

// respondError translates an engine error into the matching HTTP answer.
func respondError(c *gin.Context, err error) {
	c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
}
