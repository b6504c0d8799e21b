package controllers

import (
	"net/http"
	"strconv"

	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// SuggestReviewers handles GET /api/v1/submissions/:id/suggest?n=
func SuggestReviewers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	n, _ := strconv.Atoi(c.DefaultQuery("n", "2"))

	result, err := assignmentSvc.Suggest(id, n)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

type assignRequest struct {
	ReviewerIDs []int `json:"reviewer_ids" binding:"required"`
	DueInDays   int   `json:"due_in_days"`
}

// AssignReviewers handles POST /api/v1/submissions/:id/assignments
func AssignReviewers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := assignmentSvc.Assign(id, req.ReviewerIDs, req.DueInDays, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

type declineRequest struct {
	Reason      string `json:"reason" binding:"required"`
	OtherReason string `json:"other_reason"`
}

// DeclineAssignment handles POST /api/v1/assignments/:id/decline
func DeclineAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var req declineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := assignmentSvc.Decline(id, req.Reason, req.OtherReason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

type autoAssignRequest struct {
	SubmissionIDs []int `json:"submission_ids" binding:"required"`
	TargetCount   int   `json:"target_count"`
	ForceReassign bool  `json:"force_reassign"`
}

// AutoAssignReviewers handles POST /api/v1/admin/auto-assign
func AutoAssignReviewers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req autoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	report, err := assignmentSvc.AutoAssign(req.SubmissionIDs, req.TargetCount, req.ForceReassign, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// StartReview handles POST /api/v1/assignments/:id/start
func StartReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	review, err := reviewSvc.Start(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

// CompleteReview handles POST /api/v1/assignments/:id/complete
func CompleteReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var content services.ReviewContent
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	review, err := reviewSvc.Complete(id, userID, content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}
