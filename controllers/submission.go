package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type createSubmissionRequest struct {
	Title       string   `json:"title" binding:"required"`
	Kind        string   `json:"kind" binding:"required"`
	AuthorIDs   []int    `json:"author_ids" binding:"required"`
	Thematiques []string `json:"thematiques"`
}

// CreateSubmission handles POST /api/v1/submissions
func CreateSubmission(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	submission, err := submissionSvc.Create(req.Title, req.Kind, req.AuthorIDs, req.Thematiques)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "submission": submission})
}

// GetSubmission handles GET /api/v1/submissions/:id
func GetSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	submission, err := submissionSvc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submission": submission})
}

type updateThematiquesRequest struct {
	Thematiques []string `json:"thematiques" binding:"required"`
}

// UpdateSubmissionThematiques handles PUT /api/v1/submissions/:id/thematiques
func UpdateSubmissionThematiques(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req updateThematiquesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := submissionSvc.SetThematiques(id, req.Thematiques); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type registerFileRequest struct {
	FileType     string `json:"file_type" binding:"required"`
	OriginalName string `json:"original_name" binding:"required"`
	FileSize     int64  `json:"file_size"`
}

// RegisterSubmissionFile handles POST /api/v1/submissions/:id/files
//
// The request carries upload metadata only; file contents are stored by the
// upload handler outside this API.
func RegisterSubmissionFile(c *gin.Context) {
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

	var req registerFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := statusSvc.RegisterFileUpload(id, req.FileType, req.OriginalName, req.FileSize, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "file": result})
}

// DeleteSubmission handles DELETE /api/v1/submissions/:id
func DeleteSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	if err := submissionSvc.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission deleted"})
}
