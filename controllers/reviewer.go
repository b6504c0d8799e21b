package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetReviewers handles GET /api/v1/reviewers
func GetReviewers(c *gin.Context) {
	reviewers, err := reviewerSvc.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviewers": reviewers, "total": len(reviewers)})
}

type specialtiesRequest struct {
	Specialties []string `json:"specialties" binding:"required"`
}

// UpdateReviewerSpecialties handles PUT /api/v1/reviewers/:id/specialties
func UpdateReviewerSpecialties(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer ID"})
		return
	}

	var req specialtiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := reviewerSvc.SetSpecialties(id, req.Specialties); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetThematiques handles GET /api/v1/thematiques
func GetThematiques(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "thematiques": vocab.All()})
}
