package routes

import (
	"conference-review-api/controllers"
	"conference-review-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Conference Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Vocabulary and reviewer directory
			protected.GET("/thematiques", controllers.GetThematiques)
			protected.GET("/reviewers", controllers.GetReviewers)
			protected.PUT("/reviewers/:id/specialties", middleware.RequireAdmin(), controllers.UpdateReviewerSpecialties)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.POST("", controllers.CreateSubmission)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("/:id/files", controllers.RegisterSubmissionFile)
				submissions.PUT("/:id/thematiques", controllers.UpdateSubmissionThematiques)

				// Assignment workflow (admin)
				submissions.GET("/:id/suggest", middleware.RequireAdmin(), controllers.SuggestReviewers)
				submissions.POST("/:id/assignments", middleware.RequireAdmin(), controllers.AssignReviewers)

				// Decisions (admin)
				submissions.POST("/:id/decision", middleware.RequireAdmin(), controllers.MakeDecision)
				submissions.POST("/:id/decision/reset", middleware.RequireAdmin(), controllers.ResetDecision)
				submissions.POST("/:id/decision/notify", middleware.RequireAdmin(), controllers.RetryDecisionNotification)

				submissions.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteSubmission)
			}

			// Reviewer-side assignment operations
			assignments := protected.Group("/assignments")
			assignments.Use(middleware.RequireReviewer())
			{
				assignments.POST("/:id/decline", controllers.DeclineAssignment)
				assignments.POST("/:id/start", controllers.StartReview)
				assignments.POST("/:id/complete", controllers.CompleteReview)
			}

			// Batch operations (admin)
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/auto-assign", controllers.AutoAssignReviewers)
			}
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})
}
