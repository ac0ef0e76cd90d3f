package routes

import (
	"stadium-onboarding-api/controllers"
	"stadium-onboarding-api/middleware"
	"stadium-onboarding-api/services"
	"stadium-onboarding-api/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the onboarding API under /api/v1. Owner routes are
// public (owners authenticate by knowing their request id / temp code, as the
// original did); admin routes require the staff JWT.
func SetupRoutes(router *gin.Engine, svc *services.OnboardingService, blobs storage.BlobStore) {
	onboarding := controllers.NewOnboardingController(svc)
	admin := controllers.NewAdminOnboardingController(svc)
	uploads := controllers.NewUploadController(svc, blobs)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Stadium Onboarding API is running",
			})
		})

		// Owner-facing workflow
		owner := v1.Group("/onboarding")
		{
			owner.POST("", onboarding.CreateOnboarding)
			owner.POST("/login", onboarding.OwnerLogin)
			owner.GET("/:id", onboarding.GetOnboarding)

			// STEP1: settlement proposals
			owner.GET("/:id/step1", onboarding.GetProposals)
			owner.POST("/:id/step1", onboarding.SubmitProposal)
			owner.PATCH("/:id/step1", onboarding.ApproveProposal)
			owner.DELETE("/:id/step1", onboarding.DeleteProposal)

			// STEP2: stadium detail
			owner.GET("/:id/step2", onboarding.GetStadium)
			owner.PUT("/:id/step2", onboarding.SaveStadium)

			// STEP3: documents
			owner.GET("/:id/step3", onboarding.GetDocuments)
			owner.PATCH("/:id/step3", onboarding.SubmitDocuments)
			owner.POST("/:id/step3/upload", uploads.UploadDocument)

			// STEP4/5: setup times and completion
			owner.GET("/:id/step5", onboarding.GetAvailableTimes)
			owner.PUT("/:id/step5", onboarding.SaveAvailableTimes)
		}

		// Staff dashboard
		v1.POST("/admin/login", controllers.AdminLogin)

		protected := v1.Group("/admin")
		protected.Use(middleware.AdminAuthMiddleware())
		{
			protected.GET("/onboarding", admin.ListOnboarding)
			protected.GET("/onboarding/:id", admin.GetOnboarding)
			protected.DELETE("/onboarding/:id", admin.DeleteOnboarding)
			protected.PATCH("/onboarding/:id/status", admin.SetStatus)
			protected.POST("/onboarding/:id/settlement-upload", uploads.UploadSettlement)
		}
	}
}
