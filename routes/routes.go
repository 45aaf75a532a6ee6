package routes

import (
	"capstone-tracker-api/controllers"
	"capstone-tracker-api/middleware"
	"capstone-tracker-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Capstone Tracker API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Account
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Directory and deadlines (all authenticated users)
			protected.GET("/faculty/:employeeId", controllers.GetFacultyDetails)
			protected.GET("/students/:regNo", controllers.GetStudentDetails)
			protected.GET("/deadlines/defaults", controllers.GetDefaultDeadlines)

			// Projects and reviews
			projects := protected.Group("/projects")
			{
				projects.GET("/guide", controllers.GetGuideProjects)
				projects.GET("/panel", controllers.GetPanelProjects)
				projects.GET("/:projectId/review-status/:reviewType", controllers.GetTeamReviewStatus)
			}

			// Edit requests (guides and panels file and track them)
			requests := protected.Group("/requests")
			requests.Use(middleware.RequireRole(models.RoleFaculty))
			{
				requests.POST("/:facultyType", controllers.CreateEditRequest)
				requests.GET("/:facultyType/status", controllers.CheckRequestStatus)
			}

			// Review submission
			protected.PUT("/reviews/:facultyType",
				middleware.RequireRole(models.RoleFaculty), controllers.SubmitReview)

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/faculty", controllers.CreateFaculty)
				admin.POST("/admins", controllers.CreateAdmin)
				admin.GET("/faculty", controllers.GetAllFaculty)
				admin.GET("/faculty/projects", controllers.GetAllFacultyWithProjects)
				admin.GET("/guides/projects", controllers.GetAllGuidesWithProjects)

				admin.POST("/students", controllers.CreateStudent)
				admin.POST("/projects", controllers.CreateProject)

				admin.PUT("/deadlines/defaults", controllers.SetDefaultDeadlines)

				admin.GET("/requests/:facultyType", controllers.GetAllRequests)
				admin.PUT("/requests/resolve", controllers.UpdateRequestStatus)

				panels := admin.Group("/panels")
				{
					panels.GET("", controllers.GetAllPanels)
					panels.GET("/projects", controllers.GetAllPanelsWithProjects)
					panels.POST("", controllers.CreatePanelManually)
					panels.DELETE("/:panelId", controllers.DeletePanel)
					panels.POST("/auto-create", controllers.AutoCreatePanels)
					panels.POST("/auto-assign", controllers.AutoAssignPanelsToProjects)
					panels.PUT("/assign", controllers.AssignExistingPanelToProject)
					panels.POST("/assign-new", controllers.AssignPanelToProject)
				}
			}
		}
	}
}
