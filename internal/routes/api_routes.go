package routes

import (
	"asapcut/internal/handlers"
	"asapcut/internal/middleware"
	"asapcut/models"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers all authenticated API routes.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		apiGroup.GET("/dashboard", handlers.DashboardStatsHandler)

		universities := apiGroup.Group("/universities")
		{
			universities.GET("", handlers.ListUniversitiesHandler)
			universities.POST("", handlers.CreateUniversityHandler)
			universities.PUT("/:id", handlers.UpdateUniversityHandler)
			universities.DELETE("/:id", handlers.DeleteUniversityHandler)
		}

		associations := apiGroup.Group("/associations")
		{
			associations.GET("", handlers.ListAssociationsHandler)
			associations.POST("", handlers.CreateAssociationHandler)
			associations.PUT("/:id", handlers.UpdateAssociationHandler)
			associations.DELETE("/:id", handlers.DeleteAssociationHandler)
		}

		contributions := apiGroup.Group("/contributions")
		{
			contributions.GET("", handlers.ListContributionsHandler)
			contributions.POST("", handlers.CreateContributionHandler)
			contributions.GET("/uploads", handlers.ListContributionUploadsHandler)
			// Bulk import is restricted to the federation finance positions.
			contributions.POST("/upload",
				middleware.RequirePositions(models.PrivilegedPositions...),
				handlers.UploadContributionsHandler)

			contributions.GET("/export/excel", handlers.ExportContributionsWorkbookHandler)
			contributions.GET("/export/excel/:year", handlers.ExportContributionsExcelHandler)
			contributions.GET("/export/report/:year", handlers.ContributionsDocumentHandler)
			contributions.GET("/invoice/:year", handlers.InvoiceDocumentHandler)
		}

		arrears := apiGroup.Group("/arrears")
		{
			arrears.GET("", handlers.ListArrearsHandler)
			arrears.GET("/export/excel", handlers.ExportArrearsExcelHandler)
			arrears.GET("/export/report", handlers.ArrearsDocumentHandler)
		}

		reports := apiGroup.Group("/reports")
		{
			reports.GET("", handlers.ListReportsHandler)
			reports.POST("",
				middleware.RequirePositions(models.PrivilegedPositions...),
				handlers.CreateReportHandler)
			reports.POST("/:id/view", handlers.MarkReportViewedHandler)
			reports.GET("/:id/views", handlers.ReportViewersHandler)
			reports.GET("/:id/download", handlers.DownloadReportHandler)
		}

		apiGroup.GET("/users",
			middleware.RequirePositions(models.PrivilegedPositions...),
			handlers.ListUsersHandler)

		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
		}
	}
}
