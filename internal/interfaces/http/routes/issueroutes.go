package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/infrastructure/permission"
	issuehandlers "github.com/techflow/techflow/internal/interfaces/http/handlers/issue"
	"github.com/techflow/techflow/internal/interfaces/http/middleware"
)

type IssueRouteConfig struct {
	IssueHandler         *issuehandlers.IssueHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
}

func SetupIssueRoutes(engine *gin.Engine, config *IssueRouteConfig) {
	h := config.IssueHandler
	perm := config.PermissionMiddleware

	api := engine.Group("/api")

	// Reporting is open to anyone, signed in or not.
	api.POST("/issues",
		config.RateLimiter.Limit("create_issue"),
		config.AuthMiddleware.OptionalAuth(),
		h.CreateIssue)

	authed := api.Group("")
	authed.Use(config.AuthMiddleware.RequireAuth())

	issues := authed.Group("/issues")
	{
		// Specific paths must be registered before /:id
		issues.GET("",
			perm.RequirePermission(permission.ResourceIssues, permission.ActionRead),
			h.ListIssues)
		issues.GET("/stats",
			perm.RequirePermission(permission.ResourceIssues, permission.ActionRead),
			h.GetStats)
		issues.GET("/lookup/:report_code",
			perm.RequirePermission(permission.ResourceTracking, permission.ActionRead),
			h.LookupIssue)

		issues.PUT("/:id/tech_level",
			perm.RequirePermission(permission.ResourceIssues, permission.ActionWrite),
			h.SetTechLevel)
		issues.PUT("/:id/start",
			perm.RequirePermission(permission.ResourceIssues, permission.ActionWrite),
			h.StartWork)
		issues.PUT("/:id/complete",
			perm.RequirePermission(permission.ResourceIssues, permission.ActionWrite),
			h.CompleteIssue)
		issues.GET("/:id/history",
			perm.RequirePermission(permission.ResourceIssues, permission.ActionRead),
			h.GetHistory)

		issues.GET("/:id",
			perm.RequirePermission(permission.ResourceIssues, permission.ActionRead),
			h.GetIssue)
	}

	authed.GET("/attachments/:name",
		perm.RequirePermission(permission.ResourceAttachments, permission.ActionRead),
		h.GetAttachment)

	authed.GET("/export",
		perm.RequirePermission(permission.ResourceReports, permission.ActionRead),
		h.Export)
	authed.GET("/print",
		perm.RequirePermission(permission.ResourceReports, permission.ActionRead),
		h.Print)

	authed.POST("/reset",
		perm.RequirePermission(permission.ResourceMaintenance, permission.ActionWrite),
		h.Reset)
}
