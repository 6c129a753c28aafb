package cms_routes

import (
	"github.com/gin-gonic/gin"
	admin_controller "github.com/rafaelsantos7520/draymodas/controllers/cms/admin_controller"
	admin_auth "github.com/rafaelsantos7520/draymodas/controllers/cms/admin_controller/auth"
	"github.com/rafaelsantos7520/draymodas/middleware"
)

// SetupAdminRoutes registers login, session and admin management routes on the /admin group.
func SetupAdminRoutes(admin *gin.RouterGroup, auth gin.HandlerFunc) {
	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════
	admin.POST("/auth/login", admin_auth.AdminLogin)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth Required)
	// ════════════════════════════════════════════════════════════
	protected := admin.Group("")
	protected.Use(auth)
	{
		protected.POST("/auth/logout", admin_auth.AdminLogout)
		protected.GET("/auth/me", admin_auth.GetAdminMe)

		protected.GET("/stats", admin_controller.GetDashboardStats)
	}

	// ════════════════════════════════════════════════════════════
	// Super Admin Only Routes
	// ════════════════════════════════════════════════════════════
	superAdmin := admin.Group("")
	superAdmin.Use(auth, middleware.RequireSuperAdminMiddleware())
	{
		superAdmin.POST("/admins", admin_controller.CreateAdmin)
	}
}
