package routes

import (
	"net/http"

	"private-chef-api/handlers"
	"private-chef-api/middleware"
	"private-chef-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, sessions middleware.SessionResolver, metrics http.Handler) {
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Chefs & menus (no auth needed)
		public.GET("/chefs", h.ListChefs)
		public.GET("/chefs/search", h.SearchChefs)
		public.GET("/chefs/:id", h.GetChef)
		public.GET("/settings", h.GetPublicSettings)

		// Intake forms
		public.POST("/event-leads", h.SubmitEventLead)
		public.POST("/chef-applications", h.SubmitChefApplication)

		// State machine info
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(sessions))
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)
		auth.POST("/auth/logout", h.Logout)

		// Checkout flow
		auth.GET("/flow", h.GetFlow)
		auth.POST("/flow/navigate", h.Navigate)
		auth.POST("/flow/search", h.FlowSearch)
		auth.POST("/flow/chef", h.SelectChef)
		auth.POST("/flow/details", h.SetDetails)
		auth.POST("/flow/menu", h.BookMenu)
		auth.POST("/flow/proceed", h.ProceedToPayment)
		auth.POST("/flow/pay", h.Pay)
	}

	// ── Diner routes ───────────────────────────────────────────────
	diner := r.Group("/api/diner")
	diner.Use(middleware.AuthRequired(sessions), middleware.RoleRequired(models.RoleDiner))
	{
		diner.GET("/bookings", h.GetMyBookings)
		diner.GET("/bookings/:id", h.GetBookingDetail)
		diner.PUT("/bookings/:id/cancel", h.CancelBooking)
	}

	// ── Chef routes ────────────────────────────────────────────────
	chef := r.Group("/api/chef")
	chef.Use(middleware.AuthRequired(sessions), middleware.RoleRequired(models.RoleChef))
	{
		// Profile
		chef.GET("/profile", h.GetMyChefProfile)
		chef.PUT("/profile", h.UpdateMyChefProfile)
		chef.GET("/dashboard", h.GetChefDashboard)
		chef.POST("/portrait", h.GeneratePortrait)
		chef.POST("/teaser", h.GenerateTeaser)

		// Menu management
		chef.POST("/menus", h.AddMenu)
		chef.PUT("/menus/:menuId", h.UpdateMenu)
		chef.DELETE("/menus/:menuId", h.DeleteMenu)
		chef.POST("/menus/:menuId/narrative", h.GenerateMenuNarrative)
		chef.POST("/menus/:menuId/cover", h.GenerateMenuCover)
		chef.POST("/menus/:menuId/courses", h.AddCourse)
		chef.DELETE("/menus/:menuId/courses/:courseKey", h.DeleteCourse)
		chef.PUT("/menus/:menuId/courses/:courseKey/dishes", h.SetDishes)
		chef.POST("/menus/:menuId/courses/:courseKey/dishes/:index/image", h.GenerateDishAsset)

		// Booking management
		chef.GET("/bookings", h.GetChefBookings)
		chef.PUT("/bookings/:id/status", h.UpdateBookingStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(sessions), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/overview", h.AdminOverview)
		admin.GET("/logs", h.AdminGetLogs)

		admin.GET("/bookings", h.AdminGetAllBookings)
		admin.GET("/bookings/:id/history", h.AdminBookingHistory)
		admin.PUT("/bookings/:id/status", h.AdminUpdateBookingStatus)

		admin.GET("/users", h.AdminGetAllUsers)
		admin.PUT("/users/:id/role", h.AdminSetUserRole)
		admin.GET("/chefs", h.AdminGetAllChefs)
		admin.PUT("/chefs/:id", h.AdminUpdateChef)

		admin.GET("/chef-requests", h.AdminGetChefRequests)
		admin.PUT("/chef-requests/:id/status", h.AdminSetChefRequestStatus)
		admin.GET("/recruitment", h.AdminGetRecruitmentLeads)
		admin.POST("/recruitment", h.AdminAddRecruitmentLead)
		admin.PUT("/recruitment/:id/status", h.AdminSetRecruitmentStatus)
		admin.GET("/event-leads", h.AdminGetEventLeads)
		admin.PUT("/event-leads/:id", h.AdminUpdateEventLead)

		admin.GET("/promotions", h.AdminGetPromotions)
		admin.POST("/promotions", h.AdminCreatePromotion)
		admin.PUT("/promotions/:id/status", h.AdminSetPromotionStatus)
		admin.GET("/gift-cards", h.AdminGetGiftCards)
		admin.POST("/gift-cards", h.AdminIssueGiftCard)

		admin.GET("/settings", h.AdminGetSettings)
		admin.PUT("/settings", h.AdminUpdateSettings)

		admin.POST("/reports", h.AdminRunReport)

		admin.GET("/social", h.AdminGetSocialPosts)
		admin.POST("/social/campaigns", h.AdminGenerateCampaign)
		admin.PUT("/social/:id/publish", h.AdminPublishPost)
		admin.PUT("/social/:id/hashtags", h.AdminOptimizeHashtags)
		admin.DELETE("/social/:id", h.AdminDeletePost)
	}
}
