package handler

import (
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes. The rate limiter is applied per
// group after Authenticate so authenticated traffic is keyed by user, not by
// IP; the unauthenticated auth routes fall back to IP buckets.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit echo.MiddlewareFunc, authHandler *AuthHandler, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler, budgetHandler *BudgetHandler, notificationHandler *NotificationHandler, dashboardHandler *DashboardHandler, settingsHandler *SettingsHandler, adminHandler *AdminHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth", rateLimit)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate())

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate(), rateLimit)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate(), rateLimit)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate(), rateLimit)
	budgets.GET("", budgetHandler.List)
	budgets.POST("", budgetHandler.Create)
	budgets.GET("/check", budgetHandler.Check)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	// Notification routes (protected)
	notifications := api.Group("/notifications")
	notifications.Use(authMiddleware.Authenticate(), rateLimit)
	notifications.GET("", notificationHandler.List)
	notifications.POST("", notificationHandler.Create)
	notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
	notifications.PATCH("/:id", notificationHandler.MarkRead)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate(), rateLimit)
	dashboard.GET("/summary", dashboardHandler.Summary)
	dashboard.GET("/monthly-trends", dashboardHandler.MonthlyTrends)
	dashboard.GET("/daily-activity", dashboardHandler.DailyActivity)

	// Settings routes (protected)
	settings := api.Group("/settings")
	settings.Use(authMiddleware.Authenticate(), rateLimit)
	settings.PUT("/budget", settingsHandler.UpdateBudget)

	// Admin routes (protected, admin only)
	admin := api.Group("/admin")
	admin.Use(authMiddleware.Authenticate(), rateLimit, middleware.RequireAdmin())
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/stats", adminHandler.Stats)

	// WebSocket endpoint (token validated in the handler)
	e.GET("/ws", wsHandler.HandleWS)
}
