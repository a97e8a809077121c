package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"customer-onboarding.backend/internal/interfaces/http/handlers"
	"customer-onboarding.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	customerHandler *handlers.CustomerHandler
	documentHandler *handlers.DocumentHandler
	adminHandler    *handlers.AdminHandler
	authMiddleware  gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "customer-onboarding-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public except profile)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/profile", d.authMiddleware, d.authHandler.GetProfile)
		}

		// Customer routes (protected, broker or admin)
		customers := v1.Group("/customers")
		customers.Use(d.authMiddleware, middleware.RequireBrokerOrAdmin())
		{
			customers.GET("/profile", d.customerHandler.GetProfile)
			customers.PUT("/profile", d.customerHandler.UpdateProfile)
			customers.GET("/status", d.customerHandler.GetStatus)
			customers.PUT("/status", d.customerHandler.UpdateStatus)
			customers.GET("/activities", d.customerHandler.GetActivities)
		}

		// Document routes (protected, owner-scoped)
		documents := v1.Group("/documents")
		documents.Use(d.authMiddleware, middleware.RequireBrokerOrAdmin())
		{
			documents.POST("/upload", d.documentHandler.Upload)
			documents.GET("", d.documentHandler.List)
			documents.GET("/:id", d.documentHandler.Get)
			documents.GET("/:id/download", d.documentHandler.Download)
			documents.DELETE("/:id", d.documentHandler.Delete)
		}

		// Admin routes (protected, admin only)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/overview", d.adminHandler.GetOverview)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/role", d.adminHandler.UpdateUserRole)
			admin.GET("/customers", d.adminHandler.ListCustomers)
			admin.GET("/customers/:id", d.adminHandler.GetCustomer)
		}
	}
}
