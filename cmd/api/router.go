package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)
		setupPatronRoutes(v1, c)
		setupLoanRoutes(v1, c)
		setupReportRoutes(v1, c)
	}

	return router
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	items := v1.Group("/items")
	{
		items.POST("", c.CatalogHandler.AddItem)
		items.GET("", c.ReportingHandler.ListAvailable)
		items.GET("/:id", c.CatalogHandler.GetItem)
	}
}

func setupPatronRoutes(v1 *gin.RouterGroup, c *container.Container) {
	patrons := v1.Group("/patrons")
	{
		patrons.POST("", c.PatronHandler.Register)
		patrons.GET("/:id", c.PatronHandler.GetPatron)
		patrons.GET("/:id/history", c.ReportingHandler.GetPatronHistory)
	}
}

func setupLoanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	loans := v1.Group("/loans")
	{
		loans.POST("", c.CirculationHandler.Borrow)
		loans.GET("/:id", c.CirculationHandler.GetLoan)
		loans.POST("/:id/return", c.CirculationHandler.Return)
	}
}

func setupReportRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reports := v1.Group("/reports")
	{
		reports.GET("/overdue", c.ReportingHandler.GetOverdueLoans)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{
			"database": "ok",
			"cache":    "ok",
		}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			// Degraded, not down: the API works without the cache.
			checks["cache"] = err.Error()
		}

		if !healthy {
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "Unhealthy", "One or more dependencies are down", checks)
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
