package router

import (
	"github.com/gin-gonic/gin"
	"github.com/thekada/kada-backend/config"
	"github.com/thekada/kada-backend/internal/app/controller"
	"github.com/thekada/kada-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	franchiseController *controller.FranchiseController
	statsController     *controller.StatsController
	orderController     *controller.OrderController
	payoutController    *controller.PayoutController
	leadController      *controller.LeadController
	settingsController  *controller.SettingsController
	contentController   *controller.ContentController
	trainingController  *controller.TrainingController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	franchiseController *controller.FranchiseController,
	statsController *controller.StatsController,
	orderController *controller.OrderController,
	payoutController *controller.PayoutController,
	leadController *controller.LeadController,
	settingsController *controller.SettingsController,
	contentController *controller.ContentController,
	trainingController *controller.TrainingController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		franchiseController: franchiseController,
		statsController:     statsController,
		orderController:     orderController,
		payoutController:    payoutController,
		leadController:      leadController,
		settingsController:  settingsController,
		contentController:   contentController,
		trainingController:  trainingController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "KADA API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		// Public website endpoints: lead capture, published content,
		// franchise applications.
		v1.POST("/leads", r.leadController.Capture)
		v1.GET("/content/:slug", r.contentController.GetSection)
		v1.POST("/franchises", r.franchiseController.Apply)

		stats := v1.Group("/stats")
		stats.Use(r.authMiddleware.Authenticate())
		{
			stats.GET("", r.statsController.GetStats)
			stats.DELETE("",
				r.authMiddleware.RequireRole("admin"),
				r.statsController.InvalidateStats,
			)
		}

		training := v1.Group("/training")
		training.Use(r.authMiddleware.Authenticate())
		{
			training.GET("", r.trainingController.ListMine)
		}

		franchises := v1.Group("/franchises")
		franchises.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			franchises.GET("", r.franchiseController.List)
			franchises.GET("/:id", r.franchiseController.GetByID)
			franchises.PATCH("/:id/status", r.franchiseController.UpdateStatus)
			franchises.PUT("/:id/banking", r.franchiseController.UpdateBanking)
			franchises.PUT("/:id/kyc", r.franchiseController.AttachKYC)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			orders.GET("", r.orderController.ListByZone)
			orders.POST("", r.orderController.Ingest)
			orders.PATCH("/:id/status", r.orderController.UpdateStatus)
		}

		payouts := v1.Group("/payouts")
		payouts.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			payouts.GET("/batch", r.payoutController.ListBatch)
			payouts.POST("/preview", r.payoutController.Preview)
			payouts.POST("/process", r.payoutController.Process)
			payouts.GET("/history", r.payoutController.History)
			payouts.GET("/franchise/:id", r.payoutController.FranchiseHistory)
			payouts.GET("/export", r.payoutController.Export)
		}

		leads := v1.Group("/leads")
		leads.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			leads.GET("", r.leadController.List)
			leads.PATCH("/:id/status", r.leadController.UpdateStatus)
		}

		settings := v1.Group("/settings")
		settings.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			settings.GET("", r.settingsController.List)
			settings.PUT("", r.settingsController.Upsert)
			settings.DELETE("/:key", r.settingsController.Delete)
		}

		adminContent := v1.Group("/admin/content")
		adminContent.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			adminContent.GET("", r.contentController.ListSections)
			adminContent.PUT("/:slug", r.contentController.UpsertSection)
			adminContent.DELETE("/:slug", r.contentController.DeleteSection)
		}

		adminTraining := v1.Group("/admin/training")
		adminTraining.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			adminTraining.GET("", r.trainingController.ListAll)
			adminTraining.POST("", r.trainingController.Create)
			adminTraining.PUT("/:id", r.trainingController.Update)
			adminTraining.DELETE("/:id", r.trainingController.Delete)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
