// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/handlers"
	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/middleware"
	"github.com/javajoker/sustainchain-backend/internal/seed"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

const version = "1.0.0"

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	if err := i18n.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	organizationService := services.NewOrganizationService(db)
	supplierService := services.NewSupplierService(db)
	productService := services.NewProductService(db)
	supplyChainService := services.NewSupplyChainService(db)
	grievanceService := services.NewGrievanceService(db, notificationService)
	satelliteService := services.NewSatelliteService(db, notificationService)
	kpiService := services.NewKPIService(db)
	surveyService := services.NewSurveyService(db)
	adminService := services.NewAdminService(db, cfg, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	productHandler := handlers.NewProductHandler(productService)
	supplyChainHandler := handlers.NewSupplyChainHandler(supplyChainService)
	grievanceHandler := handlers.NewGrievanceHandler(grievanceService)
	satelliteHandler := handlers.NewSatelliteHandler(satelliteService)
	kpiHandler := handlers.NewKPIHandler(kpiService)
	surveyHandler := handlers.NewSurveyHandler(surveyService, storageService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Role gates
	authRequired := middleware.AuthRequired()
	adminOnly := middleware.AdminRequired(db)
	analystOnly := middleware.AnalystRequired(db)
	supplierOnly := middleware.SupplierRequired(db)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.GeneralRateLimiter(cfg.RateLimit).Middleware())
	if cfg.Metrics.Enabled {
		metrics := middleware.NewMetrics()
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	r.Use(middleware.AuditLogMiddleware(db))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": utils.T(c, i18n.KeyWelcome)})
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})

	// Locally stored survey attachments
	r.Static(services.LocalUploadRoute, cfg.AWS.UploadDir)

	r.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, "")
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimiter(cfg.RateLimit).Middleware())
		{
			auth.POST("/signup", authHandler.SignUp)
			auth.POST("/signin", authHandler.SignIn)
		}

		if cfg.Seed.EndpointsEnabled {
			seeder, err := seed.NewSeeder(db)
			if err != nil {
				return nil, err
			}
			seedHandler := handlers.NewSeedHandler(seeder)

			seedRoutes := api.Group("/seed")
			{
				seedRoutes.POST("/seed", seedHandler.Seed)
				seedRoutes.POST("/reset", seedHandler.Reset)
			}
		}

		protected := api.Group("")
		protected.Use(authRequired)

		// User routes
		users := protected.Group("/users")
		{
			users.GET("", adminOnly, userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", adminOnly, userHandler.Delete)
		}

		// Organization routes
		organizations := protected.Group("/organizations")
		{
			organizations.GET("", organizationHandler.List)
			organizations.GET("/:id", organizationHandler.Get)
			organizations.POST("", adminOnly, organizationHandler.Create)
			organizations.PUT("/:id", adminOnly, organizationHandler.Update)
			organizations.DELETE("/:id", adminOnly, organizationHandler.Delete)
		}

		// Supplier routes
		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.POST("", analystOnly, supplierHandler.Create)
			suppliers.PUT("/:id", analystOnly, supplierHandler.Update)
			suppliers.DELETE("/:id", adminOnly, supplierHandler.Delete)
			suppliers.POST("/:id/calculate-risk", analystOnly, supplierHandler.CalculateRisk)
		}

		// Product routes
		products := protected.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/supplier/:supplierId", productHandler.ListBySupplier)
			products.GET("/:id", productHandler.Get)
			products.POST("", analystOnly, productHandler.Create)
			products.PUT("/:id", analystOnly, productHandler.Update)
			products.PUT("/:id/verify", analystOnly, productHandler.Verify)
			products.DELETE("/:id", adminOnly, productHandler.Delete)
		}

		// Supply chain routes
		supplyChain := protected.Group("/supply-chain")
		{
			supplyChain.GET("/nodes", supplyChainHandler.ListNodes)
			supplyChain.GET("/nodes/product/:productId", supplyChainHandler.NodesByProduct)
			supplyChain.GET("/nodes/:id", supplyChainHandler.GetNode)
			supplyChain.POST("/nodes", analystOnly, supplyChainHandler.CreateNode)
			supplyChain.PUT("/nodes/:id", analystOnly, supplyChainHandler.UpdateNode)
			supplyChain.DELETE("/nodes/:id", adminOnly, supplyChainHandler.DeleteNode)

			supplyChain.GET("/connections", supplyChainHandler.ListConnections)
			supplyChain.GET("/connections/:id", supplyChainHandler.GetConnection)
			supplyChain.POST("/connections", analystOnly, supplyChainHandler.CreateConnection)
			supplyChain.PUT("/connections/:id", analystOnly, supplyChainHandler.UpdateConnection)
			supplyChain.DELETE("/connections/:id", adminOnly, supplyChainHandler.DeleteConnection)

			supplyChain.GET("/map", supplyChainHandler.Map)
			supplyChain.POST("/import", analystOnly, supplyChainHandler.Import)
		}

		// Grievance routes
		grievances := protected.Group("/grievances")
		{
			grievances.GET("", grievanceHandler.List)
			grievances.GET("/heatmap/data", grievanceHandler.Heatmap)
			grievances.GET("/supplier/:supplierId", grievanceHandler.ListBySupplier)
			grievances.GET("/:id", grievanceHandler.Get)
			grievances.POST("", analystOnly, grievanceHandler.Create)
			grievances.PUT("/:id", analystOnly, grievanceHandler.Update)
			grievances.DELETE("/:id", adminOnly, grievanceHandler.Delete)
		}

		// Satellite alert routes
		satellite := protected.Group("/satellite")
		{
			satellite.GET("", satelliteHandler.List)
			satellite.GET("/region/:region", satelliteHandler.ListByRegion)
			satellite.GET("/:id", satelliteHandler.Get)
			satellite.POST("", analystOnly, satelliteHandler.Create)
			satellite.POST("/generate-mock", analystOnly, satelliteHandler.GenerateMock)
			satellite.PUT("/:id", analystOnly, satelliteHandler.Update)
			satellite.DELETE("/:id", adminOnly, satelliteHandler.Delete)
		}

		// KPI routes
		kpis := protected.Group("/kpis")
		{
			kpis.GET("", kpiHandler.List)
			kpis.GET("/organization/:organizationId", kpiHandler.ByOrganization)
			kpis.GET("/category/:category", kpiHandler.ByCategory)
			kpis.GET("/calculate/dcf/:organizationId", kpiHandler.CalculateDCF)
			kpis.GET("/calculate/grievance-resolution/:organizationId", kpiHandler.CalculateGrievanceResolution)
			kpis.GET("/calculate/supplier-sustainability/:organizationId", kpiHandler.CalculateSupplierSustainability)
			kpis.GET("/:id", kpiHandler.Get)
			kpis.POST("", analystOnly, kpiHandler.Create)
			kpis.PUT("/:id", analystOnly, kpiHandler.Update)
			kpis.DELETE("/:id", adminOnly, kpiHandler.Delete)
		}

		// Survey routes
		surveys := protected.Group("/surveys")
		{
			surveys.GET("", surveyHandler.List)
			surveys.GET("/organization/:organizationId", surveyHandler.ByOrganization)
			surveys.GET("/:id", surveyHandler.Get)
			surveys.POST("", analystOnly, surveyHandler.Create)
			surveys.PUT("/:id", analystOnly, surveyHandler.Update)
			surveys.DELETE("/:id", adminOnly, surveyHandler.Delete)
			surveys.POST("/:id/questions", analystOnly, surveyHandler.AddQuestion)
			surveys.GET("/:id/questions", surveyHandler.ListQuestions)
			surveys.GET("/:id/responses", analystOnly, surveyHandler.ListResponses)
			surveys.POST("/responses", surveyHandler.Submit)
			surveys.POST("/uploads", supplierOnly, surveyHandler.Upload)
		}

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(adminOnly)
		{
			admin.GET("/dashboard", adminHandler.GetDashboardStats)
			admin.GET("/user-roles", adminHandler.GetUserRoles)
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
			admin.GET("/api-config", adminHandler.GetAPIConfig)
			admin.PUT("/api-config", adminHandler.UpdateAPIConfig)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
			admin.GET("/notifications", adminHandler.GetNotifications)
			admin.PUT("/notifications/:id/read", adminHandler.MarkNotificationRead)
		}
	}

	return r, nil
}
