// Package server assembles the HTTP API: services, handlers, middleware and routes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fintrack/internal/analytics"
	"fintrack/internal/config"
	_ "fintrack/internal/docs" // Import swagger docs
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// Services bundles the business services the router exposes.
type Services struct {
	Users        services.UserServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Analytics    services.AnalyticsServicer
	Audit        services.AuditServicer
	// Location is the zone calendar dates in requests are read in.
	Location *time.Location
}

// NewServices wires the gorm-backed services and the aggregation engine.
// Extra engine options are applied after the ones derived from cfg.
func NewServices(db *gorm.DB, cfg *config.Config, engineOpts ...analytics.Option) Services {
	opts := []analytics.Option{
		analytics.WithLocation(cfg.Location),
		analytics.WithTrendMonths(cfg.TrendMonths),
		analytics.WithRecentLimit(cfg.RecentTransactionsLimit),
		analytics.WithLogger(logger.Named("analytics")),
	}
	engine := analytics.NewEngine(store.New(db), append(opts, engineOpts...)...)

	categoryService := services.NewCategoryService(db)
	return Services{
		Users:        services.NewUserService(db),
		Categories:   categoryService,
		Transactions: services.NewTransactionService(db, categoryService, cfg.Location),
		Analytics:    services.NewAnalyticsService(engine),
		Audit:        services.NewAuditService(db),
		Location:     cfg.Location,
	}
}

// NewRouter builds the gin engine serving /api/health, /swagger and /api/v1.
func NewRouter(svc Services, allowedOrigin string) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit, svc.Location)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(allowedOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	protected.GET("/summary/monthly", analyticsHandler.GetMonthlySummary)
	protected.GET("/dashboard", analyticsHandler.GetDashboard)
	protected.GET("/reports/summary", analyticsHandler.GetReportSummary)

	return router
}
