package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/config"
	"github.com/prajapatkavitha/restaurant-management-project/internal/handler"
	"github.com/prajapatkavitha/restaurant-management-project/internal/middleware"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
	"github.com/prajapatkavitha/restaurant-management-project/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	salesRepo := repository.NewSalesReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	menuSvc := service.NewMenuService(menuRepo, categoryRepo, rdb)
	orderSvc := service.NewOrderService(orderRepo, menuRepo, dispatcher)
	reservationSvc := service.NewReservationService(reservationRepo)
	couponSvc := service.NewCouponService(couponRepo, cfg.CouponCodeLength)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, orderRepo)

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		loc = time.UTC
	}
	reportSvc := service.NewReportService(orderRepo, rdb,
		time.Duration(cfg.ReportCacheTTLMinutes)*time.Minute, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	menuH := handler.NewMenuHandler(menuSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	reservationsH := handler.NewReservationsHandler(reservationSvc)
	couponsH := handler.NewCouponsHandler(couponSvc)
	feedbackH := handler.NewFeedbackHandler(feedbackSvc)
	reportsH := handler.NewReportsHandler(reportSvc, salesRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(authSvc)
	v1 := r.Group("/v1", jwtMW)
	{
		// Profile (any authenticated user)
		v1.GET("/me", authH.Me)
		v1.PATCH("/me", authH.UpdateMe)

		// User administration — admin only
		users := v1.Group("/users", middleware.RequireCapability(role.CapUserManage))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.POST("/:id/reactivate", usersH.Reactivate)
		}

		// Menu — everyone authenticated can read, writers need the capability
		v1.GET("/menu", menuH.List)
		v1.GET("/menu/:id", menuH.Get)
		menu := v1.Group("/menu", middleware.RequireCapability(role.CapMenuWrite))
		{
			menu.POST("", menuH.Create)
			menu.PUT("/:id", menuH.Update)
			menu.DELETE("/:id", menuH.Remove)
		}

		v1.GET("/categories", categoriesH.List)
		v1.GET("/categories/:id", categoriesH.Get)
		categories := v1.Group("/categories", middleware.RequireCapability(role.CapMenuWrite))
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Remove)
		}

		// Orders — creation open to customers and staff, listing scoped by role
		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.RequireCapability(role.CapOrderCreate), ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.PUT("/:id/items", middleware.RequireStaff(), ordersH.ReplaceItems)
			orders.PATCH("/:id/status", middleware.RequireCapability(role.CapOrderTransition), ordersH.Transition)

			// Feedback rides on the order it reviews
			orders.POST("/:id/feedback", feedbackH.Submit)
			orders.GET("/:id/feedback", feedbackH.GetForOrder)
		}

		// Reservations
		reservations := v1.Group("/reservations")
		{
			reservations.POST("", reservationsH.Create)
			reservations.GET("", reservationsH.List)
			reservations.DELETE("/:id", reservationsH.Cancel)
		}

		// Coupons — redemption open to all, management gated
		v1.POST("/coupons/redeem", couponsH.Redeem)
		coupons := v1.Group("/coupons", middleware.RequireCapability(role.CapCouponManage))
		{
			coupons.POST("", couponsH.Issue)
			coupons.GET("", couponsH.List)
			coupons.DELETE("/:id", couponsH.Deactivate)
		}

		v1.GET("/feedback", middleware.RequireStaff(), feedbackH.List)

		// Reports — manager and admin
		reports := v1.Group("/reports", middleware.RequireCapability(role.CapReportView))
		{
			reports.GET("/top-customers", reportsH.TopCustomers)
			reports.GET("/popular-dishes", reportsH.PopularDishes)
			reports.GET("/daily-summary", reportsH.DailySummary)
			reports.GET("/sales", reportsH.ListSales)
			reports.GET("/sales/:date/pdf", reportsH.DownloadSalesPDF)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
