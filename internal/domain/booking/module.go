package booking

import (
	"gemshop_api/internal/domain/booking/handler"
	"gemshop_api/internal/domain/booking/repository"
	"gemshop_api/internal/domain/booking/service"
	catalogrepo "gemshop_api/internal/domain/catalog/repository"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// BookingModule 服务预约模块
type BookingModule struct{}

func init() {
	registry.Register(&BookingModule{})
}

func (m *BookingModule) Name() string {
	return "booking"
}

func (m *BookingModule) Priority() int {
	return 15
}

func (m *BookingModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入 (服务项目查询走 catalog 仓储)
	bRepo := repository.NewBookingRepository(ctx.DB)
	cRepo := catalogrepo.NewCatalogRepository(ctx.DB)
	bService := service.NewBookingService(bRepo, cRepo)
	bHandler := handler.NewBookingHandler(bService)

	// 2. 路由注册
	setupRoutes(ctx.Router, bHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.BookingHandler) {
	auth := r.Group("/bookings")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.CreateBooking)
		auth.GET("/my", h.GetMyBookings)
		auth.POST("/:id/cancel", h.CancelBooking)
	}

	admin := r.Group("/admin/bookings")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/:id/complete", h.CompleteBooking)
	}
}
