package order

import (
	catalogrepo "gemshop_api/internal/domain/catalog/repository"
	catalogsvc "gemshop_api/internal/domain/catalog/service"
	"gemshop_api/internal/domain/order/handler"
	"gemshop_api/internal/domain/order/processor"
	"gemshop_api/internal/domain/order/repository"
	"gemshop_api/internal/domain/order/service"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/registry"
	"gemshop_api/pkg/cache"
	"gemshop_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderModule 订单模块
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	return 20
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	oRepo := repository.NewOrderRepository(ctx.DB)
	cRepo := catalogrepo.NewCatalogRepository(ctx.DB)
	cService := catalogsvc.NewCatalogService(cRepo, cache.NewRedisCache(ctx.Redis))
	oService := service.NewOrderService(oRepo, cService)

	// 2. 注册已配置的支付渠道（缺配置的渠道跳过，不阻塞启动）
	registerProcessors(oService)

	oHandler := handler.NewOrderHandler(oService)

	// 3. 路由注册
	setupRoutes(ctx.Router, oHandler)

	return nil
}

func registerProcessors(s service.OrderService) {
	if p, err := processor.NewStripeProcessor(); err == nil {
		s.RegisterProcessor(p)
	} else {
		logger.Log.Warn("Stripe processor not registered", zap.Error(err))
	}

	if p, err := processor.NewAlipayProcessor(); err == nil {
		s.RegisterProcessor(p)
	} else {
		logger.Log.Warn("Alipay processor not registered", zap.Error(err))
	}

	if p, err := processor.NewWechatProcessor(); err == nil {
		s.RegisterProcessor(p)
	} else {
		logger.Log.Warn("Wechat processor not registered", zap.Error(err))
	}
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	// 客户端支付流程的回调入口，不走登录态
	r.POST("/orders", h.CreateOrder)
	r.POST("/orders/verify", h.VerifyOrder)

	auth := r.Group("/orders")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/my", h.GetMyOrders)
		auth.GET("/slug/:slug", h.GetOrderBySlug)
	}

	admin := r.Group("/admin/orders")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/:id", h.GetOrder)
	}
}
