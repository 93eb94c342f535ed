package catalog

import (
	"gemshop_api/internal/domain/catalog/handler"
	"gemshop_api/internal/domain/catalog/repository"
	"gemshop_api/internal/domain/catalog/service"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/registry"
	"gemshop_api/pkg/cache"

	"github.com/gin-gonic/gin"
)

// CatalogModule 商品/店铺模块
type CatalogModule struct{}

func init() {
	registry.Register(&CatalogModule{})
}

func (m *CatalogModule) Name() string {
	return "catalog"
}

func (m *CatalogModule) Priority() int {
	return 10
}

func (m *CatalogModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	cRepo := repository.NewCatalogRepository(ctx.DB)
	cacheService := cache.NewRedisCache(ctx.Redis)
	cService := service.NewCatalogService(cRepo, cacheService)
	cHandler := handler.NewCatalogHandler(cService)

	// 2. 路由注册
	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CatalogHandler) {
	// 公开浏览
	r.GET("/shops", h.GetShops)
	r.GET("/shops/:id", h.GetShop)
	r.GET("/products", h.GetProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/services", h.GetServices)

	// 需要登录的写操作
	auth := r.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/shops", h.CreateShop)

		// 上架商品需要管理员权限（店主后台在单独的 B 端，这里只留运营入口）
		admin := auth.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.POST("/services", h.CreateService)
		}
	}
}
