package gems

import (
	"gemshop_api/internal/domain/gems/client"
	"gemshop_api/internal/domain/gems/handler"
	"gemshop_api/internal/domain/gems/service"
	userrepo "gemshop_api/internal/domain/user/repository"
	"gemshop_api/internal/pkg/config"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// GemsModule 宝石模块
// 余额和流水的事实来源是外部账本服务，这里只做鉴权、符号折算和转发
type GemsModule struct{}

func init() {
	registry.Register(&GemsModule{})
}

func (m *GemsModule) Name() string {
	return "gems"
}

func (m *GemsModule) Priority() int {
	return 30
}

func (m *GemsModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	ledgerClient := client.NewLedgerClient(config.GlobalConfig.Ledger)
	uRepo := userrepo.NewUserRepository(ctx.DB)
	gService := service.NewGemsService(ledgerClient, uRepo)
	gHandler := handler.NewGemsHandler(gService)

	// 2. 路由注册 (全部要登录态)
	setupRoutes(ctx.Router, gHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.GemsHandler) {
	gems := r.Group("/gems")
	gems.Use(middleware.AuthMiddleware())
	{
		gems.POST("/transaction", h.Adjust)
		gems.GET("/balance", h.GetBalance)
	}
}
