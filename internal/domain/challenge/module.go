package challenge

import (
	"gemshop_api/internal/domain/challenge/handler"
	"gemshop_api/internal/domain/challenge/repository"
	"gemshop_api/internal/domain/challenge/service"
	gemsclient "gemshop_api/internal/domain/gems/client"
	gemssvc "gemshop_api/internal/domain/gems/service"
	userrepo "gemshop_api/internal/domain/user/repository"
	"gemshop_api/internal/pkg/config"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ChallengeModule 挑战模块
type ChallengeModule struct{}

func init() {
	registry.Register(&ChallengeModule{})
}

func (m *ChallengeModule) Name() string {
	return "challenge"
}

func (m *ChallengeModule) Priority() int {
	return 40
}

func (m *ChallengeModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入 (奖励入账复用 gems 服务)
	cRepo := repository.NewChallengeRepository(ctx.DB)
	ledgerClient := gemsclient.NewLedgerClient(config.GlobalConfig.Ledger)
	creditor := gemssvc.NewGemsService(ledgerClient, userrepo.NewUserRepository(ctx.DB))
	cService := service.NewChallengeService(cRepo, ctx.Redis, creditor)
	cHandler := handler.NewChallengeHandler(cService)

	// 2. 路由注册
	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ChallengeHandler) {
	// 公开浏览
	r.GET("/challenges", h.GetChallenges)
	r.GET("/challenges/:id", h.GetChallenge)

	auth := r.Group("/challenges")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/:id/claim", h.ClaimReward)
	}

	// 领取记录放在单独前缀下，避免和 /challenges/:id 冲突
	claims := r.Group("/claims")
	claims.Use(middleware.AuthMiddleware())
	{
		claims.GET("/my", h.GetMyClaims)
	}

	admin := r.Group("/admin/challenges")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateChallenge)
	}
}
