package feed

import (
	"gemshop_api/internal/domain/feed/handler"
	"gemshop_api/internal/domain/feed/repository"
	"gemshop_api/internal/domain/feed/service"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// FeedModule 社区信息流模块
type FeedModule struct{}

func init() {
	registry.Register(&FeedModule{})
}

func (m *FeedModule) Name() string {
	return "feed"
}

func (m *FeedModule) Priority() int {
	return 50
}

func (m *FeedModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	fRepo := repository.NewFeedRepository(ctx.DB)
	fService := service.NewFeedService(fRepo)
	fHandler := handler.NewFeedHandler(fService)

	// 2. 路由注册
	setupRoutes(ctx.Router, fHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.FeedHandler) {
	// 公开浏览
	r.GET("/feed", h.GetFeed)
	r.GET("/posts/:id", h.GetPost)
	r.GET("/posts/:id/comments", h.GetPostComments)
	r.GET("/topics", h.GetTopics)

	// 需要登录的写操作
	auth := r.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/posts", h.PublishPost)
		auth.POST("/posts/:id/comments", h.AddComment)
		auth.POST("/likes", h.ToggleLike)
	}

	// 审核在管理端
	admin := r.Group("/admin/posts")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/pending", h.GetPendingPosts)
		admin.PUT("/:id/status", h.AuditPost)
	}
}
