package user

import (
	"gemshop_api/internal/domain/user/handler"
	"gemshop_api/internal/domain/user/repository"
	"gemshop_api/internal/domain/user/service"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/otp"
	"gemshop_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块可能依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	otpService := otp.NewOTPService(ctx.Redis)
	userService := service.NewUserService(userRepo, otpService)
	userHandler := handler.NewUserHandler(userService)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	// 公开路由
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.LoginOrRegister) // 登录/注册
		authGroup.POST("/otp", h.SendOTP)           // 发送验证码
	}

	// 受保护的路由
	userGroup := r.Group("/users")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateMe)
	}

	// 管理端放在独立前缀下，避免 /users/me 和 /users/:id 路由冲突
	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("", h.GetUsers)
		admin.GET("/:id", h.GetUser)
		admin.DELETE("/:id", h.DeleteUser)
	}
}
