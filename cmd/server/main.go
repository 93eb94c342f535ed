package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "gemshop_api/internal/domain/booking"
	_ "gemshop_api/internal/domain/catalog"
	_ "gemshop_api/internal/domain/challenge"
	_ "gemshop_api/internal/domain/feed"
	_ "gemshop_api/internal/domain/gems"
	_ "gemshop_api/internal/domain/order"
	_ "gemshop_api/internal/domain/user"

	_ "gemshop_api/docs"

	"gemshop_api/internal/pkg/common"
	"gemshop_api/internal/pkg/config"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/push"
	"gemshop_api/internal/pkg/registry"
	"gemshop_api/internal/pkg/uploader"
	"gemshop_api/pkg/database"
	"gemshop_api/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Gemshop API
// @version 1.0
// @description 购物/社区应用后端：店铺、商品、预约、订单核销、宝石经济、挑战、社区
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.InitLogger(config.GlobalConfig.App.Env)
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	rdb := database.InitRedis()

	// 3. 可选的推送/上传服务 (缺配置时跳过，不阻塞启动)
	if err := push.InitPushService(); err != nil {
		logger.Log.Warn("Push service disabled", zap.Error(err))
	}
	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("Uploader disabled", zap.Error(err))
	}

	// 4. HTTP 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	// 移动端直连，放开来源，带上鉴权头
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	r.Use(cors.New(corsConfig))

	// 5. 运维端点
	r.GET("/metrics", middleware.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 媒体上传
	upload := r.Group("/upload")
	upload.Use(middleware.AuthMiddleware())
	{
		upload.POST("", common.UploadFile)
	}

	// 6. 业务模块初始化 (按优先级注入依赖并挂路由)
	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Router: r,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	// 7. 启动与优雅退出
	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", config.GlobalConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
	logger.Log.Info("Server exited")
}
