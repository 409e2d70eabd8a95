// Package http_server 提供 HTTP 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件、静态资源和路由
package http_server

import (
	"net/http"

	"quick_chat_server/internal/config"
	"quick_chat_server/internal/handler"
	"quick_chat_server/internal/infrastructure/logger"
	"quick_chat_server/internal/infrastructure/middleware"
	"quick_chat_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quick_chat_server/pkg/constants"
)

// bodyLimit 限制请求体大小
// 内嵌 base64 图片最大 10MB，再留出 JSON 包装的余量
func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// Init 初始化 HTTP 服务器并返回 Gin 引擎实例
// 配置顺序：中间件、CORS、静态资源、业务路由
func Init(handlers *handler.Handlers) *gin.Engine {
	conf := config.GetConfig()

	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	// 跨域规则：前端独立部署，放开来源限制
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "token"}
	engine.Use(cors.New(corsConfig))
	engine.Use(bodyLimit(constants.IMAGE_MAX_SIZE * 2))

	// TLS 重定向（由反向代理处理 SSL 时关闭）
	if conf.MainConfig.TLS {
		engine.Use(middleware.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	// 内嵌图片解码落盘后经此目录对外暴露
	engine.Static("/static/images", conf.StaticSrcConfig.StaticImagePath)

	router.RegisterRoutes(engine, handlers)

	return engine
}
