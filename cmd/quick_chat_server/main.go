package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quick_chat_server/internal/config"
	dao "quick_chat_server/internal/dao/mysql"
	myredis "quick_chat_server/internal/dao/redis"
	"quick_chat_server/internal/handler"
	"quick_chat_server/internal/http_server"
	"quick_chat_server/internal/infrastructure/imagestore"
	"quick_chat_server/internal/infrastructure/logger"
	"quick_chat_server/internal/service"
	"quick_chat_server/internal/service/chat"
	"quick_chat_server/pkg/util/jwt"
	"quick_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	// 3. 初始化参数校验错误翻译器
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	// 4. 初始化数据库
	dao.Init()
	zap.L().Info("mysql initialized")

	// 5. 初始化 Redis
	myredis.Init()
	zap.L().Info("redis initialized")

	// 6. 初始化 JWT 和雪花 ID 节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()

	// 7. 启动聊天中枢
	hub := chat.NewHub()
	go hub.Start()
	zap.L().Info("chat hub started")

	// 8. 组装 Service 和 Handler 层
	images := imagestore.NewLocalStore(conf.StaticSrcConfig.StaticImagePath)
	services := service.NewServices(dao.Repos, myredis.GetCacheService(), images, hub)
	handlers := handler.NewHandlers(services, hub)

	// 9. 初始化 HTTP 服务器并启动
	engine := http_server.Init(handlers)
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("server started",
		zap.String("host", conf.MainConfig.Host),
		zap.Int("port", conf.MainConfig.Port),
	)

	// 10. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down...")
	hub.Close()
	zap.L().Info("server stopped")
}
