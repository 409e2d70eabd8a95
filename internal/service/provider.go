package service

import (
	"quick_chat_server/internal/dao/mysql/repository"
	myredis "quick_chat_server/internal/dao/redis"
	"quick_chat_server/internal/infrastructure/imagestore"
	"quick_chat_server/internal/service/message"
	"quick_chat_server/internal/service/user"
)

// Services 业务层聚合，main 中组装后注入 Handler
type Services struct {
	User    UserService
	Message MessageService
}

// NewServices 组装全部业务实例
func NewServices(repos *repository.Repositories, cache myredis.CacheService,
	images imagestore.Store, deliverer message.Deliverer) *Services {
	return &Services{
		User:    user.NewUserService(repos.User, cache, images),
		Message: message.NewMessageService(repos.User, repos.Message, cache, images, deliverer),
	}
}
