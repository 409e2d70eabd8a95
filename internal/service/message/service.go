// Package message 实现消息业务：联系人列表、历史记录、已读标记、消息发送
package message

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"quick_chat_server/internal/dao/mysql/repository"
	myredis "quick_chat_server/internal/dao/redis"
	"quick_chat_server/internal/dto/request"
	"quick_chat_server/internal/dto/respond"
	"quick_chat_server/internal/infrastructure/imagestore"
	"quick_chat_server/internal/model"
	"quick_chat_server/pkg/constants"
	"quick_chat_server/pkg/errorx"
	"quick_chat_server/pkg/util/snowflake"
)

// Deliverer 在线投递入口，由聊天中枢实现
// 持久化完成后通知它，接收方在线则立即收到 receive-message 推送
type Deliverer interface {
	Deliver(msg *respond.MessageRespond)
}

type messageService struct {
	users     repository.UserRepository
	messages  repository.MessageRepository
	cache     myredis.CacheService
	images    imagestore.Store
	deliverer Deliverer
}

// NewMessageService 创建消息业务实例
func NewMessageService(users repository.UserRepository, messages repository.MessageRepository,
	cache myredis.CacheService, images imagestore.Store, deliverer Deliverer) *messageService {
	return &messageService{
		users:     users,
		messages:  messages,
		cache:     cache,
		images:    images,
		deliverer: deliverer,
	}
}

// GetSidebarUsers 返回除调用者外的全部用户和按发送方统计的未读条数
func (s *messageService) GetSidebarUsers(userId string) (*respond.SidebarRespond, error) {
	users, err := s.users.FindAllExcept(userId)
	if err != nil {
		return nil, err
	}
	counts, err := s.messages.CountUnreadBySender(userId)
	if err != nil {
		return nil, err
	}

	rsp := &respond.SidebarRespond{
		Users:          make([]respond.UserRespond, 0, len(users)),
		UnseenMessages: counts,
	}
	for i := range users {
		rsp.Users = append(rsp.Users, *respond.NewUserRespond(&users[i]))
	}
	return rsp, nil
}

// GetMessageList 返回与对端的双向历史记录，按时间升序
// 副作用：对端发来的未读消息置为已读
// 已读标记随拉取方向而变，缓存键因此按视角区分：命中自己的键即意味着
// 本侧已经标记过，缓存里只会有"已读后"的视图
func (s *messageService) GetMessageList(userId, peerId string) ([]respond.MessageRespond, error) {
	key := historyCacheKey(userId, peerId)

	ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
	cached, err := s.cache.Get(ctx, key)
	cancel()
	if err != nil {
		zap.L().Warn("read message cache failed", zap.Error(err))
	} else if cached != "" {
		var rsp []respond.MessageRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Warn("corrupt message cache, fallback to db", zap.String("key", key))
	}

	msgs, err := s.messages.FindBetween(userId, peerId)
	if err != nil {
		return nil, err
	}
	flipped, err := s.messages.MarkRead(peerId, userId)
	if err != nil {
		return nil, err
	}
	if flipped > 0 {
		// 对端缓存的视图里这些消息还是未读，连带失效
		s.invalidateKey(historyCacheKey(peerId, userId))
	}

	rsp := make([]respond.MessageRespond, 0, len(msgs))
	for i := range msgs {
		m := respond.NewMessageRespond(&msgs[i])
		if m.SenderId == peerId {
			m.IsRead = true
		}
		rsp = append(rsp, *m)
	}

	if data, err := json.Marshal(rsp); err == nil {
		s.cache.SubmitTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
			defer cancel()
			if err := s.cache.SetEx(ctx, key, string(data), constants.MESSAGE_CACHE_EXPIRY*time.Minute); err != nil {
				zap.L().Warn("write message cache failed", zap.Error(err))
			}
		})
	}
	return rsp, nil
}

// MarkSeen 将对端发给调用者的未读消息置为已读，返回更新条数
func (s *messageService) MarkSeen(userId, peerId string) (int64, error) {
	n, err := s.messages.MarkRead(peerId, userId)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidateHistory(userId, peerId)
	}
	return n, nil
}

// SendMessage 发送一条消息
// 顺序固定：内容校验、图片上传、持久化、缓存失效、在线投递
// 任一前置步骤失败都不会产生半成品消息
func (s *messageService) SendMessage(senderId, receiverId string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if strings.TrimSpace(req.Text) == "" && req.Image == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "Message must contain text or image")
	}
	if _, err := s.users.FindByUuid(receiverId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "Receiver not found")
		}
		return nil, err
	}

	imageUrl := ""
	if req.Image != "" {
		url, err := s.images.Save(req.Image)
		if err != nil {
			return nil, err
		}
		imageUrl = url
	}

	msg := &model.Message{
		Uuid:      snowflake.GenerateID(),
		SendId:    senderId,
		ReceiveId: receiverId,
		Content:   req.Text,
		ImageUrl:  imageUrl,
		IsRead:    false,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}
	s.invalidateHistory(senderId, receiverId)

	rsp := respond.NewMessageRespond(msg)
	s.deliverer.Deliver(rsp)
	return rsp, nil
}

// invalidateHistory 异步清除会话双方的历史缓存
// 任何一侧的写入或已读翻转都会让两个视角的缓存同时过期
func (s *messageService) invalidateHistory(userId, peerId string) {
	s.invalidateKey(historyCacheKey(userId, peerId))
	s.invalidateKey(historyCacheKey(peerId, userId))
}

func (s *messageService) invalidateKey(key string) {
	s.cache.SubmitTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
		defer cancel()
		if err := s.cache.Del(ctx, key); err != nil {
			zap.L().Warn("invalidate message cache failed", zap.String("key", key), zap.Error(err))
		}
	})
}

// historyCacheKey 按拉取视角区分的历史缓存键
// 同一会话双方各持一个键，拉取方的已读副作用只能由拉取方的缓存命中来承诺
func historyCacheKey(viewerId, peerId string) string {
	return "message_list_" + viewerId + "_" + peerId
}
