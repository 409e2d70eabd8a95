// Package redis 提供 Redis 缓存操作的封装
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"quick_chat_server/internal/config"
	"quick_chat_server/pkg/errorx"

	"github.com/redis/go-redis/v9"
)

// redisCache CacheService 的 Redis 实现
type redisCache struct {
	client *redis.Client
	tasks  chan func()
}

// cacheService 全局缓存服务实例
var cacheService CacheService

// Init 初始化 Redis 连接
// 从配置文件读取连接参数并创建客户端实例
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
		// 连接池配置
		PoolSize:     50,
		MinIdleConns: 8,
	})

	// 8 个 Worker，缓冲区 1024，供各 Service 共享的异步缓存更新通道
	cacheService = NewRedisCache(client, 8, 1024)
}

// GetCacheService 获取缓存服务实例
func GetCacheService() CacheService {
	return cacheService
}

// NewRedisCache 创建 Redis 缓存服务并启动 Worker Pool
func NewRedisCache(client *redis.Client, workerNum, bufferSize int) CacheService {
	c := &redisCache{
		client: client,
		tasks:  make(chan func(), bufferSize),
	}
	for i := 0; i < workerNum; i++ {
		go c.startWorker()
	}
	return c
}

// Get 获取键对应的值
// 如果键不存在，返回空字符串和 nil（不视为错误）
func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get key %s", key)
	}
	return value, nil
}

// SetEx 设置键值对并指定过期时间
func (c *redisCache) SetEx(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set key %s", key)
	}
	return nil
}

// Del 删除一个或多个键
func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis del keys %v", keys)
	}
	return nil
}
