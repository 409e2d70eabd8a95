// Package redis 提供 Redis 缓存操作的封装
// 本文件定义缓存服务接口，供 Service 层依赖注入使用
package redis

import (
	"context"
	"time"
)

// CacheService 缓存服务接口
// Service 层只依赖该接口，测试时可注入内存实现
type CacheService interface {
	// Get 获取键对应的值，键不存在返回空字符串（不视为错误）
	Get(ctx context.Context, key string) (string, error)
	// SetEx 设置键值对并指定过期时间
	SetEx(ctx context.Context, key string, value string, ttl time.Duration) error
	// Del 删除一个或多个键，键不存在不报错
	Del(ctx context.Context, keys ...string) error
	// SubmitTask 提交异步缓存任务到 Worker Pool
	SubmitTask(action func())
}
