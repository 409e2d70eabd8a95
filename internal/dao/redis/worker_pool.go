package redis

import (
	"go.uber.org/zap"
)

// SubmitTask 提交异步缓存任务
// 通道满时降级为同步执行，保证任务不丢失
func (c *redisCache) SubmitTask(action func()) {
	if action == nil {
		return
	}
	select {
	case c.tasks <- action:
		// 成功放入
	default:
		zap.L().Warn("Redis cache task channel full, executing synchronously")
		action()
	}
}

// startWorker 启动单个 Worker 消费循环
// panic 时记录日志并重启，避免 Worker 数量衰减
func (c *redisCache) startWorker() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("Redis cache worker panic", zap.Any("recover", r))
			go c.startWorker()
		}
	}()

	for task := range c.tasks {
		task()
	}
}
