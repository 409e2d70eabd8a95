package constants

const (
	CHANNEL_SIZE               = 100              // hub 事件通道大小
	CONN_SEND_SIZE             = 64               // 单个连接出站缓冲大小
	IMAGE_MAX_SIZE             = 10 * 1024 * 1024 // 内嵌图片最大大小 (10MB)
	PASSWORD_MIN_LEN           = 6                // 密码最小长度
	REDIS_TIMEOUT              = 1                // redis 单次操作超时 (秒)
	MESSAGE_CACHE_EXPIRY       = 30               // 历史记录缓存过期时间 (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 720              // Refresh Token 有效期（小时），720小时 = 30天
)
