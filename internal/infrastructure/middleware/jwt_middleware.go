package middleware

import (
	"net/http"
	"strings"

	"quick_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// JWTAuth JWT 认证中间件
// 验证 Access Token 并将 user_id 存入上下文
// 兼容两种携带方式：Authorization: Bearer <token> 和独立的 token 头
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "Unauthorized - No Token Provided")
			return
		}

		claims, err := jwt.ParseToken(token)
		if err != nil {
			abortUnauthorized(c, "Unauthorized - Invalid Token")
			return
		}
		if claims.Subject != "access_token" {
			abortUnauthorized(c, "Unauthorized - Invalid Token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// extractToken 从请求头取出 Token
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.GetHeader("token")
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
