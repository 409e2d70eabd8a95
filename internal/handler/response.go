package handler

import (
	"errors"
	"net/http"

	"quick_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// HandleSuccess 返回成功响应
// 统一信封：payload 上附加 success=true
func HandleSuccess(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(status, payload)
}

// HandleError 通用错误处理
// 业务错误按错误码映射 HTTP 状态；未知错误记日志并返回 500
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		status := httpStatus(codeErr.Code)
		if status >= http.StatusInternalServerError {
			zap.L().Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Int("code", codeErr.Code),
				zap.Error(err),
			)
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": codeErr.Msg,
		})
		return
	}

	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal Server Error",
	})
}

// HandleParamError 处理参数绑定错误，validator 错误经翻译后返回
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		translatedErrs := RemoveTopStruct(validationErrs.Translate(Trans))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": translatedErrs,
		})
		return
	}

	zap.L().Warn("param bind error", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "invalid request parameters",
	})
}

// httpStatus 业务错误码到 HTTP 状态码的映射
func httpStatus(code int) int {
	switch code {
	case errorx.CodeInvalidParam, errorx.CodeUserExist, errorx.CodeUserNotExist:
		return http.StatusBadRequest
	case errorx.CodeInvalidPassword, errorx.CodeUnauthorized:
		return http.StatusUnauthorized
	case errorx.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
