package handler

import (
	"errors"
	"net/http"

	"Lyra_Tube/pkg/apierr"
	"Lyra_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SuccessResponse 定义了标准的API成功响应结构
type SuccessResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 定义了标准的API错误响应结构
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// sendSuccessResponse 是一个辅助函数，用于发送标准格式的成功响应
func sendSuccessResponse(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, SuccessResponse{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	c.AbortWithStatusJSON(code, ErrorResponse{
		StatusCode: code,
		Message:    message,
		Success:    false,
		Errors:     errs,
	})
}

// handleServiceError 在handler边界把service层的错误翻译成响应：
// 业务错误带着自己的状态码和文案，其他一律500并打日志（内部细节不外泄）
func handleServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		sendErrorResponse(c, apiErr.StatusCode, apiErr.Message, apiErr.Errors...)
		return
	}
	logger.Log.WithError(err).Error("业务处理出现未预期错误")
	sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
}

// currentUserID 从context取出认证中间件放入的用户ID
// jwt.MapClaims中的数字会被解析为float64，这里统一转回uint64
func currentUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return uint64(f), true
}

// mustUserID 取不到用户ID时直接401响应，正常情况下认证中间件保证它存在
func mustUserID(c *gin.Context) (uint64, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return 0, false
	}
	return userID, true
}
