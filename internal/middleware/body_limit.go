package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// JSON和表单体的大小上限。文件上传走multipart，不在此限制内
const maxBodyBytes = 16 << 10

// BodyLimitMiddleware 限制非multipart请求体的大小，防止超大JSON拖垮解析
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if strings.HasPrefix(contentType, "application/json") ||
			strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		c.Next()
	}
}
