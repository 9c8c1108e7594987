package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "chaton2api-go/internal/errors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Recovery 返回一个 panic 恢复中间件
func Recovery() gin.HandlerFunc {
	return RecoveryWithWriter(nil)
}

// RecoveryWithWriter 返回一个带自定义回调的 panic 恢复中间件
// 响应体统一为 OpenAI 兼容的错误结构
func RecoveryWithWriter(writer gin.RecoveryFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				rid, _ := c.Get("request_id")
				log.WithFields(log.Fields{
					"error":      err,
					"stack":      string(debug.Stack()),
					"request_id": rid,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
				}).Error("Panic recovered")

				if writer != nil {
					writer(c, err)
				}

				// 流式响应已经写出头部时无法再改状态码
				if c.Writer.Written() {
					c.Abort()
					return
				}
				apiErr := apperrors.New(http.StatusInternalServerError, "panic_recovered",
					apperrors.ErrorTypeInvalidRequest, fmt.Sprintf("internal error: %v", err))
				payload, _ := apiErr.ToJSON()
				c.Data(http.StatusInternalServerError, "application/json", payload)
				c.Abort()
			}
		}()

		c.Next()
	}
}

// SafeGo 安全地启动 goroutine，带 panic 恢复
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(log.Fields{
					"goroutine": name,
					"error":     err,
					"stack":     string(debug.Stack()),
				}).Error("Goroutine panic recovered")
			}
		}()
		fn()
	}()
}
