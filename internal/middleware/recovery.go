package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/note-keeper-service/pkg/code"
	"github.com/haierkeys/note-keeper-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
// panic 细节只写日志，响应中不返回
func RecoveryWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if rec := recover(); rec != nil {
				fields := []zap.Field{
					zap.String("router", path),
					zap.String("method", c.Request.Method),
					zap.String("query", query),
					zap.String("ip", c.ClientIP()),
					zap.String("user-agent", c.Request.UserAgent()),
					zap.String("trace_id", c.GetString(TraceIDKey)),
					zap.String("stack", string(debug.Stack())), // 错误堆栈
				}

				var cause error
				switch v := rec.(type) {
				case error:
					cause = v
					logger.Error("Recovered from panic", append(fields, zap.Error(v))...)
				default:
					cause = fmt.Errorf("%v", v)
					logger.Error("Recovered from unknown panic", append(fields, zap.String("panic_value", cause.Error()))...)
				}

				// 返回统一的错误响应
				errors.ErrorResponseWithCode(c, code.ErrorServerInternal, cause)
			}
		}()

		c.Next()
	}
}
