package middleware

import (
	"time"

	"github.com/haierkeys/note-keeper-service/pkg/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLogWithLogger 创建访问日志中间件（使用注入的日志器）
// 5xx 记为 Error，4xx 记为 Warn，其余为 Info
func AccessLogWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		startTime := time.Now()
		c.Next()

		timeCost := time.Since(startTime)
		status := c.Writer.Status()

		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}

		url := path
		if query != "" {
			url += "?" + query
		}

		logger.Log(level, path,
			zap.String("method", c.Request.Method),
			zap.String("url", url),
			zap.Int("status", status),
			zap.String("start-time", startTime.Format("2006-01-02 15:04:05")),
			zap.Duration("time-cost", timeCost),
			zap.String("ip", app.GetRequestIP(c)),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String("trace_id", c.GetString(TraceIDKey)),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}
