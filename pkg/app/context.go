package app

import (
	"context"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const (
	// TraceIDKey Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
	// LangKey Context 中存储请求语言的键
	LangKey = "lang"
	// TransKey Context 中存储翻译器的键
	TransKey = "trans"
)

// traceIDCtxKey request.Context 中的 Trace ID 键
const traceIDCtxKey ctxKey = TraceIDKey

// WithTraceID 将 Trace ID 注入 context.Context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDCtxKey, traceID)
}

// GetTraceID 从 context.Context 获取 Trace ID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDCtxKey).(string); ok {
		return id
	}
	return ""
}

// GetTraceIDFromGin 从 gin.Context 获取 Trace ID
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(TraceIDKey)
}

// GetLang 获取当前请求的语言，未设置时返回空字符串（使用全局默认语言）
func GetLang(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(LangKey)
}
