// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"errors"
	"net/http"

	"github.com/haierkeys/note-keeper-service/internal/app"
	pkgapp "github.com/haierkeys/note-keeper-service/pkg/app"
	"github.com/haierkeys/note-keeper-service/pkg/code"

	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录处理失败，服务端错误记 Error，客户端错误（如 404）只记 Debug
func (h *Handler) logError(ctx context.Context, method string, err error) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("trace_id", pkgapp.GetTraceID(ctx)),
		zap.Error(err),
	}

	var c *code.Code
	if errors.As(err, &c) && c.StatusCode() < http.StatusInternalServerError {
		h.App.Logger().Debug("request rejected", fields...)
		return
	}
	h.App.Logger().Error("request failed", fields...)
}
