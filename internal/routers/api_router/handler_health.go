// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/haierkeys/note-keeper-service/internal/app"
	"github.com/haierkeys/note-keeper-service/internal/dao"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/process"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string       `json:"status"`             // "healthy" 或 "unhealthy"
	Version  string       `json:"version"`            // 服务版本号
	Uptime   float64      `json:"uptime"`             // 运行时间（秒）
	Store    string       `json:"store"`              // memory 或 database
	Database string       `json:"database,omitempty"` // "connected" 或 "error"，内存存储时为空
	Notes    int64        `json:"notes"`              // 笔记总数
	Process  *ProcessInfo `json:"process,omitempty"`
}

// ProcessInfo 进程运行信息
type ProcessInfo struct {
	PID           int32   `json:"pid"`
	NumGoroutine  int     `json:"numGoroutine"`
	RSS           uint64  `json:"rss"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float32 `json:"memoryPercent"`
}

// Root 根路径存活检查
// @Summary 存活检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string "{"message":"Healthy"}"
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.Set("status_code", http.StatusOK)
	c.JSON(http.StatusOK, gin.H{"message": "Healthy"})
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，数据库存储时同时检查数据库连接，关闭过程中返回 503
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	response := HealthResponse{
		Status:  "healthy",
		Version: h.App.Version().Version,
		Uptime:  h.App.Uptime().Seconds(),
		Store:   h.App.StoreKind(),
		Process: processInfo(ctx),
	}

	status := http.StatusOK

	if h.App.IsShuttingDown() {
		response.Status = "shutting_down"
		status = http.StatusServiceUnavailable
	} else if response.Store == dao.KindDatabase {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		response.Database = "connected"
		if err := h.App.Ping(pingCtx); err != nil {
			h.logError(ctx, "HealthHandler.Check", err)
			response.Status = "unhealthy"
			response.Database = "error"
			status = http.StatusServiceUnavailable
		}
	}

	if status == http.StatusOK {
		if n, err := h.App.NoteService.Count(ctx); err == nil {
			response.Notes = n
		}
	}

	c.Set("status_code", status)
	c.JSON(status, response)
}

// processInfo 读取当前进程的资源占用，读取失败时返回 nil
func processInfo(ctx context.Context) *ProcessInfo {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return nil
	}

	info := &ProcessInfo{
		PID:          p.Pid,
		NumGoroutine: runtime.NumGoroutine(),
	}
	if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		info.RSS = mem.RSS
	}
	info.CPUPercent, _ = p.CPUPercentWithContext(ctx)
	info.MemoryPercent, _ = p.MemoryPercentWithContext(ctx)
	return info
}
