// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/haierkeys/note-keeper-service/internal/service"
	pkgapp "github.com/haierkeys/note-keeper-service/pkg/app"
	"github.com/haierkeys/note-keeper-service/pkg/tracer"
	"github.com/haierkeys/note-keeper-service/pkg/workerpool"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// App 应用容器，封装所有依赖和服务
type App struct {
	config *AppConfig
	logger *zap.Logger

	// Store 笔记存储，ownsStore 为 false 时由调用方负责关闭
	Store     *Store
	ownsStore bool

	workerPool   *workerpool.Pool
	tracerCloser io.Closer

	// Service 层
	NoteService service.NoteService

	startedAt  time.Time
	shutdownCh chan struct{}
}

// Option App 构造选项
type Option func(*App)

// WithStore 使用外部创建的存储，App 关闭时不会关闭它
func WithStore(st *Store) Option {
	return func(a *App) {
		a.Store = st
	}
}

// NewApp 创建应用容器实例
// 未通过 WithStore 注入存储时按配置自行创建，并在 Shutdown 时关闭
func NewApp(cfg *AppConfig, logger *zap.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		startedAt:  time.Now(),
		shutdownCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Store == nil {
		st, err := OpenStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		a.Store = st
		a.ownsStore = true
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	if cfg.Tracer.Enabled && cfg.Tracer.AgentHost != "" {
		_, closer, err := tracer.NewJaegerTracer(cfg.Tracer.ServiceName, cfg.Tracer.AgentHost)
		if err != nil {
			_ = a.Shutdown(context.Background())
			return nil, err
		}
		a.tracerCloser = closer
	}

	a.NoteService = service.NewNoteService(a.Store.Repo, logger, &service.ServiceConfig{
		SlowThreshold: cfg.GetSlowStoreThreshold(),
	})

	logger.Info("App container initialized successfully",
		zap.String("store", a.Store.Kind()),
		zap.Bool("sharedStore", !a.ownsStore),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Uptime 进程已运行时间
func (a *App) Uptime() time.Duration {
	return time.Since(a.startedAt)
}

// StoreKind 当前存储实现名称
func (a *App) StoreKind() string {
	return a.Store.Kind()
}

// Ping 检查存储可用性
func (a *App) Ping(ctx context.Context) error {
	return a.Store.Ping(ctx)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Worker Pool -> Tracer -> Store（仅自行创建的存储）
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	var errs []error

	// 停止接受新任务，等待现有任务完成
	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	if a.tracerCloser != nil {
		if err := a.tracerCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close tracer: %w", err))
		}
	}

	if a.ownsStore && a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}
