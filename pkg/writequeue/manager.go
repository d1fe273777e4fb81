// Package writequeue serializes write operations per key
// Package writequeue 按 key 串行化写操作
// SQLite 只允许单写者，同一张表的写操作经由同一队列执行以避免 "database is locked"
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// 错误定义
var (
	// ErrWriteQueueFull 队列已满
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 管理器已关闭
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 写操作超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	// QueueCapacity 每个 key 的队列容量，默认 100
	QueueCapacity int
	// WriteTimeout 写操作等待超时，默认 30 秒
	WriteTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

type keyQueue struct {
	key string
	ch  chan writeOp
}

// Manager 管理所有 key 的写队列
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	queues map[string]*keyQueue
	closed bool
	wg     sync.WaitGroup

	done chan struct{}
}

// New 创建写队列管理器，cfg 为 nil 时使用默认配置
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		config: c,
		logger: logger,
		queues: make(map[string]*keyQueue),
		done:   make(chan struct{}),
	}
}

// Execute 提交写操作并等待结果，同一 key 的操作按 FIFO 顺序逐个执行
func (m *Manager) Execute(ctx context.Context, key string, fn func() error) error {
	q, err := m.queue(key)
	if err != nil {
		return err
	}

	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case q.ch <- op:
	default:
		return ErrWriteQueueFull
	}

	timeout := m.config.WriteTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	}
}

// queue 获取或懒创建 key 对应的队列
func (m *Manager) queue(key string) (*keyQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrWriteQueueClosed
	}
	if q, ok := m.queues[key]; ok {
		return q, nil
	}

	q := &keyQueue{key: key, ch: make(chan writeOp, m.config.QueueCapacity)}
	m.queues[key] = q
	m.wg.Add(1)
	go m.worker(q)

	m.logger.Debug("created write queue", zap.String("key", key), zap.Int("capacity", m.config.QueueCapacity))
	return q, nil
}

func (m *Manager) worker(q *keyQueue) {
	defer m.wg.Done()
	for {
		select {
		case op := <-q.ch:
			m.executeOp(op)
		case <-m.done:
			// 关闭前执行完已入队的操作
			for {
				select {
				case op := <-q.ch:
					m.executeOp(op)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) executeOp(op writeOp) {
	if err := op.ctx.Err(); err != nil {
		op.result <- err
		return
	}
	op.result <- op.fn()
}

// Shutdown 关闭管理器并等待已入队的操作完成，ctx 控制等待超时
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.done)
	m.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		m.logger.Info("write queue manager shutdown completed")
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout")
		return ctx.Err()
	}
}

// QueuedCount 返回 key 对应队列中等待的操作数
func (m *Manager) QueuedCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.queues[key]; ok {
		return len(q.ch)
	}
	return 0
}

// IsClosed 返回管理器是否已关闭
func (m *Manager) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
