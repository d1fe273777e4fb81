// Package safe_close coordinates graceful shutdown of long running goroutines
// Package safe_close 协调常驻协程的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose 关闭信号控制器
// Attach 的每个处理器在收到关闭信号后必须调用 done
type SafeClose struct {
	closeOnce   sync.Once
	closeSignal chan struct{}
	wg          sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewSafeClose 创建 SafeClose
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个关闭处理器并在新的协程中运行
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() { once.Do(s.wg.Done) }
	go fn(done, s.closeSignal)
}

// SendCloseSignal 发送关闭信号，可以重复调用，只记录第一个错误
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	if s.err == nil && err != nil {
		s.err = err
	}
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		close(s.closeSignal)
	})
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed 等待所有处理器结束，返回第一个关闭错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
