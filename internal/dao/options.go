package dao

import (
	"time"

	"github.com/haierkeys/note-keeper-service/pkg/writequeue"

	"github.com/google/uuid"
)

// Option 仓储构造选项
type Option func(*options)

type options struct {
	now        func() time.Time
	newID      func() string
	writeQueue *writequeue.Manager
}

func defaultOptions() *options {
	return &options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithClock 替换时间来源，便于测试
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = func() time.Time { return now().UTC() }
		}
	}
}

// WithIDGenerator 替换 ID 生成器
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

// WithWriteQueue 写操作经由写队列串行执行，仅数据库存储使用
func WithWriteQueue(m *writequeue.Manager) Option {
	return func(o *options) {
		o.writeQueue = m
	}
}
