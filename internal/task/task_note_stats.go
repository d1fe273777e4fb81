package task

import (
	"context"

	"github.com/haierkeys/note-keeper-service/internal/app"

	"github.com/prometheus/client_golang/prometheus"
)

// NoteCounter 提供笔记总数
type NoteCounter interface {
	Count(ctx context.Context) (int64, error)
}

// notesTotal 笔记总数指标
var notesTotal = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "note_keeper_notes_total",
	Help: "Number of notes currently stored.",
})

func init() {
	prometheus.MustRegister(notesTotal)

	Register(func(a *app.App) (Task, error) {
		expr := a.Config().App.NoteStatsInterval
		if expr == "" {
			return nil, nil
		}
		return NewNoteStatsTask(a.NoteService, expr, notesTotal), nil
	})
}

// NoteStatsTask 定期把笔记总数写入 prometheus gauge
type NoteStatsTask struct {
	counter  NoteCounter
	schedule string
	gauge    prometheus.Gauge
}

// NewNoteStatsTask 创建笔记统计任务
func NewNoteStatsTask(counter NoteCounter, schedule string, gauge prometheus.Gauge) *NoteStatsTask {
	return &NoteStatsTask{counter: counter, schedule: schedule, gauge: gauge}
}

// Name 返回任务名称
func (t *NoteStatsTask) Name() string {
	return "NoteStats"
}

// Schedule 返回 cron 表达式
func (t *NoteStatsTask) Schedule() string {
	return t.schedule
}

// IsStartupRun 是否立即执行一次
func (t *NoteStatsTask) IsStartupRun() bool {
	return true
}

// Run 统计笔记总数，失败时保留上一次的值
func (t *NoteStatsTask) Run(ctx context.Context) error {
	n, err := t.counter.Count(ctx)
	if err != nil {
		return err
	}
	t.gauge.Set(float64(n))
	return nil
}
