package task

import (
	"context"
	"fmt"

	"github.com/haierkeys/note-keeper-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Schedule() string              // cron 表达式，支持 @every 1m 等描述符，为空时只在启动时执行
	IsStartupRun() bool            // 是否立即执行一次
}

// SubmitFunc 把任务交给执行器（一般为 App 的 Worker Pool）
type SubmitFunc func(ctx context.Context, fn func(context.Context) error) error

// cronParser 支持可选秒字段与描述符
var cronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler 任务调度器
// cron 只负责触发，任务本身在 submit 提供的执行器中运行
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
	cron   *cron.Cron
	submit SubmitFunc
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose, submit SubmitFunc) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
		cron:   cron.New(cron.WithParser(cronParser)),
		submit: submit,
	}
}

// AddTask 添加任务，cron 表达式无效时返回错误
func (s *Scheduler) AddTask(task Task) error {
	if expr := task.Schedule(); expr != "" {
		if _, err := s.cron.AddFunc(expr, func() { s.dispatch(task, "loopRun") }); err != nil {
			return fmt.Errorf("task %s: invalid schedule %q: %w", task.Name(), expr, err)
		}
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Tasks 已注册的任务
func (s *Scheduler) Tasks() []Task {
	return s.tasks
}

// Start 启动所有任务，收到关闭信号后停止 cron 并等待正在触发的任务投递完成
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting ", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		if task.IsStartupRun() {
			s.dispatch(task, "startupRun")
		}
	}

	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		<-s.cron.Stop().Done()
		s.logger.Info("tasks stopped", zap.Int("count", len(s.tasks)))
	})
}

// dispatch 投递一次任务执行，执行器已满或已关闭时跳过本次
func (s *Scheduler) dispatch(task Task, trigger string) {
	err := s.submit(context.Background(), func(ctx context.Context) error {
		return s.run(ctx, task, trigger)
	})
	if err != nil {
		s.logger.Warn("task skipped",
			zap.String("name", task.Name()),
			zap.String("trigger", trigger),
			zap.Error(err))
	}
}

// run 执行任务并恢复 panic
func (s *Scheduler) run(ctx context.Context, task Task, trigger string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task "+trigger+" panic",
				zap.String("name", task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
			err = fmt.Errorf("task %s panic: %v", task.Name(), r)
		}
	}()

	s.logger.Debug("task running", zap.String("name", task.Name()), zap.String("trigger", trigger))
	if err = task.Run(ctx); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("trigger", trigger),
			zap.Error(err))
	}
	return err
}
