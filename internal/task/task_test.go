package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/note-keeper-service/internal/app"
	"github.com/haierkeys/note-keeper-service/internal/dto"
	"github.com/haierkeys/note-keeper-service/pkg/safe_close"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeTask struct {
	name     string
	schedule string
	startup  bool
	runs     atomic.Int32
	run      func() error
}

func (f *fakeTask) Name() string       { return f.name }
func (f *fakeTask) Schedule() string   { return f.schedule }
func (f *fakeTask) IsStartupRun() bool { return f.startup }
func (f *fakeTask) Run(context.Context) error {
	f.runs.Add(1)
	if f.run != nil {
		return f.run()
	}
	return nil
}

// inline 同步执行任务
func inline(ctx context.Context, fn func(context.Context) error) error {
	_ = fn(ctx)
	return nil
}

type fixedCounter struct {
	n   int64
	err error
}

func (c fixedCounter) Count(context.Context) (int64, error) { return c.n, c.err }

func TestScheduler_StartupRun(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc, inline)

	startup := &fakeTask{name: "startup", startup: true}
	later := &fakeTask{name: "later", schedule: "@every 1h"}
	require.NoError(t, s.AddTask(startup))
	require.NoError(t, s.AddTask(later))
	assert.Len(t, s.Tasks(), 2)

	s.Start()
	assert.Equal(t, int32(1), startup.runs.Load())
	assert.Equal(t, int32(0), later.runs.Load())

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestScheduler_CronFires(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc, inline)

	task := &fakeTask{name: "tick", schedule: "@every 1s"}
	require.NoError(t, s.AddTask(task))
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(zap.NewNop(), safe_close.NewSafeClose(), inline)
	err := s.AddTask(&fakeTask{name: "bad", schedule: "every now and then"})
	assert.Error(t, err)
	assert.Empty(t, s.Tasks())
}

func TestScheduler_RecoversPanicAndLogsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewScheduler(zap.New(core), safe_close.NewSafeClose(), inline)

	panicking := &fakeTask{name: "boom", run: func() error { panic("boom") }}
	failing := &fakeTask{name: "fail", run: func() error { return errors.New("nope") }}

	assert.NotPanics(t, func() { s.dispatch(panicking, "startupRun") })
	s.dispatch(failing, "startupRun")

	assert.Equal(t, 1, logs.FilterMessage("task startupRun panic").Len())
	assert.Equal(t, 1, logs.FilterMessage("task running error").Len())
}

func TestScheduler_SubmitRejected(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	reject := func(context.Context, func(context.Context) error) error { return errors.New("pool full") }
	s := NewScheduler(zap.New(core), safe_close.NewSafeClose(), reject)

	task := &fakeTask{name: "skipped"}
	s.dispatch(task, "loopRun")

	assert.Equal(t, int32(0), task.runs.Load())
	assert.Equal(t, 1, logs.FilterMessage("task skipped").Len())
}

func TestNoteStatsTask(t *testing.T) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_notes_total"})

	task := NewNoteStatsTask(fixedCounter{n: 7}, "@every 1m", gauge)
	assert.Equal(t, "NoteStats", task.Name())
	assert.Equal(t, "@every 1m", task.Schedule())
	assert.True(t, task.IsStartupRun())

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 7.0, testutil.ToFloat64(gauge))

	// 失败时保留上一次的值
	failing := NewNoteStatsTask(fixedCounter{err: errors.New("db down")}, "", gauge)
	assert.Error(t, failing.Run(context.Background()))
	assert.Equal(t, 7.0, testutil.ToFloat64(gauge))
}

func TestManager_RunsRegisteredTasksInWorkerPool(t *testing.T) {
	cfg := &app.AppConfig{}
	cfg.App.NoteStatsInterval = "@every 1h"
	a, err := app.NewApp(cfg, zap.NewNop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := a.NoteService.Create(context.Background(), &dto.NoteCreateRequest{Title: "n"})
		require.NoError(t, err)
	}

	sc := safe_close.NewSafeClose()
	m := NewManager(zap.NewNop(), sc, a)
	require.NoError(t, m.RegisterTasks())
	m.Start()

	assert.Eventually(t, func() bool { return testutil.ToFloat64(notesTotal) == 3 }, 5*time.Second, 20*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
	require.NoError(t, a.Shutdown(context.Background()))
}

func TestManager_DisabledTask(t *testing.T) {
	cfg := &app.AppConfig{}
	a, err := app.NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	m := NewManager(zap.NewNop(), safe_close.NewSafeClose(), a)
	require.NoError(t, m.RegisterTasks())
	assert.Empty(t, m.scheduler.Tasks())
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	factories := GetFactories()
	require.NotEmpty(t, factories)
	factories[0] = nil
	assert.NotNil(t, GetFactories()[0])
}
