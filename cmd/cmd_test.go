package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	internalApp "github.com/haierkeys/note-keeper-service/internal/app"
	"github.com/haierkeys/note-keeper-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBootstrapLogger(t *testing.T) {
	var buf bytes.Buffer
	lg := newBootstrapLogger(&buf, false, true)
	lg.Debug("hidden")
	lg.Info("config loaded")
	_ = lg.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"config loaded"`)
	assert.Contains(t, out, `"logger":"bootstrap"`)

	buf.Reset()
	lg = newBootstrapLogger(&buf, true, false)
	lg.Debug("visible")
	_ = lg.Sync()
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), `"msg"`)
}

func TestApplyRunFlags(t *testing.T) {
	cfg := &internalApp.AppConfig{}
	cfg.Server.HttpPort = ":8000"
	cfg.Server.RunMode = "release"

	applyRunFlags(cfg, &runFlags{port: "9090", runMode: "debug"})
	assert.Equal(t, ":9090", cfg.Server.HttpPort)
	assert.Equal(t, "debug", cfg.Server.RunMode)

	applyRunFlags(cfg, &runFlags{port: "127.0.0.1:7000"})
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.HttpPort)
	assert.Equal(t, "debug", cfg.Server.RunMode)

	prod := &internalApp.AppConfig{}
	prod.App.Environment = "production"
	prod.Server.RunMode = "release"
	applyRunFlags(prod, &runFlags{runMode: "debug"})
	assert.Equal(t, "release", prod.Server.RunMode)

	empty := &internalApp.AppConfig{}
	applyRunFlags(empty, &runFlags{})
	assert.Equal(t, "release", empty.Server.RunMode)
}

func TestWriteDefaultConfig(t *testing.T) {
	old := configDefault
	configDefault = "server:\n  http-port: \":8100\"\n"
	t.Cleanup(func() { configDefault = old })

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configDefault, string(data))
}

func TestConfigCommandMasksPassword(t *testing.T) {
	t.Setenv("NOTES_DB_URL", "")
	t.Setenv("NOTES_DB_PASSWORD", "secret-pass")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  name: notes\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "-c", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.NotContains(t, out.String(), "secret-pass")
	assert.Contains(t, out.String(), "******")
	assert.Contains(t, out.String(), "notes")
}

func TestStoreName(t *testing.T) {
	cfg := &internalApp.AppConfig{}
	assert.Equal(t, "memory", storeName(cfg))
	cfg.Database.URL = "sqlite://notes.db"
	assert.Equal(t, "database", storeName(cfg))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), internalApp.Name)
	assert.Contains(t, out.String(), "v"+internalApp.Version)
}

// writeServerConfig 写入不监听端口、不启动定时任务的配置
func writeServerConfig(t *testing.T, dbURL string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`server:
  http-port: ""
  private-http-listen: ""
log:
  file: %q
database:
  url: %q
app:
  note-stats-interval: ""
`, filepath.Join(dir, "logs", "log.log"), dbURL)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// restart 模拟配置热重载：关闭旧服务后用同一个存储重新创建
func restart(t *testing.T, s *Server, env *runFlags, store *internalApp.Store) *Server {
	t.Helper()
	s.sc.SendCloseSignal(nil)
	require.NoError(t, s.sc.WaitClosed())
	next, err := NewServer(env, store)
	require.NoError(t, err)
	return next
}

func TestServerReloadKeepsMemoryNotes(t *testing.T) {
	t.Setenv("NOTES_DB_URL", "")
	env := &runFlags{config: writeServerConfig(t, "")}

	store, err := openStore(env)
	require.NoError(t, err)
	t.Cleanup(func() { closeStore(store) })

	s1, err := NewServer(env, store)
	require.NoError(t, err)
	created, err := s1.app.NoteService.Create(context.Background(), &dto.NoteCreateRequest{Title: "keep me"})
	require.NoError(t, err)

	s2 := restart(t, s1, env, store)
	t.Cleanup(func() {
		s2.sc.SendCloseSignal(nil)
		_ = s2.sc.WaitClosed()
	})

	got, err := s2.app.NoteService.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Title)
	assert.Same(t, store, s2.app.Store)
}

func TestServerReloadKeepsSQLiteStoreOpen(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "notes.db")
	t.Setenv("NOTES_DB_URL", dbURL)
	env := &runFlags{config: writeServerConfig(t, dbURL)}

	store, err := openStore(env)
	require.NoError(t, err)
	t.Cleanup(func() { closeStore(store) })

	s1, err := NewServer(env, store)
	require.NoError(t, err)
	_, err = s1.app.NoteService.Create(context.Background(), &dto.NoteCreateRequest{Title: "persisted"})
	require.NoError(t, err)

	s2 := restart(t, s1, env, store)
	t.Cleanup(func() {
		s2.sc.SendCloseSignal(nil)
		_ = s2.sc.WaitClosed()
	})

	// 旧服务关闭后数据库连接与写队列仍可用
	_, err = s2.app.NoteService.Create(context.Background(), &dto.NoteCreateRequest{Title: "after reload"})
	require.NoError(t, err)
	n, err := s2.app.NoteService.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
