package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	internalApp "github.com/haierkeys/note-keeper-service/internal/app"
	"github.com/haierkeys/note-keeper-service/pkg/fileurl"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultConfigPath 找不到配置时写入默认配置的位置
const defaultConfigPath = "config/config.yaml"

type runFlags struct {
	dir     string // Project root directory // 项目根目录
	port    string // Startup port // 启动端口
	runMode string // Startup mode // 启动模式
	config  string // Specified configuration file path // 指定要使用的配置文件路径
}

// findConfigFile 按顺序查找配置文件，找不到时返回空字符串
func findConfigFile() string {
	for _, p := range []string{"config/config-dev.yaml", "config.yaml", defaultConfigPath} {
		if fileurl.IsExist(p) {
			return p
		}
	}
	return ""
}

// writeDefaultConfig 把内置的默认配置写入 path
func writeDefaultConfig(path string) error {
	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(configDefault), 0644); err != nil {
		return err
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return nil
}

// openStore 按启动时的配置创建进程级存储
func openStore(runEnv *runFlags) (*internalApp.Store, error) {
	cfg, _, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, err
	}
	return internalApp.OpenStore(cfg, bootstrapLogger)
}

func closeStore(store *internalApp.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), internalApp.DefaultShutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		bootstrapLogger.Error("store close error", zap.Error(err))
	}
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port] [-m mode]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				err := os.Chdir(runEnv.dir)
				if err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			if len(runEnv.config) <= 0 {
				runEnv.config = findConfigFile()
			}
			if len(runEnv.config) <= 0 {
				bootstrapLogger.Warn("config file not found, creating default config")
				runEnv.config = defaultConfigPath
				if err := writeDefaultConfig(runEnv.config); err != nil {
					bootstrapLogger.Error("config file auto create error", zap.Error(err))
					return
				}
			}

			// 存储在进程内只创建一次，配置热重载沿用同一个实例
			store, err := openStore(runEnv)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}

			s, err := NewServer(runEnv, store)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				closeStore(store)
				return
			}

			// 配置热重载时替换 s，读写都在 mu 下进行
			var mu sync.Mutex
			current := func() *Server {
				mu.Lock()
				defer mu.Unlock()
				return s
			}

			w := watcher.New()

			// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
			w.SetMaxEvents(1)

			// 只通知写入事件。
			w.FilterOps(watcher.Write)

			go func() {
				for {
					select {
					case event := <-w.Event:
						mu.Lock()
						s.logger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))

						// 等待旧服务释放端口与数据库后再重新初始化
						s.sc.SendCloseSignal(nil)
						if err := s.sc.WaitClosed(); err != nil {
							s.logger.Error("Shutdown completed with error", zap.Error(err))
						}

						next, err := NewServer(runEnv, store)
						if err != nil {
							bootstrapLogger.Error("service start err", zap.Error(err))
							mu.Unlock()
							continue
						}
						s = next
						mu.Unlock()

					case err := <-w.Error:
						current().logger.Error("config watcher error", zap.Error(err))
					case <-w.Closed:
						bootstrapLogger.Info("config watcher closed")
						return
					}
				}
			}()

			// 监听 config.yaml 文件
			if err := w.Add(runEnv.config); err != nil {
				s.logger.Error("config watcher file error", zap.Error(err))
			}

			go func() {
				if err := w.Start(time.Second * 5); err != nil {
					current().logger.Error("config watcher start error", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			w.Close()

			srv := current()
			srv.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			srv.sc.SendCloseSignal(nil)

			// 等待所有关闭处理器完成（包括 App Container 的优雅关闭）
			if err := srv.sc.WaitClosed(); err != nil {
				srv.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				srv.logger.Info("Service has been shut down gracefully.")
			}
			closeStore(store)
			_ = srv.logger.Sync()
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")

}
