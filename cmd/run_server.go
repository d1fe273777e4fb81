package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	internalApp "github.com/haierkeys/note-keeper-service/internal/app"
	"github.com/haierkeys/note-keeper-service/internal/routers"
	"github.com/haierkeys/note-keeper-service/internal/task"
	"github.com/haierkeys/note-keeper-service/pkg/logger"
	"github.com/haierkeys/note-keeper-service/pkg/safe_close"
	"github.com/haierkeys/note-keeper-service/pkg/validator"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Server struct {
	logger            *zap.Logger             // Logger // 日志对象
	ut                *ut.UniversalTranslator // Translator // 翻译器
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App // App Container
}

// applyRunFlags 命令行参数优先于配置文件
func applyRunFlags(cfg *internalApp.AppConfig, runEnv *runFlags) {
	if runEnv.port != "" {
		port := runEnv.port
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		cfg.Server.HttpPort = port
	}
	// 生产环境始终使用 release 模式
	if runEnv.runMode != "" && !cfg.IsProduction() {
		cfg.Server.RunMode = runEnv.runMode
	}
	if cfg.Server.RunMode == "" {
		cfg.Server.RunMode = gin.ReleaseMode
	}
}

// NewServer 加载配置并启动服务
// store 非 nil 时使用传入的进程级存储，服务关闭时不会关闭它
func NewServer(runEnv *runFlags, store *internalApp.Store) (*Server, error) {

	// 使用 LoadConfig 直接加载配置到 AppConfig
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyRunFlags(appConfig, runEnv)
	gin.SetMode(appConfig.Server.RunMode)

	s := &Server{
		sc: safe_close.NewSafeClose(),
	}

	// 初始化日志器（使用注入的配置）
	lg, err := logger.NewLogger(appConfig.GetLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	s.logger = lg

	// 初始化 App Container，未传入存储时在这里选定，数据库不可用时启动失败
	var appOpts []internalApp.Option
	if store != nil {
		if !store.Matches(appConfig) {
			s.logger.Warn("database config changed, restart the service to switch store",
				zap.String("store", store.Kind()))
		}
		appOpts = append(appOpts, internalApp.WithStore(store))
	}
	app, err := internalApp.NewApp(appConfig, s.logger, appOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	// 初始化验证器
	uni, err := validator.Install()
	if err != nil {
		_ = app.Shutdown(context.Background())
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	// 启动调度器
	initScheduler(s)

	banner := `
    _   __      __           __ __
   / | / /___  / /____      / //_/__  ___  ____  ___  _____
  /  |/ / __ \/ __/ _ \    / ,< / _ \/ _ \/ __ \/ _ \/ ___/
 / /|  / /_/ / /_/  __/   / /| /  __/  __/ /_/ /  __/ /
/_/ |_/\____/\__/\___/   /_/ |_\___/\___/ .___/\___/_/
                                       /_/                `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded",
		zap.String("path", configRealpath),
		zap.String("environment", appConfig.App.Environment),
		zap.String("store", app.StoreKind()))

	// 启动 HTTP API 服务器
	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", appConfig.Server.HttpPort))
		s.httpServer = &http.Server{
			Addr:           appConfig.Server.HttpPort,
			Handler:        routers.NewRouter(s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.attachHTTPServer("api service", s.httpServer)
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", appConfig.Server.PrivateHttpListen))
		s.privateHttpServer = &http.Server{
			Addr:           appConfig.Server.PrivateHttpListen,
			Handler:        routers.NewPrivateRouter(appConfig.Server.RunMode, s.logger, prometheus.DefaultGatherer),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.attachHTTPServer("private api service", s.privateHttpServer)
	}

	// 注册 App Container 的优雅关闭（使用 Shutdown 方法）
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app != nil {
			// 使用带超时的优雅关闭
			ctx, cancel := context.WithTimeout(context.Background(), internalApp.DefaultShutdownTimeout)
			defer cancel()

			if err := s.app.Shutdown(ctx); err != nil {
				s.logger.Error("failed to shutdown app container", zap.Error(err))
			} else {
				s.logger.Info("App container shutdown gracefully")
			}
		}
	})

	return s, nil
}

// attachHTTPServer 运行 HTTP 服务，收到关闭信号后 5 秒内停止
func (s *Server) attachHTTPServer(name string, srv *http.Server) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			s.logger.Error(name+" err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// 停止HTTP服务器
			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	})
}

func initScheduler(s *Server) {
	// 创建任务管理器
	manager := task.NewManager(s.logger, s.sc, s.app)

	// 注册所有任务(业务层控制)
	if err := manager.RegisterTasks(); err != nil {
		s.logger.Error("failed to register tasks", zap.Error(err))
		return
	}

	// 启动任务调度器
	manager.Start()
}
