package routers

import (
	"expvar"
	"net/http/pprof"

	"github.com/haierkeys/note-keeper-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DefaultPrefix pprof 路由前缀
const DefaultPrefix = "/debug/pprof"

// pprofProfiles 通过 pprof.Handler 暴露的运行时 profile
var pprofProfiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// NewPrivateRouter 创建私有监听的路由
// /metrics 输出 gatherer 中的指标，gatherer 为 nil 时使用默认注册表
// pprof 仅在 debug 模式下挂载
func NewPrivateRouter(runMode string, logger *zap.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(logger))

	r.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(logger),
	})))

	if runMode != gin.DebugMode {
		return r
	}

	p := r.Group(DefaultPrefix)
	p.GET("/", gin.WrapF(pprof.Index))
	p.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	p.GET("/profile", gin.WrapF(pprof.Profile))
	p.Any("/symbol", gin.WrapF(pprof.Symbol))
	p.GET("/trace", gin.WrapF(pprof.Trace))
	for _, name := range pprofProfiles {
		p.GET("/"+name, gin.WrapH(pprof.Handler(name)))
	}

	return r
}
