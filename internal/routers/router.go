package routers

import (
	"time"

	"github.com/haierkeys/note-keeper-service/docs"
	"github.com/haierkeys/note-keeper-service/internal/app"
	"github.com/haierkeys/note-keeper-service/internal/middleware"
	"github.com/haierkeys/note-keeper-service/internal/routers/api_router"
	"github.com/haierkeys/note-keeper-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// writeRoutes 参与限流的写接口（路由模板）
var writeRoutes = []string{
	"POST /api/notes",
	"PUT /api/notes/:id",
	"PATCH /api/notes/:id",
	"DELETE /api/notes/:id",
	"POST /notes",
	"PUT /notes/:id",
	"PATCH /notes/:id",
	"DELETE /notes/:id",
}

// newWriteLimiter 按配置为写接口创建令牌桶，rate <= 0 时不限流
func newWriteLimiter(rate, capacity int64) limiter.Face {
	l := limiter.NewMethodLimiter()
	if rate <= 0 {
		return l
	}
	if capacity < rate {
		capacity = rate
	}
	rules := make([]limiter.BucketRule, 0, len(writeRoutes))
	for _, key := range writeRoutes {
		rules = append(rules, limiter.BucketRule{
			Key:          key,
			FillInterval: time.Second,
			Capacity:     capacity,
			Quantum:      rate,
		})
	}
	return l.AddBuckets(rules...)
}

// NewRouter 创建公开 HTTP 路由
// 笔记接口同时挂载在 /api 与根路径下
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()
	logger := appContainer.Logger()

	docs.SwaggerInfo.Version = appContainer.Version().Version

	r := gin.New()
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
	r.Use(middleware.AccessLogWithLogger(logger))
	r.Use(middleware.RecoveryWithLogger(logger))
	r.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer).Handler())
	r.Use(middleware.Cors(cfg.Cors.AllowOrigins))
	r.Use(middleware.LangWithTranslator(uni))
	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))

	healthHandler := api_router.NewHealthHandler(appContainer)
	versionHandler := api_router.NewVersionHandler(appContainer)
	noteHandler := api_router.NewNoteHandler(appContainer)

	r.GET("/", healthHandler.Root)
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimiter := middleware.RateLimiter(newWriteLimiter(cfg.App.WriteRateLimit, cfg.App.WriteRateCapacity))
	timeout := middleware.ContextTimeout(cfg.GetContextTimeout())

	mountNotes := func(g *gin.RouterGroup) {
		notes := g.Group("/notes", rateLimiter, timeout)
		{
			notes.POST("", noteHandler.Create)
			notes.GET("", noteHandler.List)
			notes.GET("/:id", noteHandler.Get)
			notes.PUT("/:id", noteHandler.Replace)
			notes.PATCH("/:id", noteHandler.Update)
			notes.DELETE("/:id", noteHandler.Delete)
		}
	}

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)
		mountNotes(api)
	}
	mountNotes(&r.RouterGroup)

	r.NoRoute(middleware.NoFound())

	return r
}
