package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/note-keeper-service/pkg/app"
	"github.com/haierkeys/note-keeper-service/pkg/code"
	"github.com/haierkeys/note-keeper-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"traceId"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNoFound(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddlewareWithConfig(true, ""))
	r.NoRoute(NoFound())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set(DefaultTraceIDHeader, "abc")
	w := serve(r, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, code.ErrorNotFoundAPI.Code(), body.Code)
	assert.Equal(t, "abc", body.TraceID)
}

func TestRecoveryWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	r := gin.New()
	r.Use(RecoveryWithLogger(zap.New(core)))
	r.GET("/panic", func(*gin.Context) { panic("secret detail") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
	assert.Equal(t, code.ErrorServerInternal.Code(), decodeError(t, w).Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Recovered from unknown panic", logs.All()[0].Message)
}

func TestTraceMiddleware(t *testing.T) {
	var fromGin, fromCtx string

	r := gin.New()
	r.Use(TraceMiddlewareWithConfig(true, "X-Request-ID"))
	r.GET("/", func(c *gin.Context) {
		fromGin = app.GetTraceIDFromGin(c)
		fromCtx = app.GetTraceID(c.Request.Context())
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, fromGin)
	assert.Equal(t, fromGin, fromCtx)
	assert.Equal(t, fromGin, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given")
	w = serve(r, req)
	assert.Equal(t, "given", fromGin)
	assert.Equal(t, "given", w.Header().Get("X-Request-ID"))
}

func TestTraceMiddleware_Disabled(t *testing.T) {
	var got string
	r := gin.New()
	r.Use(TraceMiddlewareWithConfig(false, ""))
	r.GET("/", func(c *gin.Context) { got = app.GetTraceIDFromGin(c) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, got)
	assert.Empty(t, w.Header().Get(DefaultTraceIDHeader))
}

func TestContextTimeout(t *testing.T) {
	var deadline time.Time
	var ok bool

	r := gin.New()
	r.Use(ContextTimeout(time.Minute))
	r.GET("/", func(c *gin.Context) { deadline, ok = c.Request.Context().Deadline() })

	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	r = gin.New()
	r.Use(ContextTimeout(0))
	r.GET("/", func(c *gin.Context) { _, ok = c.Request.Context().Deadline() })
	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestLangWithTranslator(t *testing.T) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())

	var lang string
	var trans ut.Translator

	r := gin.New()
	r.Use(LangWithTranslator(uni))
	r.GET("/", func(c *gin.Context) {
		lang = app.GetLang(c)
		trans, _ = c.Value(app.TransKey).(ut.Translator)
	})

	cases := []struct {
		query, header, accept string
		wantLang, wantLocale  string
	}{
		{"", "", "", LangEN, "en"},
		{"zh-CN", "", "", LangZHCN, "zh"},
		{"", "zh_cn", "", LangZHCN, "zh"},
		{"", "", "zh-CN,zh;q=0.9,en;q=0.8", LangZHCN, "zh"},
		{"fr", "", "zh", LangEN, "en"},
	}
	for _, tc := range cases {
		target := "/"
		if tc.query != "" {
			target += "?lang=" + tc.query
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if tc.header != "" {
			req.Header.Set("lang", tc.header)
		}
		if tc.accept != "" {
			req.Header.Set("Accept-Language", tc.accept)
		}
		serve(r, req)

		assert.Equal(t, tc.wantLang, lang, target)
		require.NotNil(t, trans)
		assert.Equal(t, tc.wantLocale, trans.Locale(), target)
	}

	// 全局默认语言不受请求影响
	assert.Equal(t, code.FALLBACK_LNG, code.GetGlobalDefaultLang())
}

func TestRateLimiter(t *testing.T) {
	l := limiter.NewMethodLimiter().AddBuckets(limiter.BucketRule{
		Key:          "POST /notes",
		FillInterval: time.Hour,
		Capacity:     1,
		Quantum:      1,
	})

	r := gin.New()
	r.Use(RateLimiter(l))
	r.POST("/notes", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/notes", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusCreated, serve(r, httptest.NewRequest(http.MethodPost, "/notes", nil)).Code)

	w := serve(r, httptest.NewRequest(http.MethodPost, "/notes", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, code.ErrorTooManyRequests.Code(), decodeError(t, w).Code)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/notes", nil)).Code)
	}
}

func TestCors(t *testing.T) {
	r := gin.New()
	r.Use(Cors([]string{"https://app.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	w := serve(r, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	assert.Contains(t, w.Header().Get("Vary"), "Origin")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example/")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	// 没有 Origin 头的请求不做跨域处理
	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), strings.ToLower(DefaultTraceIDHeader))

	r = gin.New()
	r.Use(Cors([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://any.example")
	assert.Equal(t, "*", serve(r, req).Header().Get("Access-Control-Allow-Origin"))
}

func TestAccessLogWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(AccessLogWithLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/bad", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok?x=1", entries[0].ContextMap()["url"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestAppInfoWithConfig(t *testing.T) {
	var name, version string
	r := gin.New()
	r.Use(AppInfoWithConfig("notes", "1.2.3"))
	r.GET("/", func(c *gin.Context) {
		name = c.GetString("app_name")
		version = c.GetString("app_version")
	})
	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "notes", name)
	assert.Equal(t, "1.2.3", version)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	// 重复注册复用同一组指标
	assert.Same(t, m.requests, NewHTTPMetrics(reg).requests)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/notes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/notes/a", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/notes/b", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/notes/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestGenerateTraceIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := generateTraceID()
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Empty(t, app.GetTraceID(context.Background()))
}
