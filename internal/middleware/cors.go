package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Cors 跨域中间件
// allowOrigins 为空或包含 "*" 时允许任意来源，否则只回显列表中的来源（忽略末尾的 /）
// 不在列表中的来源返回 403，没有 Origin 头的请求不受影响
func Cors(allowOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Lang", DefaultTraceIDHeader},
		ExposeHeaders:    []string{"Content-Length", DefaultTraceIDHeader},
		MaxAge:           24 * time.Hour,
		AllowCredentials: false,
	}

	allowed := make(map[string]struct{}, len(allowOrigins))
	allowAll := len(allowOrigins) == 0
	for _, o := range allowOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOriginFunc = func(origin string) bool {
			_, ok := allowed[strings.TrimRight(origin, "/")]
			return ok
		}
	}

	return cors.New(cfg)
}
