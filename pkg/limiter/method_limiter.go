package limiter

import (
	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// MethodLimiter 按 "请求方法 + 路由模板" 限流
type MethodLimiter struct {
	*Limiter
}

// NewMethodLimiter 创建 MethodLimiter
func NewMethodLimiter() Face {
	return MethodLimiter{
		Limiter: &Limiter{buckets: make(map[string]*ratelimit.Bucket)},
	}
}

// Key 使用路由模板（如 /api/notes/:id）而不是实际路径，同一路由共享一个桶
func (l MethodLimiter) Key(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return c.Request.Method + " " + path
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.addBuckets(rules...)
	return l
}
