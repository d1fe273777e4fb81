package middleware

import (
	"strings"

	"github.com/haierkeys/note-keeper-service/pkg/app"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// 支持的响应语言
const (
	LangEN   = "en"
	LangZHCN = "zh_cn"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// 语言来源依次为 ?lang=、lang 请求头、Accept-Language，未识别时使用英文
// 语言只写入当前请求上下文，不修改全局默认语言
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var raw string

		if s, exist := c.GetQuery("lang"); exist {
			raw = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			raw = s
		} else {
			raw = c.GetHeader("Accept-Language")
		}

		lang, locale := resolveLang(raw)
		c.Set(app.LangKey, lang)

		if uni != nil {
			trans, found := uni.GetTranslator(locale)
			if !found {
				trans, _ = uni.GetTranslator(LangEN)
			}
			c.Set(app.TransKey, trans)
		}

		c.Next()
	}
}

// resolveLang 返回 (响应语言, 翻译器 locale)
func resolveLang(raw string) (string, string) {
	// Accept-Language: zh-CN,zh;q=0.9,en;q=0.8 只取第一项
	if i := strings.IndexAny(raw, ",;"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "-", "_")))

	if raw == "zh" || strings.HasPrefix(raw, "zh_") {
		return LangZHCN, "zh"
	}
	return LangEN, LangEN
}
