package app

import (
	"net/http"

	"github.com/haierkeys/note-keeper-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func GetAccessHost(c *gin.Context) string {
	AccessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		AccessProto = "http" + "://"
	} else {
		AccessProto = proto + "://"
	}
	return AccessProto + c.Request.Host
}

// ToResponseData outputs data as the bare body with the code's HTTP status
// ToResponseData 直接输出数据本身（不包裹 Res），HTTP 状态码取自 Code
func (r *Response) ToResponseData(codeObj *code.Code, data interface{}) {
	r.send(codeObj.StatusCode(), data)
}

// ToResponseEmpty 只输出状态码，用于 204
func (r *Response) ToResponseEmpty(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())
	r.Ctx.Status(codeObj.StatusCode())
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.Set("status_code", statusCode)
	if statusCode == http.StatusNoContent {
		r.Ctx.Status(statusCode)
		return
	}
	r.Ctx.JSON(statusCode, content)
}
