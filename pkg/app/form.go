package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
)

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string
	Message string
}

// ValidErrors 校验错误集合
type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 返回所有错误消息
func (v ValidErrors) ErrorsToString() []string {
	return v.Errors()
}

// MapsToString 返回 字段 -> 错误消息
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters and validates them
// 写请求在缺少 Content-Type 时按 JSON 解析
// BindAndValid 绑定请求参数并校验
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var err error
	switch c.Request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if c.ContentType() == "" || c.ContentType() == binding.MIMEJSON {
			err = c.ShouldBindJSON(v)
		} else {
			err = c.ShouldBind(v)
		}
	default:
		err = c.ShouldBindQuery(v)
	}
	if err == nil {
		return true, nil
	}

	var errs ValidErrors
	verrs, ok := err.(validatorV10.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
		return false, errs
	}

	trans, found := c.Value(TransKey).(ut.Translator)
	if !found {
		for _, fe := range verrs {
			errs = append(errs, &ValidError{Key: fe.Namespace(), Message: fe.Error()})
		}
		return false, errs
	}

	for key, value := range verrs.Translate(trans) {
		errs = append(errs, &ValidError{Key: key, Message: value})
	}
	return false, errs
}
