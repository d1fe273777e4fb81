package code

import "net/http"

var (
	Success = NewSuss(1, http.StatusOK, lang{en: "Success", zh_cn: "成功"})
	Created = NewSuss(2, http.StatusCreated, lang{en: "Created", zh_cn: "创建成功"})
	Deleted = NewSuss(3, http.StatusNoContent, lang{en: "Deleted", zh_cn: "删除成功"})

	Failed                = NewError(400, http.StatusInternalServerError, lang{en: "Failed", zh_cn: "失败"})
	ErrorServerInternal   = NewError(500, http.StatusInternalServerError, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams    = NewError(501, http.StatusBadRequest, lang{en: "Invalid params", zh_cn: "参数验证失败"})
	ErrorNotFoundAPI      = NewError(502, http.StatusNotFound, lang{en: "Not found", zh_cn: "找不到"})
	ErrorTooManyRequests  = NewError(503, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery          = NewError(504, http.StatusInternalServerError, lang{en: "Database query error", zh_cn: "数据库查询出错"})
	ErrorStoreUnavailable = NewError(505, http.StatusInternalServerError, lang{en: "Database integration not configured", zh_cn: "数据库未配置"})

	ErrorNoteNotFound = NewError(431, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
)
