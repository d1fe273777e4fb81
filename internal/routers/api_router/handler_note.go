package api_router

import (
	"github.com/haierkeys/note-keeper-service/internal/app"
	"github.com/haierkeys/note-keeper-service/internal/dto"
	pkgapp "github.com/haierkeys/note-keeper-service/pkg/app"
	"github.com/haierkeys/note-keeper-service/pkg/code"
	apperrors "github.com/haierkeys/note-keeper-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// invalid 输出参数校验失败响应
func (h *NoteHandler) invalid(c *gin.Context, method string, errs pkgapp.ValidErrors) {
	h.App.Logger().Debug(method+".BindAndValid err", zap.Error(errs))
	apperrors.ErrorResponseWithCode(c, code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()...).WithData(errs.MapsToString()), errs)
}

// Create 创建笔记
// @Summary 创建笔记
// @Description 创建一条新笔记，id 与时间戳由服务端生成
// @Tags 笔记
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "笔记内容"
// @Success 201 {object} dto.NoteDTO "创建成功"
// @Failure 400 {object} apperrors.AppError "参数验证失败"
// @Router /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalid(c, "NoteHandler.Create", errs)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseData(code.Created, note)
}

// List 获取笔记列表
// @Summary 获取笔记列表
// @Description 按插入顺序分页返回笔记，q 不为空时按标题或内容做不区分大小写的包含匹配
// @Tags 笔记
// @Produce json
// @Param params query dto.NoteListRequest true "查询参数"
// @Success 200 {object} dto.NotePageDTO "成功"
// @Failure 400 {object} apperrors.AppError "参数验证失败"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalid(c, "NoteHandler.List", errs)
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.NoteService.List(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseData(code.Success, page)
}

// Get 获取单条笔记
// @Summary 获取笔记详情
// @Tags 笔记
// @Produce json
// @Param id path string true "笔记 ID"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 404 {object} apperrors.AppError "笔记不存在"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, c.Param("id"))
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseData(code.Success, note)
}

// Replace 整体替换笔记
// @Summary 替换笔记
// @Description 用请求体整体替换笔记，未提供的 content 与 tags 会被清空
// @Tags 笔记
// @Accept json
// @Produce json
// @Param id path string true "笔记 ID"
// @Param params body dto.NoteReplaceRequest true "笔记内容"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 400 {object} apperrors.AppError "参数验证失败"
// @Failure 404 {object} apperrors.AppError "笔记不存在"
// @Router /api/notes/{id} [put]
func (h *NoteHandler) Replace(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteReplaceRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalid(c, "NoteHandler.Replace", errs)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Replace(ctx, c.Param("id"), params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Replace", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseData(code.Success, note)
}

// Update 局部更新笔记
// @Summary 局部更新笔记
// @Description 只修改请求体中出现且不为 null 的字段
// @Tags 笔记
// @Accept json
// @Produce json
// @Param id path string true "笔记 ID"
// @Param params body dto.NoteUpdateRequest true "需要修改的字段"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 400 {object} apperrors.AppError "参数验证失败"
// @Failure 404 {object} apperrors.AppError "笔记不存在"
// @Router /api/notes/{id} [patch]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalid(c, "NoteHandler.Update", errs)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Update(ctx, c.Param("id"), params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseData(code.Success, note)
}

// Delete 删除笔记
// @Summary 删除笔记
// @Tags 笔记
// @Param id path string true "笔记 ID"
// @Success 204 "删除成功"
// @Failure 404 {object} apperrors.AppError "笔记不存在"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, c.Param("id")); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseEmpty(code.Deleted)
}
