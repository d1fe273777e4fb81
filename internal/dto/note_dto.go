// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/note-keeper-service/pkg/timex"
)

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        string     `json:"id" example:"3f8e2a9c-6a55-4b5e-9d1c-2d1f6f0b7c11"`
	Title     string     `json:"title" example:"Shopping"`
	Content   *string    `json:"content" example:"buy milk"`
	Tags      []string   `json:"tags"`
	CreatedAt timex.Time `json:"created_at" copier:"-"`
	UpdatedAt timex.Time `json:"updated_at" copier:"-"`
}

// NotePageDTO Paged note list
// NotePageDTO 笔记分页结果，Total 为分页前的匹配数量
type NotePageDTO struct {
	Total int        `json:"total"`
	Items []*NoteDTO `json:"items"`
}

// NoteCreateRequest Request parameters for creating a note
// 创建笔记请求参数
type NoteCreateRequest struct {
	Title   string   `json:"title" form:"title" binding:"required,max=200" example:"Shopping"`
	Content *string  `json:"content" form:"content" example:"buy milk"`
	Tags    []string `json:"tags" form:"tags"`
}

// NoteReplaceRequest Request parameters for replacing a note wholesale
// 整体替换笔记请求参数，未提供的 content / tags 会被清空
type NoteReplaceRequest struct {
	Title   string   `json:"title" form:"title" binding:"required,max=200" example:"Shopping"`
	Content *string  `json:"content" form:"content"`
	Tags    []string `json:"tags" form:"tags"`
}

// NoteUpdateRequest Request parameters for partially updating a note
// 局部更新笔记请求参数，仅应用提供了的字段
type NoteUpdateRequest struct {
	Title   *string   `json:"title" form:"title" binding:"omitnil,max=200"`
	Content *string   `json:"content" form:"content"`
	Tags    *[]string `json:"tags" form:"tags"`
}

// NoteListRequest Query parameters for listing notes
// 笔记列表查询参数
type NoteListRequest struct {
	Q      string `json:"q" form:"q"`
	Limit  int    `json:"limit" form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `json:"offset" form:"offset,default=0" binding:"min=0"`
}

