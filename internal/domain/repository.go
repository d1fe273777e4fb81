// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口
// 找不到笔记不是错误：Get / Replace / Update 返回 nil，Delete 返回 false
type NoteRepository interface {
	// Create 创建笔记，分配 ID 与时间戳
	Create(ctx context.Context, draft NoteDraft) (*Note, error)

	// Get 根据ID获取笔记
	Get(ctx context.Context, id string) (*Note, error)

	// List 按关键字过滤后分页，keyword 为空时不过滤
	List(ctx context.Context, keyword string, limit, offset int) (*NotePage, error)

	// Replace 整体替换笔记内容，保留创建时间
	Replace(ctx context.Context, id string, draft NoteDraft) (*Note, error)

	// Update 局部更新笔记
	Update(ctx context.Context, id string, patch NotePatch) (*Note, error)

	// Delete 物理删除笔记，返回是否真的删除了
	Delete(ctx context.Context, id string) (bool, error)

	// Count 获取笔记总数
	Count(ctx context.Context) (int64, error)

	// Kind 返回存储实现名称，用于日志和健康检查
	Kind() string
}
